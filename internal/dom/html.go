package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Render writes e as HTML.
func (e *Element) Render(w io.Writer) error {
	return html.Render(w, e.toNode())
}

// OuterHTML returns e rendered as HTML.
func (e *Element) OuterHTML() string {
	var buf bytes.Buffer
	if err := e.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// InnerHTML returns the rendered children of e.
func (e *Element) InnerHTML() string {
	var buf bytes.Buffer
	for _, c := range e.children {
		if err := c.Render(&buf); err != nil {
			return ""
		}
	}
	return buf.String()
}

func (e *Element) toNode() *html.Node {
	if e.IsText() {
		return &html.Node{Type: html.TextNode, Data: e.text}
	}
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     e.tag,
		DataAtom: atom.Lookup([]byte(e.tag)),
	}
	for _, attr := range e.attrs {
		n.Attr = append(n.Attr, html.Attribute{Key: attr.Name, Val: attr.Value})
	}
	for _, c := range e.children {
		n.AppendChild(c.toNode())
	}
	return n
}

// ParseFragment parses an HTML fragment as it would appear inside <body>.
func ParseFragment(src string) ([]*Element, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(src), body)
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}
	var out []*Element
	for _, n := range nodes {
		if el := fromNode(n); el != nil {
			out = append(out, el)
		}
	}
	return out, nil
}

// Parse parses a fragment that must contain exactly one element. Blank
// text around it is ignored.
func Parse(src string) (*Element, error) {
	nodes, err := ParseFragment(src)
	if err != nil {
		return nil, err
	}
	var root *Element
	for _, n := range nodes {
		if n.IsText() && strings.TrimSpace(n.text) == "" {
			continue
		}
		if root != nil || n.IsText() {
			return nil, fmt.Errorf("parse %q: want a single element", src)
		}
		root = n
	}
	if root == nil {
		return nil, fmt.Errorf("parse %q: no element", src)
	}
	return root, nil
}

func fromNode(n *html.Node) *Element {
	switch n.Type {
	case html.TextNode:
		return Text(n.Data)
	case html.ElementNode:
		el := New(n.Data)
		for _, attr := range n.Attr {
			el.SetAttr(attr.Key, attr.Val)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := fromNode(c); child != nil {
				el.Append(child)
			}
		}
		return el
	default:
		return nil
	}
}
