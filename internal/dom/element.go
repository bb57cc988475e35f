package dom

import (
	"fmt"
	"slices"
	"strings"
)

// Element is a node in the tree. Text nodes have an empty tag.
type Element struct {
	tag      string
	text     string
	attrs    Attrs
	children []*Element
	parent   *Element

	listeners map[string][]*listenerEntry
}

// New creates an element with the given tag and attributes.
func New(tag string, attrs ...Attr) *Element {
	el := &Element{tag: strings.ToLower(strings.TrimSpace(tag))}
	for _, attr := range attrs {
		el.attrs = el.attrs.Set(attr.Name, attr.Value)
	}
	return el
}

// Text creates a text node.
func Text(s string) *Element {
	return &Element{text: s}
}

// Tag returns the lower-case tag name, or "" for text nodes.
func (e *Element) Tag() string { return e.tag }

// IsText reports whether e is a text node.
func (e *Element) IsText() bool { return e.tag == "" }

// TextContent returns the concatenated text of e and its descendants.
func (e *Element) TextContent() string {
	if e.IsText() {
		return e.text
	}
	var sb strings.Builder
	for _, c := range e.children {
		sb.WriteString(c.TextContent())
	}
	return sb.String()
}

// Attr returns the value of an attribute.
func (e *Element) Attr(name string) (string, bool) {
	return e.attrs.Get(name)
}

// AttrOr returns the value of an attribute or def when it is missing.
func (e *Element) AttrOr(name, def string) string {
	if v, ok := e.attrs.Get(name); ok {
		return v
	}
	return def
}

// SetAttr sets an attribute.
func (e *Element) SetAttr(name, value string) *Element {
	e.attrs = e.attrs.Set(name, value)
	return e
}

// RemoveAttr removes an attribute.
func (e *Element) RemoveAttr(name string) *Element {
	e.attrs = e.attrs.Del(name)
	return e
}

// Attrs returns a copy of the attribute list.
func (e *Element) Attrs() Attrs {
	return e.attrs.Clone()
}

// Data returns the value of the data-<name> attribute.
func (e *Element) Data(name string) string {
	return e.AttrOr("data-"+name, "")
}

// Classes returns the class tokens in order.
func (e *Element) Classes() []string {
	return SplitClasses(e.AttrOr("class", ""))
}

// HasClass reports whether every token of names is in the class list.
func (e *Element) HasClass(names string) bool {
	want := SplitClasses(names)
	if len(want) == 0 {
		return false
	}
	have := e.Classes()
	for _, name := range want {
		if !slices.Contains(have, name) {
			return false
		}
	}
	return true
}

// AddClass appends class tokens that are not already present.
func (e *Element) AddClass(names string) *Element {
	joined := JoinClasses(e.AttrOr("class", ""), names)
	if joined == "" && !e.attrs.Has("class") {
		return e
	}
	e.attrs = e.attrs.Set("class", joined)
	return e
}

// RemoveClass removes class tokens. The attribute is dropped when the
// list becomes empty.
func (e *Element) RemoveClass(names string) *Element {
	drop := SplitClasses(names)
	var keep []string
	for _, c := range e.Classes() {
		if !slices.Contains(drop, c) {
			keep = append(keep, c)
		}
	}
	if len(keep) == 0 {
		e.attrs = e.attrs.Del("class")
		return e
	}
	e.attrs = e.attrs.Set("class", strings.Join(keep, " "))
	return e
}

// ToggleClass adds name when missing and removes it otherwise. It returns
// whether the class is present afterwards.
func (e *Element) ToggleClass(name string) bool {
	if e.HasClass(name) {
		e.RemoveClass(name)
		return false
	}
	e.AddClass(name)
	return true
}

// Parent returns the parent element, or nil.
func (e *Element) Parent() *Element { return e.parent }

// Children returns a copy of the child list.
func (e *Element) Children() []*Element {
	return slices.Clone(e.children)
}

// ChildCount returns the number of children.
func (e *Element) ChildCount() int { return len(e.children) }

// FirstChild returns the first child, or nil.
func (e *Element) FirstChild() *Element {
	if len(e.children) == 0 {
		return nil
	}
	return e.children[0]
}

// Append adds children at the end. A child that already has a parent is
// moved. Appending e or one of its ancestors panics.
func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		if c == nil {
			continue
		}
		e.checkInsert(c)
		c.Remove()
		c.parent = e
		e.children = append(e.children, c)
	}
	return e
}

// Prepend inserts a child at the front. Like Append it panics on a cycle.
func (e *Element) Prepend(c *Element) *Element {
	if c == nil {
		return e
	}
	e.checkInsert(c)
	c.Remove()
	c.parent = e
	e.children = slices.Insert(e.children, 0, c)
	return e
}

func (e *Element) checkInsert(c *Element) {
	if c.Contains(e) {
		panic(fmt.Sprintf("dom: cannot insert <%s> into its own subtree", c.tag))
	}
}

// RemoveChild detaches c if it is a child of e.
func (e *Element) RemoveChild(c *Element) bool {
	i := slices.Index(e.children, c)
	if i < 0 {
		return false
	}
	e.children = slices.Delete(e.children, i, i+1)
	c.parent = nil
	return true
}

// Remove detaches e from its parent.
func (e *Element) Remove() {
	if e.parent != nil {
		e.parent.RemoveChild(e)
	}
}

// Empty removes every child.
func (e *Element) Empty() {
	for _, c := range e.children {
		c.parent = nil
	}
	e.children = nil
}

// Walk visits e's descendants depth first in document order. Returning
// false from fn skips that node's subtree.
func (e *Element) Walk(fn func(*Element) bool) {
	for _, c := range e.children {
		if fn(c) {
			c.Walk(fn)
		}
	}
}

// Find returns descendants that match fn, in document order.
func (e *Element) Find(fn func(*Element) bool) []*Element {
	var out []*Element
	e.Walk(func(el *Element) bool {
		if fn(el) {
			out = append(out, el)
		}
		return true
	})
	return out
}

// FindByClass returns descendants carrying every class in names.
func (e *Element) FindByClass(names string) []*Element {
	return e.Find(func(el *Element) bool { return el.HasClass(names) })
}

// ChildrenByClass returns direct children carrying every class in names.
func (e *Element) ChildrenByClass(names string) []*Element {
	var out []*Element
	for _, c := range e.children {
		if c.HasClass(names) {
			out = append(out, c)
		}
	}
	return out
}

// Closest returns e or its nearest ancestor matching fn.
func (e *Element) Closest(fn func(*Element) bool) *Element {
	for cur := e; cur != nil; cur = cur.parent {
		if fn(cur) {
			return cur
		}
	}
	return nil
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == e {
			return true
		}
	}
	return false
}
