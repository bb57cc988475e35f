package manifest

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jask/viewctrls/internal/viewctrls"
)

// parseYAML keeps mapping order by walking the node tree instead of
// decoding into Go maps.
func parseYAML(data []byte) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if root.Kind == 0 {
		return nil, nil
	}
	return fromNode(&root)
}

func fromNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return fromNode(n.Content[0])
	case yaml.AliasNode:
		return fromNode(n.Alias)
	case yaml.MappingNode:
		out := make(viewctrls.MapSlice, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
			}
			val, err := fromNode(v)
			if err != nil {
				return nil, err
			}
			out = append(out, viewctrls.MapItem{Key: k.Value, Value: val})
		}
		return out, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			val, err := fromNode(c)
			if err != nil {
				return nil, err
			}
			out = append(out, val)
		}
		return out, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported yaml node", n.Line)
	}
}

// EncodeYAML writes doc as YAML, controls in document order.
func EncodeYAML(w io.Writer, doc *Document) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, value any) error {
		v, err := valueNode(value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		root.Content = append(root.Content, scalar(key), v)
		return nil
	}
	if doc.CapitalizeLabels != nil {
		if err := add("capitalizeLabels", *doc.CapitalizeLabels); err != nil {
			return err
		}
	}
	if doc.ControlClass != nil {
		if err := add("controlClass", *doc.ControlClass); err != nil {
			return err
		}
	}
	if doc.WrapperClass != nil {
		if err := add("wrapperClass", *doc.WrapperClass); err != nil {
			return err
		}
	}

	controls := &yaml.Node{Kind: yaml.MappingNode}
	for _, c := range doc.Controls {
		def, err := controlNode(c)
		if err != nil {
			return fmt.Errorf("control %q: %w", c.Key, err)
		}
		controls.Content = append(controls.Content, scalar(c.Key), def)
	}
	root.Content = append(root.Content, scalar("controls"), controls)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func controlNode(c Control) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, value any) error {
		v, err := valueNode(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		n.Content = append(n.Content, scalar(key), v)
		return nil
	}
	if c.Label != nil {
		if err := add("label", c.Label); err != nil {
			return nil, err
		}
	}
	if c.Icon != nil {
		if err := add("icon", c.Icon); err != nil {
			return nil, err
		}
	}
	if c.Tag != "" {
		n.Content = append(n.Content, scalar("tag"), scalar(c.Tag))
	}
	if len(c.Attr) > 0 {
		attrs := &yaml.Node{Kind: yaml.MappingNode}
		for _, a := range c.Attr {
			attrs.Content = append(attrs.Content, scalar(a.Name), scalar(a.Value))
		}
		n.Content = append(n.Content, scalar("attr"), attrs)
	}
	for _, f := range []struct{ key, name string }{{"func", c.Func}, {"callback", c.Callback}, {"fn", c.Fn}} {
		if f.name != "" {
			n.Content = append(n.Content, scalar(f.key), scalar(f.name))
		}
	}
	if c.ThisArg != nil {
		if err := add("thisArg", c.ThisArg); err != nil {
			return nil, err
		}
	}
	if c.Args != nil {
		if err := add("args", c.Args); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// valueNode encodes v, keeping the order of nested MapSlice values.
func valueNode(v any) (*yaml.Node, error) {
	switch v := v.(type) {
	case viewctrls.MapSlice:
		n := &yaml.Node{Kind: yaml.MappingNode}
		for _, item := range v {
			val, err := valueNode(item.Value)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, scalar(item.Key), val)
		}
		return n, nil
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, item := range v {
			val, err := valueNode(item)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, val)
		}
		return n, nil
	}
	var n yaml.Node
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	return &n, nil
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// EncodeValue renders a single loosely typed value as YAML text, keeping
// the order of MapSlice values.
func EncodeValue(v any) (string, error) {
	n, err := valueNode(v)
	if err != nil {
		return "", err
	}
	out, err := yaml.Marshal(n)
	if err != nil {
		return "", err
	}
	return string(bytes.TrimRight(out, "\n")), nil
}

// DecodeValue parses YAML text written by EncodeValue.
func DecodeValue(s string) (any, error) {
	return parseYAML([]byte(s))
}
