// Package manifest reads and writes control-set files. YAML, HCL and TOML
// documents are parsed into the same ordered Document; callback fields hold
// handler names that are resolved against a handlers.Registry.
package manifest

import (
	"fmt"

	"github.com/jask/viewctrls/internal/dom"
	"github.com/jask/viewctrls/internal/handlers"
	"github.com/jask/viewctrls/internal/viewctrls"
)

// Document is a parsed manifest. Unset options are nil so that
// configuration defaults can fill them.
type Document struct {
	CapitalizeLabels *bool
	ControlClass     *string
	WrapperClass     *string
	Controls         []Control
}

// IconHTML is the key of an icon mapping holding element markup, as in
// `icon: {html: "<i class='fa fa-edit'></i>"}`.
const IconHTML = "html"

// Control is one control definition with callbacks named, not bound.
type Control struct {
	Key   string
	Label any
	// Icon is a class string or a MapSlice with a single IconHTML entry.
	Icon     any
	Tag      string
	Attr     dom.Attrs
	Func     string
	Callback string
	Fn       string
	ThisArg  any
	Args     []any
}

// Defaults fill options a document leaves unset.
type Defaults struct {
	CapitalizeLabels bool
	ControlClass     string
	WrapperClass     string
}

// Options binds the document's handler names and decodes the result into
// engine options.
func (d *Document) Options(reg *handlers.Registry, defaults Defaults) (viewctrls.Options, error) {
	raw, err := d.Raw(reg)
	if err != nil {
		return viewctrls.Options{}, err
	}
	opts, err := viewctrls.Decode(raw)
	if err != nil {
		return viewctrls.Options{}, err
	}
	if d.CapitalizeLabels == nil {
		opts.CapitalizeLabels = defaults.CapitalizeLabels
	}
	if d.ControlClass == nil {
		opts.ControlClass = defaults.ControlClass
	}
	if d.WrapperClass == nil {
		opts.WrapperClass = defaults.WrapperClass
	}
	return opts, nil
}

// Raw returns the document as a loosely typed configuration object with
// callbacks looked up in reg.
func (d *Document) Raw(reg *handlers.Registry) (viewctrls.MapSlice, error) {
	var raw viewctrls.MapSlice
	if d.CapitalizeLabels != nil {
		raw = append(raw, viewctrls.MapItem{Key: "capitalizeLabels", Value: *d.CapitalizeLabels})
	}
	if d.ControlClass != nil {
		raw = append(raw, viewctrls.MapItem{Key: "controlClass", Value: *d.ControlClass})
	}
	if d.WrapperClass != nil {
		raw = append(raw, viewctrls.MapItem{Key: "wrapperClass", Value: *d.WrapperClass})
	}

	controls := make(viewctrls.MapSlice, 0, len(d.Controls))
	for _, c := range d.Controls {
		icon, err := iconValue(c.Key, c.Icon)
		if err != nil {
			return nil, err
		}
		item := viewctrls.MapSlice{
			{Key: "label", Value: c.Label},
			{Key: "icon", Value: icon},
			{Key: "tag", Value: c.Tag},
		}
		if len(c.Attr) > 0 {
			attrs := make(viewctrls.MapSlice, 0, len(c.Attr))
			for _, a := range c.Attr {
				attrs = append(attrs, viewctrls.MapItem{Key: a.Name, Value: a.Value})
			}
			item = append(item, viewctrls.MapItem{Key: "attr", Value: attrs})
		}
		for _, f := range []struct{ field, name string }{
			{"func", c.Func},
			{"callback", c.Callback},
			{"fn", c.Fn},
		} {
			if f.name == "" {
				continue
			}
			cb, err := reg.Lookup(f.name)
			if err != nil {
				return nil, fmt.Errorf("control %q %s: %w", c.Key, f.field, err)
			}
			item = append(item, viewctrls.MapItem{Key: f.field, Value: cb})
		}
		if c.ThisArg != nil {
			item = append(item, viewctrls.MapItem{Key: "thisArg", Value: c.ThisArg})
		}
		if c.Args != nil {
			item = append(item, viewctrls.MapItem{Key: "args", Value: c.Args})
		}
		controls = append(controls, viewctrls.MapItem{Key: c.Key, Value: item})
	}
	raw = append(raw, viewctrls.MapItem{Key: "controls", Value: controls})
	return raw, nil
}

// Keys returns the control keys in document order.
func (d *Document) Keys() []string {
	keys := make([]string, len(d.Controls))
	for i, c := range d.Controls {
		keys[i] = c.Key
	}
	return keys
}

// FromRaw converts an ordered, loosely typed document tree into a
// Document. Shape errors are *viewctrls.Error values.
func FromRaw(raw any) (*Document, error) {
	const op = "manifest.FromRaw"
	doc := &Document{}
	if raw == nil {
		return doc, nil
	}
	m, ok := raw.(viewctrls.MapSlice)
	if !ok {
		return nil, &viewctrls.Error{Op: op, Kind: viewctrls.KindType, Got: raw, Err: viewctrls.ErrConfigType}
	}

	for _, item := range m {
		switch item.Key {
		case "capitalizeLabels", "capitalize_labels":
			b, ok := item.Value.(bool)
			if !ok {
				return nil, typeErr(op, "", item.Key, item.Value, "must be a bool")
			}
			doc.CapitalizeLabels = &b
		case "controlClass", "control_class":
			s, ok := item.Value.(string)
			if !ok {
				return nil, typeErr(op, "", item.Key, item.Value, "must be a string")
			}
			doc.ControlClass = &s
		case "wrapperClass", "wrapper_class":
			s, ok := item.Value.(string)
			if !ok {
				return nil, typeErr(op, "", item.Key, item.Value, "must be a string")
			}
			doc.WrapperClass = &s
		case "controls":
			controls, err := controlsFromRaw(op, item.Value)
			if err != nil {
				return nil, err
			}
			doc.Controls = controls
		}
	}
	return doc, nil
}

func controlsFromRaw(op string, raw any) ([]Control, error) {
	if raw == nil {
		return nil, nil
	}
	m, ok := raw.(viewctrls.MapSlice)
	if !ok {
		return nil, &viewctrls.Error{Op: op, Kind: viewctrls.KindType, Got: raw, Err: viewctrls.ErrConfigType}
	}
	out := make([]Control, 0, len(m))
	for _, item := range m {
		def, ok := item.Value.(viewctrls.MapSlice)
		if !ok && item.Value != nil {
			return nil, &viewctrls.Error{Op: op, Kind: viewctrls.KindType, Key: item.Key, Got: item.Value, Err: viewctrls.ErrConfigType}
		}
		c := Control{Key: item.Key}
		for _, f := range def {
			switch f.Key {
			case "label":
				c.Label = f.Value
			case "icon":
				if m, ok := f.Value.(viewctrls.MapSlice); ok && !isIconMap(m) {
					return nil, typeErr(op, item.Key, f.Key, f.Value, "must be a class name or a mapping with a single html entry")
				}
				c.Icon = f.Value
			case "tag":
				if f.Value != nil {
					c.Tag = fmt.Sprint(f.Value)
				}
			case "attr":
				if f.Value == nil {
					continue
				}
				attrs, ok := f.Value.(viewctrls.MapSlice)
				if !ok {
					return nil, typeErr(op, item.Key, f.Key, f.Value, "must be a mapping")
				}
				for _, a := range attrs {
					c.Attr = c.Attr.Set(a.Key, fmt.Sprint(a.Value))
				}
			case "func", "callback", "fn":
				if f.Value == nil {
					continue
				}
				name, ok := f.Value.(string)
				if !ok {
					return nil, typeErr(op, item.Key, f.Key, f.Value, "must be a handler name")
				}
				switch f.Key {
				case "func":
					c.Func = name
				case "callback":
					c.Callback = name
				default:
					c.Fn = name
				}
			case "thisArg", "this_arg":
				c.ThisArg = f.Value
			case "args":
				if f.Value == nil {
					continue
				}
				args, ok := f.Value.([]any)
				if !ok {
					return nil, typeErr(op, item.Key, f.Key, f.Value, "must be a list")
				}
				c.Args = args
			}
		}
		out = append(out, c)
	}
	return out, nil
}

func isIconMap(m viewctrls.MapSlice) bool {
	if len(m) != 1 || m[0].Key != IconHTML {
		return false
	}
	_, ok := m[0].Value.(string)
	return ok
}

// iconValue turns an icon mapping into a freshly parsed element. Other
// values are left for the engine to check.
func iconValue(key string, v any) (any, error) {
	m, ok := v.(viewctrls.MapSlice)
	if !ok {
		return v, nil
	}
	src, _ := m.Get(IconHTML)
	s, _ := src.(string)
	el, err := dom.Parse(s)
	if err != nil {
		return nil, &viewctrls.Error{Op: "manifest.Raw", Kind: viewctrls.KindInvalidIcon, Key: key, Field: "icon", Got: v, Err: err}
	}
	return el, nil
}

func typeErr(op, key, field string, got any, msg string) error {
	return &viewctrls.Error{Op: op, Kind: viewctrls.KindType, Key: key, Field: field, Got: got, Err: fmt.Errorf("%s %s", field, msg)}
}
