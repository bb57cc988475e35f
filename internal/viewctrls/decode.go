package viewctrls

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jask/viewctrls/internal/dom"
)

// MapItem is one entry of a MapSlice.
type MapItem struct {
	Key   string
	Value any
}

// MapSlice is an ordered mapping, used where document order matters.
type MapSlice []MapItem

// Get returns the value stored under key.
func (m MapSlice) Get(key string) (any, bool) {
	for _, item := range m {
		if item.Key == key {
			return item.Value, true
		}
	}
	return nil, false
}

// entries normalizes raw into ordered key/value pairs. Plain Go maps have
// no order, so their keys are sorted.
func entries(raw any) (MapSlice, bool) {
	switch v := raw.(type) {
	case MapSlice:
		return v, true
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		out := make(MapSlice, 0, len(keys))
		for _, k := range keys {
			out = append(out, MapItem{Key: k, Value: v[k]})
		}
		return out, true
	case map[string]string:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		out := make(MapSlice, 0, len(keys))
		for _, k := range keys {
			out = append(out, MapItem{Key: k, Value: v[k]})
		}
		return out, true
	default:
		return nil, false
	}
}

// lookup finds the first of names present in m.
func lookup(m MapSlice, names ...string) (any, string, bool) {
	for _, name := range names {
		if v, ok := m.Get(name); ok {
			return v, name, true
		}
	}
	return nil, "", false
}

// Decode converts a loosely typed configuration object, as produced by a
// YAML, HCL or TOML decoder or built by hand, into Options. Recognized keys
// are controls, capitalizeLabels, controlClass and wrapperClass; the
// snake_case spellings are accepted too.
func Decode(raw any) (Options, error) {
	const op = "viewctrls.Decode"
	if opts, ok := raw.(Options); ok {
		return opts, nil
	}
	var opts Options
	if raw == nil {
		opts.Controls = NewControlSet()
		return opts, nil
	}
	m, ok := entries(raw)
	if !ok {
		return Options{}, &Error{Op: op, Kind: KindType, Got: raw, Err: ErrConfigType}
	}

	controls, _, _ := lookup(m, "controls")
	set, err := DecodeControls(controls)
	if err != nil {
		return Options{}, err
	}
	opts.Controls = set

	if v, field, ok := lookup(m, "capitalizeLabels", "capitalize_labels"); ok && v != nil {
		b, isBool := v.(bool)
		if !isBool {
			return Options{}, &Error{Op: op, Kind: KindType, Field: field, Got: v, Err: fmt.Errorf("%s must be a bool", field)}
		}
		opts.CapitalizeLabels = b
	}
	for _, f := range []struct {
		dst   *string
		names []string
	}{
		{&opts.ControlClass, []string{"controlClass", "control_class"}},
		{&opts.WrapperClass, []string{"wrapperClass", "wrapper_class"}},
	} {
		v, field, ok := lookup(m, f.names...)
		if !ok || v == nil {
			continue
		}
		s, isString := v.(string)
		if !isString {
			return Options{}, &Error{Op: op, Kind: KindType, Field: field, Got: v, Err: fmt.Errorf("%s must be a string", field)}
		}
		*f.dst = s
	}
	return opts, nil
}

// DecodeControls converts a loosely typed control map into a ControlSet.
// nil decodes to an empty set; lists and scalars are KindType errors.
func DecodeControls(raw any) (*ControlSet, error) {
	const op = "viewctrls.DecodeControls"
	switch v := raw.(type) {
	case nil:
		return NewControlSet(), nil
	case *ControlSet:
		return v.Clone(), nil
	}
	m, ok := entries(raw)
	if !ok {
		return nil, &Error{Op: op, Kind: KindType, Got: raw, Err: ErrConfigType}
	}
	set := NewControlSet()
	for _, item := range m {
		c, err := decodeControl(item.Key, item.Value)
		if err != nil {
			return nil, err
		}
		set.Set(item.Key, c)
	}
	return set, nil
}

func decodeControl(key string, raw any) (Control, error) {
	const op = "viewctrls.DecodeControls"
	switch v := raw.(type) {
	case Control:
		return v.clone(), nil
	case *Control:
		if v != nil {
			return v.clone(), nil
		}
	}
	m, ok := entries(raw)
	if !ok {
		return Control{}, &Error{Op: op, Kind: KindType, Key: key, Got: raw, Err: ErrConfigType}
	}

	var c Control
	c.Label, _ = m.Get("label")
	c.Icon, _ = m.Get("icon")
	if v, ok := m.Get("tag"); ok && v != nil {
		c.Tag = strings.TrimSpace(fmt.Sprint(v))
	}
	if v, ok := m.Get("attr"); ok && v != nil {
		attrs, ok := entries(v)
		if !ok {
			return Control{}, &Error{Op: op, Kind: KindType, Key: key, Field: "attr", Got: v, Err: fmt.Errorf("attr must be a mapping")}
		}
		for _, a := range attrs {
			c.Attr = c.Attr.Set(a.Key, fmt.Sprint(a.Value))
		}
	}
	for _, f := range []struct {
		dst  *Callback
		name string
	}{
		{&c.Func, "func"},
		{&c.Callback, "callback"},
		{&c.Fn, "fn"},
	} {
		v, _ := m.Get(f.name)
		if cb, ok := AsCallback(v); ok {
			*f.dst = cb
		}
	}
	c.ThisArg, _ = lookup1(m, "thisArg", "this_arg")
	if v, _ := lookup1(m, "args"); v != nil {
		args, ok := v.([]any)
		if !ok {
			return Control{}, &Error{Op: op, Kind: KindType, Key: key, Field: "args", Got: v, Err: fmt.Errorf("args must be a list")}
		}
		c.Args = slices.Clone(args)
	}
	return c, nil
}

func lookup1(m MapSlice, names ...string) (any, bool) {
	v, _, ok := lookup(m, names...)
	return v, ok
}

// AsCallback adapts the function shapes accepted in loosely typed
// configuration to a Callback. Anything else, nil included, reports false.
func AsCallback(v any) (Callback, bool) {
	switch fn := v.(type) {
	case Callback:
		return fn, fn != nil
	case func(this any, ev *dom.Event, args ...any) error:
		return fn, fn != nil
	case func(ev *dom.Event, args ...any) error:
		if fn == nil {
			return nil, false
		}
		return func(_ any, ev *dom.Event, args ...any) error { return fn(ev, args...) }, true
	case func(ev *dom.Event) error:
		if fn == nil {
			return nil, false
		}
		return func(_ any, ev *dom.Event, _ ...any) error { return fn(ev) }, true
	case func(ev *dom.Event):
		if fn == nil {
			return nil, false
		}
		return func(_ any, ev *dom.Event, _ ...any) error { fn(ev); return nil }, true
	case func():
		if fn == nil {
			return nil, false
		}
		return func(any, *dom.Event, ...any) error { fn(); return nil }, true
	default:
		return nil, false
	}
}
