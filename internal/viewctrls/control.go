package viewctrls

import (
	"slices"

	"github.com/jask/viewctrls/internal/dom"
)

// Callback runs when a control is clicked. this is the control's ThisArg
// or the engine's default context; ev is always first, followed by the
// control's Args.
type Callback func(this any, ev *dom.Event, args ...any) error

// ElementRef is implemented by values that wrap a pre-built element, so
// they can be passed as an icon.
type ElementRef interface {
	Element() *dom.Element
}

// Control is one control definition.
type Control struct {
	// Label is the display text. A non-string or empty label falls back to
	// the control key.
	Label any
	// Icon is a class name string, a *dom.Element or an ElementRef.
	Icon any
	// Tag is one of div, span, a, b, i, strong, em, button. Defaults to span.
	Tag string
	// Attr holds extra attributes. class is added to the engine classes;
	// every other attribute overrides the engine value.
	Attr dom.Attrs

	// Func is the click callback. Callback and Fn are aliases consulted in
	// that order when Func is nil.
	Func     Callback
	Callback Callback
	Fn       Callback

	// ThisArg is passed as the callback context.
	ThisArg any
	// Args are appended after the event.
	Args []any
}

// callbackAliases lists the callback fields in resolution order.
var callbackAliases = []struct {
	name string
	get  func(Control) Callback
}{
	{"func", func(c Control) Callback { return c.Func }},
	{"callback", func(c Control) Callback { return c.Callback }},
	{"fn", func(c Control) Callback { return c.Fn }},
}

// ResolveCallback returns the effective callback and the name of the
// field it came from.
func (c Control) ResolveCallback() (Callback, string) {
	for _, alias := range callbackAliases {
		if cb := alias.get(c); cb != nil {
			return cb, alias.name
		}
	}
	return nil, ""
}

func (c Control) clone() Control {
	c.Attr = c.Attr.Clone()
	c.Args = slices.Clone(c.Args)
	return c
}

// ControlSet is an ordered mapping from control key to Control. The zero
// value and nil are empty sets.
type ControlSet struct {
	keys []string
	defs map[string]Control
}

// NewControlSet returns an empty set.
func NewControlSet() *ControlSet {
	return &ControlSet{defs: make(map[string]Control)}
}

// Set adds or replaces a control. A replaced control keeps its position.
func (s *ControlSet) Set(key string, c Control) *ControlSet {
	if s.defs == nil {
		s.defs = make(map[string]Control)
	}
	if _, ok := s.defs[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.defs[key] = c
	return s
}

// Get returns the control for key.
func (s *ControlSet) Get(key string) (Control, bool) {
	if s == nil {
		return Control{}, false
	}
	c, ok := s.defs[key]
	return c, ok
}

// Has reports whether key is in the set.
func (s *ControlSet) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Len returns the number of controls.
func (s *ControlSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Keys returns the control keys in order.
func (s *ControlSet) Keys() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.keys)
}

// Each calls fn for every control in order until fn returns false.
func (s *ControlSet) Each(fn func(key string, c Control) bool) {
	if s == nil {
		return
	}
	for _, key := range s.keys {
		if !fn(key, s.defs[key]) {
			return
		}
	}
}

// Clone returns a deep copy of the set. Callbacks, icons and ThisArg values
// are shared.
func (s *ControlSet) Clone() *ControlSet {
	out := NewControlSet()
	s.Each(func(key string, c Control) bool {
		out.Set(key, c.clone())
		return true
	})
	return out
}

// Merge returns a new set holding s followed by the keys of other. Keys
// present in both take other's definition at s's position.
func (s *ControlSet) Merge(other *ControlSet) *ControlSet {
	out := s.Clone()
	other.Each(func(key string, c Control) bool {
		out.Set(key, c.clone())
		return true
	})
	return out
}

// Options configures one Initialize call.
type Options struct {
	Controls *ControlSet
	// CapitalizeLabels adds the proper-case class to every control.
	CapitalizeLabels bool
	// ControlClass holds extra space-separated classes for every control.
	ControlClass string
	// WrapperClass holds extra space-separated classes for the wrapper.
	WrapperClass string
}
