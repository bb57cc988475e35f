package dom

import "strings"

// Attr is a single name/value attribute.
type Attr struct {
	Name  string
	Value string
}

// Attrs is an ordered attribute list. Names are unique and compared
// case-insensitively, like HTML.
type Attrs []Attr

// A is shorthand for building an Attr.
func A(name, value string) Attr {
	return Attr{Name: name, Value: value}
}

func (a Attrs) index(name string) int {
	for i, attr := range a {
		if strings.EqualFold(attr.Name, name) {
			return i
		}
	}
	return -1
}

// Get returns the value for name.
func (a Attrs) Get(name string) (string, bool) {
	if i := a.index(name); i >= 0 {
		return a[i].Value, true
	}
	return "", false
}

// Has reports whether name is present.
func (a Attrs) Has(name string) bool {
	return a.index(name) >= 0
}

// Set returns the list with name set to value. An existing attribute keeps
// its position.
func (a Attrs) Set(name, value string) Attrs {
	if i := a.index(name); i >= 0 {
		a[i].Value = value
		return a
	}
	return append(a, Attr{Name: strings.ToLower(name), Value: value})
}

// Del returns the list without name.
func (a Attrs) Del(name string) Attrs {
	i := a.index(name)
	if i < 0 {
		return a
	}
	return append(a[:i:i], a[i+1:]...)
}

// Clone returns an independent copy.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}
	out := make(Attrs, len(a))
	copy(out, a)
	return out
}

// Names returns attribute names in order.
func (a Attrs) Names() []string {
	out := make([]string, len(a))
	for i, attr := range a {
		out[i] = attr.Name
	}
	return out
}

// SplitClasses splits a class attribute value into its tokens.
func SplitClasses(value string) []string {
	return strings.Fields(value)
}

// JoinClasses joins class tokens, dropping blanks and duplicates while
// keeping first-seen order.
func JoinClasses(parts ...string) string {
	seen := make(map[string]struct{})
	var out []string
	for _, part := range parts {
		for _, tok := range strings.Fields(part) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			out = append(out, tok)
		}
	}
	return strings.Join(out, " ")
}
