package viewctrls

import (
	"strings"

	"github.com/jask/viewctrls/internal/dom"
)

// Icon is a resolved icon. At most one of Class and Node is set; the zero
// value means no icon.
type Icon struct {
	// Class is the caller's class string for a generated icon node.
	Class string
	// Node is a caller-supplied element, used as is.
	Node *dom.Element
}

// IsZero reports whether there is no icon.
func (i Icon) IsZero() bool {
	return i.Class == "" && i.Node == nil
}

// ResolveIcon normalizes an icon value. It does not touch the element;
// the viewctrl-icon class is applied when the control is rendered.
func ResolveIcon(icon any) (Icon, error) {
	switch v := icon.(type) {
	case nil:
		return Icon{}, nil
	case string:
		return Icon{Class: strings.TrimSpace(v)}, nil
	case *dom.Element:
		if v == nil {
			return Icon{}, nil
		}
		if !v.IsText() {
			return Icon{Node: v}, nil
		}
	case ElementRef:
		if el := v.Element(); el != nil && !el.IsText() {
			return Icon{Node: el}, nil
		}
	}
	return Icon{}, &Error{Op: "viewctrls.ResolveIcon", Kind: KindInvalidIcon, Field: "icon", Got: icon, Err: ErrInvalidIconType}
}

// element returns the node to prepend to the control, or nil.
func (i Icon) element() *dom.Element {
	switch {
	case i.Node != nil:
		return i.Node.AddClass(ClassIcon)
	case i.Class != "":
		return dom.New("span", dom.A("class", dom.JoinClasses(i.Class, ClassIcon)))
	default:
		return nil
	}
}
