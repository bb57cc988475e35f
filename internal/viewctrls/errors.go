package viewctrls

import (
	"errors"
	"fmt"
)

// ErrorKind identifies the category of a configuration error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindType indicates controls (or one control) had the wrong shape.
	KindType
	// KindEmpty indicates an empty control set.
	KindEmpty
	// KindMissingCallback indicates a control without a usable callback.
	KindMissingCallback
	// KindInvalidIcon indicates an icon that is neither a class string nor an element.
	KindInvalidIcon
)

func (k ErrorKind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindEmpty:
		return "empty"
	case KindMissingCallback:
		return "missing-callback"
	case KindInvalidIcon:
		return "invalid-icon"
	default:
		return "unknown"
	}
}

var (
	ErrConfigType      = errors.New("controls must be a mapping of control keys to definitions")
	ErrConfigEmpty     = errors.New("at least one control must be passed")
	ErrMissingCallback = errors.New("control needs a func, callback or fn")
	ErrInvalidIconType = errors.New("icon must be a class name string or an element")
	ErrNilContainer    = errors.New("container element is nil")
	ErrIconHierarchy   = errors.New("icon element contains the container")
)

// Error is returned by Decode, Validate and Initialize.
type Error struct {
	// Op is the operation that failed (e.g., "viewctrls.Validate").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Key is the offending control key, if any.
	Key string
	// Field is the offending field or option name, if any.
	Field string
	// Got is the offending value for type errors.
	Got any
	// Err is one of the sentinel errors above.
	Err error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s [%s]", e.Op, e.Kind)
	if e.Key != "" {
		msg += fmt.Sprintf(" control %q", e.Key)
	}
	if e.Field != "" {
		msg += fmt.Sprintf(" field %q", e.Field)
	}
	msg += fmt.Sprintf(": %v", e.Err)
	if e.Got != nil && (e.Kind == KindType || e.Kind == KindInvalidIcon) {
		msg += fmt.Sprintf(" (got %T)", e.Got)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) ErrorKind {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Kind
	}
	return KindUnknown
}
