package viewctrls

import (
	"slices"

	"github.com/jask/viewctrls/internal/dom"
)

// binding is the click target of one rendered control. Everything is
// resolved once, when the control is bound.
type binding struct {
	key      string
	alias    string
	callback Callback
	this     any
	args     []any
}

func (e *Engine) newBinding(key string, c Control) (binding, error) {
	cb, alias := c.ResolveCallback()
	if cb == nil {
		return binding{}, &Error{Op: "viewctrls.bind", Kind: KindMissingCallback, Key: key, Err: ErrMissingCallback}
	}
	this := c.ThisArg
	if this == nil {
		this = e.defaultContext
	}
	return binding{
		key:      key,
		alias:    alias,
		callback: cb,
		this:     this,
		args:     slices.Clone(c.Args),
	}, nil
}

// bind attaches the click listener. Callback errors are returned to the
// dispatcher as is; panics are not recovered.
func (e *Engine) bind(node *dom.Element, b binding) {
	node.On(dom.EventClick, func(ev *dom.Event) error {
		e.logger.Debug("dispatching control click", "key", b.key, "alias", b.alias)
		return b.callback(b.this, ev, b.args...)
	})
}
