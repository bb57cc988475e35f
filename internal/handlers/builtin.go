package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/jask/viewctrls/internal/dom"
	"github.com/jask/viewctrls/internal/viewctrls"
)

// Names of the built-in handlers.
const (
	Noop   = "noop"
	Log    = "log"
	Mark   = "mark"
	Toggle = "toggle"
	Echo   = "echo"
)

// AttrClicked counts clicks on a control marked by the mark handler.
const AttrClicked = "data-clicked"

// DefaultToggleClass is toggled when the toggle handler gets no class.
const DefaultToggleClass = "active"

// NewWithBuiltins returns a registry holding the built-in handlers. log
// writes to logger.
func NewWithBuiltins(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	r := New()
	r.Register(Noop, func(any, *dom.Event, ...any) error { return nil })
	r.Register(Log, logHandler(logger))
	r.Register(Mark, mark)
	r.Register(Toggle, toggle)
	r.Register(Echo, echo)
	return r
}

// controlOf returns the control node an event was dispatched on.
func controlOf(ev *dom.Event) *dom.Element {
	if ev == nil || ev.Target == nil {
		return nil
	}
	return ev.Target.Closest(func(el *dom.Element) bool { return el.HasClass(viewctrls.ClassControl) })
}

func logHandler(logger *slog.Logger) viewctrls.Callback {
	return func(_ any, ev *dom.Event, args ...any) error {
		attrs := []any{"args", args}
		if ctrl := controlOf(ev); ctrl != nil {
			attrs = append(attrs, "key", ctrl.Data("key"), "label", ctrl.Data("label"))
		}
		logger.Info("control clicked", attrs...)
		return nil
	}
}

func mark(_ any, ev *dom.Event, _ ...any) error {
	ctrl := controlOf(ev)
	if ctrl == nil {
		return fmt.Errorf("mark: event has no control target")
	}
	n, _ := strconv.Atoi(ctrl.AttrOr(AttrClicked, "0"))
	ctrl.SetAttr(AttrClicked, strconv.Itoa(n+1))
	return nil
}

func toggle(_ any, ev *dom.Event, args ...any) error {
	ctrl := controlOf(ev)
	if ctrl == nil {
		return fmt.Errorf("toggle: event has no control target")
	}
	class := DefaultToggleClass
	if len(args) > 0 {
		s, ok := args[0].(string)
		if !ok || s == "" {
			return fmt.Errorf("toggle: class argument must be a non-empty string, got %T", args[0])
		}
		class = s
	}
	ctrl.ToggleClass(class)
	return nil
}

func echo(this any, _ *dom.Event, args ...any) error {
	w, ok := this.(io.Writer)
	if !ok {
		return fmt.Errorf("echo: context %T is not a writer", this)
	}
	if _, err := fmt.Fprintln(w, args...); err != nil {
		return fmt.Errorf("echo: %w", err)
	}
	return nil
}
