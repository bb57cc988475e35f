package handlers

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/viewctrls/internal/dom"
	"github.com/jask/viewctrls/internal/viewctrls"
)

func TestRegisterDuplicatePanics(t *testing.T) {
	r := New()
	r.Register("a", func(any, *dom.Event, ...any) error { return nil })
	assert.PanicsWithValue(t, "handler with name 'a' already registered", func() {
		r.Register("a", func(any, *dom.Event, ...any) error { return nil })
	})
	assert.Panics(t, func() { r.Register("b", nil) })
}

func TestLookupSuggestion(t *testing.T) {
	r := NewWithBuiltins(nil)
	assert.Equal(t, []string{"echo", "log", "mark", "noop", "toggle"}, r.Names())

	_, err := r.Lookup("togle")
	var unknown *UnknownHandlerError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "toggle", unknown.Suggestion)
	assert.Equal(t, `unknown handler "togle" (did you mean "toggle"?)`, err.Error())

	_, err = r.Lookup("something-else-entirely")
	require.ErrorAs(t, err, &unknown)
	assert.Empty(t, unknown.Suggestion)
}

func TestResolveKeepsEmptyNames(t *testing.T) {
	r := NewWithBuiltins(nil)
	cbs, err := r.Resolve("", "mark", "")
	require.NoError(t, err)
	require.Len(t, cbs, 3)
	assert.Nil(t, cbs[0])
	assert.NotNil(t, cbs[1])
	assert.Nil(t, cbs[2])

	_, err = r.Resolve("mark", "nope")
	assert.Error(t, err)
}

// initialize renders one control bound to the named handler.
func initialize(t *testing.T, r *Registry, name string, this any, args ...any) *dom.Element {
	t.Helper()
	cb, err := r.Lookup(name)
	require.NoError(t, err)
	set := viewctrls.NewControlSet().Set("k", viewctrls.Control{Label: "Key", Func: cb, ThisArg: this, Args: args})
	inst, err := viewctrls.New(nil).Initialize(dom.New("div"), viewctrls.Options{Controls: set})
	require.NoError(t, err)
	return inst.Control("k")
}

func TestMarkCountsClicksFromIcon(t *testing.T) {
	r := NewWithBuiltins(nil)
	icon := dom.New("i")
	cb, _ := r.Lookup(Mark)
	set := viewctrls.NewControlSet().Set("k", viewctrls.Control{Func: cb, Icon: icon})
	inst, err := viewctrls.New(nil).Initialize(dom.New("div"), viewctrls.Options{Controls: set})
	require.NoError(t, err)

	require.NoError(t, icon.Click())
	require.NoError(t, inst.Control("k").Click())
	assert.Equal(t, "2", inst.Control("k").AttrOr(AttrClicked, ""))
}

func TestToggle(t *testing.T) {
	r := NewWithBuiltins(nil)

	ctrl := initialize(t, r, Toggle, nil)
	require.NoError(t, ctrl.Click())
	assert.True(t, ctrl.HasClass(DefaultToggleClass))
	require.NoError(t, ctrl.Click())
	assert.False(t, ctrl.HasClass(DefaultToggleClass))

	ctrl = initialize(t, r, Toggle, nil, "on")
	require.NoError(t, ctrl.Click())
	assert.True(t, ctrl.HasClass("on"))

	ctrl = initialize(t, r, Toggle, nil, 5)
	assert.Error(t, ctrl.Click())
}

func TestEcho(t *testing.T) {
	r := NewWithBuiltins(nil)
	var out bytes.Buffer

	require.NoError(t, initialize(t, r, Echo, &out, 1, "two").Click())
	assert.Equal(t, "1 two\n", out.String())

	err := initialize(t, r, Echo, "not a writer").Click()
	assert.ErrorContains(t, err, "not a writer")
}

func TestLog(t *testing.T) {
	var buf bytes.Buffer
	r := NewWithBuiltins(slog.New(slog.NewTextHandler(&buf, nil)))

	require.NoError(t, initialize(t, r, Log, nil, "x").Click())
	line := buf.String()
	assert.True(t, strings.Contains(line, "control clicked"), line)
	assert.Contains(t, line, "key=k")
	assert.Contains(t, line, "label=Key")
}

func TestMarkWithoutControl(t *testing.T) {
	r := NewWithBuiltins(nil)
	cb, _ := r.Lookup(Mark)
	err := cb(nil, &dom.Event{Target: dom.New("span")})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, viewctrls.ErrMissingCallback))
}
