package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/viewctrls/internal/dom"
	"github.com/jask/viewctrls/internal/handlers"
	"github.com/jask/viewctrls/internal/viewctrls"
)

func newModel(t *testing.T, opts viewctrls.Options) (*Model, *Console) {
	t.Helper()
	console := NewConsole()
	m, err := New(viewctrls.New(console), console, "controls", opts)
	require.NoError(t, err)
	return m, console
}

func builtin(t *testing.T, name string) viewctrls.Callback {
	t.Helper()
	cb, err := handlers.NewWithBuiltins(nil).Lookup(name)
	require.NoError(t, err)
	return cb
}

func leftClick(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestMouseClickDispatches(t *testing.T) {
	set := viewctrls.NewControlSet().
		Set("edit", viewctrls.Control{Label: "edit", Icon: "icon-edit", Func: builtin(t, handlers.Mark)}).
		Set("say", viewctrls.Control{Label: "say", Fn: builtin(t, handlers.Echo), Args: []any{"hello"}})
	m, console := newModel(t, viewctrls.Options{Controls: set, CapitalizeLabels: true})

	buttons := m.layout()
	require.Len(t, buttons, 2)
	assert.Equal(t, 0, buttons[0].x0)
	assert.Equal(t, buttons[0].x1+1, buttons[1].x0)

	m.Update(leftClick(buttons[0].x0, buttonRow))
	m.Update(leftClick(buttons[0].x1-1, buttonRow))
	edit := m.layout()[0].el
	assert.Equal(t, "2", edit.AttrOr(handlers.AttrClicked, ""))
	assert.Equal(t, "clicked edit", m.status)

	m.Update(leftClick(buttons[1].x0, buttonRow))
	assert.Equal(t, []string{"hello"}, console.Lines(5))

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "✎ Edit ×2")
	assert.Contains(t, view, "Say")
	assert.Contains(t, view, "hello")
}

func TestClickMisses(t *testing.T) {
	var calls int
	set := viewctrls.NewControlSet().Set("a", viewctrls.Control{Label: "a", Func: func(any, *dom.Event, ...any) error {
		calls++
		return nil
	}})
	m, _ := newModel(t, viewctrls.Options{Controls: set})
	b := m.layout()[0]

	m.Update(leftClick(b.x0, buttonRow+1))
	m.Update(leftClick(b.x1, buttonRow))
	m.Update(tea.MouseMsg{X: b.x0, Y: buttonRow, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: b.x0, Y: buttonRow, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	assert.Equal(t, 0, calls)

	m.Update(leftClick(b.x0, buttonRow))
	assert.Equal(t, 1, calls)
}

func TestCallbackErrorShownInStatus(t *testing.T) {
	set := viewctrls.NewControlSet().Set("bad", viewctrls.Control{Label: "bad", Func: func(any, *dom.Event, ...any) error {
		return errors.New("boom")
	}})
	m, _ := newModel(t, viewctrls.Options{Controls: set})

	m.Update(leftClick(0, buttonRow))
	require.Error(t, m.err)
	assert.Equal(t, "bad: boom", m.err.Error())
	assert.Contains(t, ansi.Strip(m.View()), "bad: boom")

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.NoError(t, m.err)
}

func TestToggleRendersActive(t *testing.T) {
	set := viewctrls.NewControlSet().Set("t", viewctrls.Control{Label: "t", Tag: "a", Fn: builtin(t, handlers.Toggle)})
	m, _ := newModel(t, viewctrls.Options{Controls: set})

	m.Update(leftClick(0, buttonRow))
	assert.True(t, m.layout()[0].el.HasClass(handlers.DefaultToggleClass))
}

func TestQuitDestroys(t *testing.T) {
	m, _ := newModel(t, viewctrls.Options{Controls: viewctrls.NewControlSet().Set("a", viewctrls.Control{Func: builtin(t, handlers.Noop)})})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, 0, m.Container().ChildCount())
	assert.Empty(t, m.layout())
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	_, err := New(viewctrls.New(nil), nil, "x", viewctrls.Options{Controls: viewctrls.NewControlSet()})
	assert.ErrorIs(t, err, viewctrls.ErrConfigEmpty)
}

func TestViewTruncatesToWidth(t *testing.T) {
	set := viewctrls.NewControlSet()
	for _, k := range []string{"one", "two", "three", "four", "five", "six"} {
		set.Set(k, viewctrls.Control{Label: k, Func: builtin(t, handlers.Noop)})
	}
	m, _ := newModel(t, viewctrls.Options{Controls: set})
	m.Update(tea.WindowSizeMsg{Width: 20, Height: 10})

	for _, line := range strings.Split(m.View(), "\n") {
		assert.LessOrEqual(t, ansi.StringWidth(line), 20, line)
	}
}
