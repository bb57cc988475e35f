// Package tui hosts a control container in the terminal. Controls are drawn
// as a row of buttons; a left click on a button dispatches a click on the
// control element.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/viewctrls/internal/dom"
	"github.com/jask/viewctrls/internal/viewctrls"
)

// buttonRow is the screen row of the controls; the title is on row 0.
const buttonRow = 2

const consoleLines = 5

// Model is the bubbletea model of the terminal host.
type Model struct {
	engine    *viewctrls.Engine
	container *dom.Element
	console   *Console
	keys      keyMap

	title  string
	width  int
	status string
	err    error
}

// New initializes the engine on a fresh container and returns the model.
// console receives handler and log output and is shown below the buttons.
func New(engine *viewctrls.Engine, console *Console, title string, opts viewctrls.Options) (*Model, error) {
	container := dom.New("div", dom.A("id", "viewctrls-host"))
	if _, err := engine.Initialize(container, opts); err != nil {
		return nil, err
	}
	if console == nil {
		console = NewConsole()
	}
	return &Model{
		engine:    engine,
		container: container,
		console:   console,
		keys:      defaultKeys(),
		title:     title,
		width:     80,
	}, nil
}

// Container returns the host element.
func (m *Model) Container() *dom.Element { return m.container }

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.engine.Destroy(m.container)
			return m, tea.Quit
		case key.Matches(msg, m.keys.Clear):
			m.console.Reset()
			m.status, m.err = "", nil
		}
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if ctrl := m.hit(msg.X, msg.Y); ctrl != nil {
			m.click(ctrl)
		}
	}
	return m, nil
}

// click dispatches a dom click. Callback errors are shown, not fatal.
func (m *Model) click(ctrl *dom.Element) {
	name := ctrl.Data("key")
	if err := ctrl.Click(); err != nil {
		m.status, m.err = "", fmt.Errorf("%s: %w", name, err)
		return
	}
	m.status, m.err = "clicked "+name, nil
}

// hit returns the control drawn at screen cell (x, y).
func (m *Model) hit(x, y int) *dom.Element {
	if y != buttonRow {
		return nil
	}
	for _, b := range m.layout() {
		if x >= b.x0 && x < b.x1 {
			return b.el
		}
	}
	return nil
}

// controls returns the rendered control elements in order.
func (m *Model) controls() []*dom.Element {
	inst, ok := m.engine.Instance(m.container)
	if !ok {
		return nil
	}
	return inst.Wrapper.ChildrenByClass(viewctrls.ClassControl)
}
