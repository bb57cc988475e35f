package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jask/viewctrls/internal/dom"
	"github.com/jask/viewctrls/internal/handlers"
	"github.com/jask/viewctrls/internal/viewctrls"
)

// iconGlyphs maps well-known icon classes to terminal glyphs.
var iconGlyphs = map[string]string{
	"icon-edit":    "✎",
	"icon-refresh": "↻",
	"icon-remove":  "✗",
	"icon-add":     "+",
	"icon-save":    "↓",
	"icon-search":  "⌕",
}

const defaultGlyph = "•"

// button is a drawn control and the columns it covers.
type button struct {
	el     *dom.Element
	text   string
	x0, x1 int
}

// layout renders every control and records its column range on the
// button row. Buttons are separated by one space.
func (m *Model) layout() []button {
	var out []button
	x := 0
	for _, el := range m.controls() {
		text := renderButton(el)
		w := ansi.StringWidth(text)
		out = append(out, button{el: el, text: text, x0: x, x1: x + w})
		x += w + 1
	}
	return out
}

// caption is the button text of a control: icon glyph, label and click
// count.
func caption(el *dom.Element) string {
	label := el.Data("label")
	if el.HasClass(viewctrls.ClassProperCase) {
		label = cases.Title(language.Und).String(label)
	}
	var parts []string
	if g := glyph(el); g != "" {
		parts = append(parts, g)
	}
	parts = append(parts, label)
	if n := el.AttrOr(handlers.AttrClicked, ""); n != "" {
		parts = append(parts, "×"+n)
	}
	return strings.Join(parts, " ")
}

func glyph(el *dom.Element) string {
	icon := el.FirstChild()
	if icon == nil || !icon.HasClass(viewctrls.ClassIcon) {
		return ""
	}
	for _, class := range icon.Classes() {
		if g, ok := iconGlyphs[class]; ok {
			return g
		}
	}
	return defaultGlyph
}

func renderButton(el *dom.Element) string {
	text := caption(el)
	switch {
	case el.HasClass(handlers.DefaultToggleClass):
		return activeStyle.Render(text)
	case el.Tag() == "a":
		return linkStyle.Render(text)
	default:
		return buttonStyle.Render(text)
	}
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(ansi.Truncate(m.title, m.width, "…")))
	b.WriteString("\n\n")

	buttons := m.layout()
	row := make([]string, len(buttons))
	for i, btn := range buttons {
		row[i] = btn.text
	}
	b.WriteString(ansi.Truncate(strings.Join(row, " "), m.width, "…"))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(ansi.Truncate(m.err.Error(), m.width, "…")))
	case m.status != "":
		b.WriteString(statusStyle.Render(ansi.Truncate(m.status, m.width, "…")))
	}
	b.WriteString("\n")

	for _, line := range m.console.Lines(consoleLines) {
		b.WriteString(consoleStyle.Render(ansi.Truncate(line, m.width, "…")))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(ansi.Truncate(m.keys.help(), m.width, "…")))
	return b.String()
}
