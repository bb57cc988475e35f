package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha subset.
const (
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorLavender lipgloss.Color = "#b4befe"
	colorText     lipgloss.Color = "#cdd6f4"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorBase     lipgloss.Color = "#1e1e2e"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorMauve)
	buttonStyle  = lipgloss.NewStyle().Padding(0, 1).Foreground(colorText).Background(colorSurface1)
	activeStyle  = buttonStyle.Foreground(colorBase).Background(colorLavender)
	linkStyle    = lipgloss.NewStyle().Padding(0, 1).Foreground(colorLavender).Underline(true)
	statusStyle  = lipgloss.NewStyle().Foreground(colorGreen)
	errorStyle   = lipgloss.NewStyle().Foreground(colorRed)
	consoleStyle = lipgloss.NewStyle().Foreground(colorOverlay1)
	helpStyle    = lipgloss.NewStyle().Foreground(colorOverlay1).Italic(true)
)
