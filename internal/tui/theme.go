package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, the subset the confirmation screen uses.
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorLavender lipgloss.Color = "#b4befe"
	colorText     lipgloss.Color = "#cdd6f4"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface2 lipgloss.Color = "#585b70"
)

const (
	colorAccent  = colorPink
	colorFocus   = colorLavender
	colorCredit  = colorGreen
	colorDebit   = colorRed
	colorMuted   = colorOverlay1
	colorBorder  = colorSurface2
	colorDefault = colorText
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(colorAccent)
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorFocus)
	creditStyle   = lipgloss.NewStyle().Foreground(colorCredit)
	debitStyle    = lipgloss.NewStyle().Foreground(colorDebit)
	pendingStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	statusStyle   = lipgloss.NewStyle().Italic(true).Foreground(colorDefault)
	modalBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1)
)
