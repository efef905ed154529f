package style

import "github.com/charmbracelet/lipgloss"

var (
	Base    = lipgloss.Color("#1e1e2e")
	Overlay = lipgloss.Color("#6c7086")
	Surface = lipgloss.Color("#313244")
	Mauve   = lipgloss.Color("#cba6f7")
	Red     = lipgloss.Color("#f38ba8")
	Green   = lipgloss.Color("#a6e3a1")
)

// Roles the dashboard paints with.
var (
	AccentColor  = Mauve
	SuccessColor = Green
	ErrorColor   = Red
	FaintColor   = Overlay
	BorderColor  = Surface
)
