// Package tui provides the primary terminal user interface implementation.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Init loads the source list and the operator's name.
func (b *statefulBubble) Init() tea.Cmd {
	return tea.Batch(b.refresh(), b.welcome())
}
