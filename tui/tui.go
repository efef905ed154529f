// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grundrisse/grundrisse/registry"
	"github.com/grundrisse/grundrisse/session"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	Client      *registry.Client
	Credentials session.Provider

	// Session is forgotten on logout. Logout is unavailable when nil.
	Session session.Holder
}

// Run initializes and executes the dashboard until the operator quits.
// Requests still in flight when it returns are canceled and their results dropped.
func Run(options *Options) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bubble := newBubble(ctx, options)
	defer bubble.store.Close()

	_, err := tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}
