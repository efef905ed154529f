// Package ui provides internal state management and rendering utilities for ephemeral terminal notifications.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grundrisse/grundrisse/style"
)

// Lifetime is how long a notification stays on screen.
const Lifetime = 3 * time.Second

// Model encapsulates the state for displaying non-blocking terminal alerts.
type Model struct {
	notification string
	notifiedAt   time.Time
}

// NotificationMsg sets the visible notification.
type NotificationMsg string

// ClearNotificationMsg is a Bubbletea message used to reset the visual notification state.
type ClearNotificationMsg struct {
	at time.Time
}

// Notify returns a tea.Cmd that shows a formatted notification.
func Notify(format string, args ...any) tea.Cmd {
	return func() tea.Msg {
		return NotificationMsg(fmt.Sprintf(format, args...))
	}
}

// ClearNotification returns a delayed tea.Cmd that clears the notification shown at the given time.
func ClearNotification(at time.Time) tea.Cmd {
	return tea.Tick(Lifetime, func(time.Time) tea.Msg {
		return ClearNotificationMsg{at: at}
	})
}

// Notification returns the visible notification, if any.
func (m *Model) Notification() string {
	return m.notification
}

// Update processes incoming messages to modify the notification state.
// A clear request for an older notification is ignored.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotificationMsg:
		m.notification = string(msg)
		m.notifiedAt = time.Now()
		return ClearNotification(m.notifiedAt)
	case ClearNotificationMsg:
		if msg.at.Equal(m.notifiedAt) {
			m.notification = ""
		}
		return nil
	}
	return nil
}

// View appends the current notification to the last line of the view.
func (m *Model) View(mainContent string) string {
	if m.notification == "" {
		return mainContent
	}

	lines := strings.Split(mainContent, "\n")
	lines[len(lines)-1] += "  " + style.Faint(m.notification)
	return strings.Join(lines, "\n")
}
