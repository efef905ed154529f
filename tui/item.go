// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/grundrisse/grundrisse/constant"
	"github.com/grundrisse/grundrisse/icon"
	"github.com/grundrisse/grundrisse/key"
	"github.com/grundrisse/grundrisse/render"
	"github.com/grundrisse/grundrisse/source"
	"github.com/grundrisse/grundrisse/style"
	"github.com/spf13/viper"
)

// statusStyles maps a row's class name to its terminal style.
var statusStyles = map[string]lipgloss.Style{
	constant.StatusClassActive:   lipgloss.NewStyle().Foreground(style.SuccessColor).Bold(true),
	constant.StatusClassInactive: lipgloss.NewStyle().Foreground(style.FaintColor),
}

// statusIcons maps a row's class name to its icon.
var statusIcons = map[string]icon.Icon{
	constant.StatusClassActive:   icon.Active,
	constant.StatusClassInactive: icon.Inactive,
}

// listItem implements the list.Item interface for a source.
type listItem struct {
	internal source.Source
}

func (t *listItem) row() render.Row {
	return render.NewRow(t.internal)
}

// status renders the status label in the style of its class.
func (t *listItem) status() string {
	row := t.row()
	label := row.Status
	if i := icon.Get(statusIcons[row.Class]); i != "" {
		label = i + " " + label
	}
	return statusStyles[row.Class].Render(label)
}

// Title retrieves the primary display text for the list item.
func (t *listItem) Title() string {
	return t.internal.Name + " " + t.status()
}

// Description retrieves the secondary metadata for the list item.
func (t *listItem) Description() string {
	row := t.row()
	parts := []string{style.Bold(row.Type)}
	if viper.GetBool(key.TUIShowURLs) {
		parts = append(parts, style.Faint(row.URL))
	}
	return strings.Join(parts, " • ")
}

// FilterValue returns the string used for list filtering.
func (t *listItem) FilterValue() string {
	return t.internal.Name
}
