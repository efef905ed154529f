// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/grundrisse/grundrisse/color"
	"github.com/grundrisse/grundrisse/constant"
	"github.com/grundrisse/grundrisse/style"
)

// statefulKeymap defines the keyboard interactions available within various application states.
type statefulKeymap struct {
	state state

	quit, forceQuit,
	add, remove, refresh,
	openURL, logout,
	submit, discard, back,
	yes, no,
	nextField, prevField,
	prevType, nextType,
	up, down, left, right,
	top, bottom,
	showHelp key.Binding
}

// setState updates the active keymap configuration to match the specified application state.
func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp(style.Fg(color.Orange)("a"), style.Fg(color.Orange)(constant.AddSourceLabel)),
		),
		remove: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		openURL: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open url"),
		),
		logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "logout"),
		),
		submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		discard: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "discard"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", constant.CancelLabel),
		),
		yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "delete"),
		),
		no: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "keep"),
		),
		nextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		prevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
		prevType: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "previous type"),
		),
		nextType: key.NewBinding(
			key.WithKeys("right", "l", " "),
			key.WithHelp("→", "next type"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "down"),
		),
		left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "left"),
		),
		right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "right"),
		),
		top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "top"),
		),
		bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	to2 := func(a []key.Binding) ([]key.Binding, []key.Binding) {
		return a, a
	}

	switch k.state {
	case sourcesState:
		return h(k.add, k.remove, k.refresh), h(k.add, k.remove, k.refresh, k.openURL, k.logout)
	case formState:
		return h(k.submit, k.nextField, k.back), h(k.submit, k.nextField, k.prevField, k.prevType, k.nextType, k.back, k.discard, k.forceQuit)
	case confirmState:
		return to2(h(k.yes, k.no))
	default:
		return to2(h())
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}

func (k *statefulKeymap) forList() list.KeyMap {
	return list.KeyMap{
		CursorUp:      k.up,
		CursorDown:    k.down,
		NextPage:      k.right,
		PrevPage:      k.left,
		GoToStart:     k.top,
		GoToEnd:       k.bottom,
		ShowFullHelp:  k.showHelp,
		CloseFullHelp: k.showHelp,
		Quit:          k.quit,
		ForceQuit:     k.forceQuit,
	}
}
