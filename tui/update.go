// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"errors"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/grundrisse/grundrisse/internal/ui"
	"github.com/grundrisse/grundrisse/log"
	"github.com/grundrisse/grundrisse/open"
	"github.com/grundrisse/grundrisse/source"
	"github.com/grundrisse/grundrisse/store"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Process Ephemeral UI Notifications
	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmds = append(cmds, uiCmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case spinner.TickMsg:
		if b.loading() {
			var cmd tea.Cmd
			b.spinnerC, cmd = b.spinnerC.Update(msg)
			cmds = append(cmds, cmd)
		}
		return b, tea.Batch(cmds...)
	case welcomeMsg:
		b.username = mo.Some(msg.username)
		return b, tea.Batch(cmds...)
	case sourcesFetchedMsg:
		cmds = append(cmds, b.syncList())
		if msg.err != nil && !errors.Is(msg.err, store.ErrClosed) {
			cmds = append(cmds, ui.Notify("%s", msg.err))
		}
		return b, tea.Batch(cmds...)
	case sourceCreatedMsg:
		return b, tea.Batch(append(cmds, b.onCreated(msg))...)
	case sourceRemovedMsg:
		return b, tea.Batch(append(cmds, b.onRemoved(msg))...)
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch b.state {
	case sourcesState:
		cmd = b.updateSources(msg)
	case formState:
		cmd = b.updateForm(msg)
	case confirmState:
		cmd = b.updateConfirm(msg)
	}

	return b, tea.Batch(append(cmds, cmd)...)
}

func (b *statefulBubble) onCreated(msg sourceCreatedMsg) tea.Cmd {
	if err := b.form.Complete(msg.err); err != nil {
		log.Warn(err)
		return nil
	}

	if msg.err != nil {
		return nil
	}

	b.syncInputs()
	if b.state == formState {
		b.previousState()
	}
	return tea.Batch(ui.Notify("Source added"), b.refresh())
}

func (b *statefulBubble) onRemoved(msg sourceRemovedMsg) tea.Cmd {
	cmds := []tea.Cmd{b.syncList()}

	switch {
	case !msg.removed && msg.err == nil:
		return cmds[0]
	case msg.err != nil:
		cmds = append(cmds, ui.Notify("%s", msg.err))
	default:
		cmds = append(cmds, ui.Notify("Deleted %s", msg.source.Name))
	}

	return tea.Batch(cmds...)
}

func (b *statefulBubble) openForm() tea.Cmd {
	if !b.form.Visible() {
		b.form.Toggle()
	}
	b.syncInputs()
	b.newState(formState)
	return b.focusField(source.FieldName)
}

func (b *statefulBubble) updateSources(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.add):
			return b.openForm()
		case bubblesKey.Matches(msg, b.keymap.refresh):
			return b.refresh()
		case bubblesKey.Matches(msg, b.keymap.remove):
			if src, ok := b.selected(); ok {
				b.pendingRemoval = mo.Some(src)
				b.newState(confirmState)
			}
			return nil
		case bubblesKey.Matches(msg, b.keymap.openURL):
			src, ok := b.selected()
			if !ok {
				return nil
			}
			if err := open.Start(src.URL); err != nil {
				log.Error(err)
				return ui.Notify("%s", err)
			}
			return ui.Notify("Opened %s", src.URL)
		case bubblesKey.Matches(msg, b.keymap.logout):
			if b.session == nil {
				return ui.Notify("Logout is unavailable with a configured token")
			}
			if err := b.session.Delete(); err != nil {
				log.Error(err)
				return ui.Notify("%s", err)
			}
			return tea.Quit
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.sourcesC.Items()); n > 0 && b.sourcesC.Index() == 0 {
				b.sourcesC.Select(n - 1)
				return nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.sourcesC.Items()); n > 0 && b.sourcesC.Index() == n-1 {
				b.sourcesC.Select(0)
				return nil
			}
		}
	}

	b.sourcesC, cmd = b.sourcesC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateForm(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			b.form.Toggle()
			b.previousState()
			return nil
		case bubblesKey.Matches(msg, b.keymap.discard):
			b.form.Cancel()
			b.syncInputs()
			b.previousState()
			return nil
		case bubblesKey.Matches(msg, b.keymap.submit):
			return b.submit()
		case bubblesKey.Matches(msg, b.keymap.nextField):
			return b.focusField(b.shiftField(1))
		case bubblesKey.Matches(msg, b.keymap.prevField):
			return b.focusField(b.shiftField(-1))
		}

		if b.focus == source.FieldType {
			switch {
			case bubblesKey.Matches(msg, b.keymap.nextType):
				b.shiftType(1)
			case bubblesKey.Matches(msg, b.keymap.prevType):
				b.shiftType(-1)
			}
			return nil
		}
	}

	switch b.focus {
	case source.FieldName:
		b.nameC, cmd = b.nameC.Update(msg)
		b.setField(source.FieldName, b.nameC.Value())
	case source.FieldURL:
		b.urlC, cmd = b.urlC.Update(msg)
		b.setField(source.FieldURL, b.urlC.Value())
	}

	return cmd
}

func (b *statefulBubble) setField(field source.Field, value string) {
	if err := b.form.SetField(field, value); err != nil {
		log.Warn(err)
	}
}

// shiftField returns the field delta positions away from the focused one.
func (b *statefulBubble) shiftField(delta int) source.Field {
	fields := source.Fields()
	i := lo.IndexOf(fields, b.focus)
	return fields[(i+delta+len(fields))%len(fields)]
}

// shiftType cycles the draft type through the supported types.
func (b *statefulBubble) shiftType(delta int) {
	types := source.Types()
	i := lo.IndexOf(types, b.form.Draft().Type)
	next := types[(i+delta+len(types))%len(types)]
	b.setField(source.FieldType, string(next))
}

func (b *statefulBubble) updateConfirm(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	src, pending := b.pendingRemoval.Get()
	if !pending {
		b.previousState()
		return nil
	}

	switch {
	case bubblesKey.Matches(keyMsg, b.keymap.yes):
		b.pendingRemoval = mo.None[source.Source]()
		b.previousState()
		return b.remove(src, true)
	case bubblesKey.Matches(keyMsg, b.keymap.no):
		b.pendingRemoval = mo.None[source.Source]()
		b.previousState()
		return b.remove(src, false)
	}

	return nil
}
