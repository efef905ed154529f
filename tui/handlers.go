// Package tui provides the primary terminal user interface implementation.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/grundrisse/grundrisse/log"
	"github.com/grundrisse/grundrisse/session"
	"github.com/grundrisse/grundrisse/source"
	"github.com/grundrisse/grundrisse/store"
)

// sourcesFetchedMsg reports the end of a refresh.
type sourcesFetchedMsg struct {
	err error
}

// sourceCreatedMsg reports the backend's answer to a submitted draft.
type sourceCreatedMsg struct {
	err error
}

// sourceRemovedMsg reports the outcome of the delete prompt.
type sourceRemovedMsg struct {
	source  source.Source
	removed bool
	err     error
}

// welcomeMsg carries the operator's name for the header.
type welcomeMsg struct {
	username string
}

// refresh fetches the list in the background while the spinner runs.
func (b *statefulBubble) refresh() tea.Cmd {
	return tea.Batch(b.spinnerC.Tick, func() tea.Msg {
		return sourcesFetchedMsg{err: b.store.Refresh(b.ctx)}
	})
}

// submit starts a submission of the draft. Validation errors stay on the form.
func (b *statefulBubble) submit() tea.Cmd {
	draft, err := b.form.Begin()
	if err != nil {
		log.Warn(err)
		return nil
	}

	return func() tea.Msg {
		return sourceCreatedMsg{err: b.store.Create(b.ctx, draft)}
	}
}

// remove settles the delete prompt. A declined prompt sends nothing.
func (b *statefulBubble) remove(src source.Source, approved bool) tea.Cmd {
	answer := store.ConfirmFunc(func(string) (bool, error) {
		return approved, nil
	})

	settle := func() tea.Msg {
		removed, err := b.store.ConfirmRemove(b.ctx, src.ID, answer)
		return sourceRemovedMsg{source: src, removed: removed, err: err}
	}

	if !approved {
		return settle
	}
	// the accepted delete is followed by a refresh
	return tea.Batch(b.spinnerC.Tick, settle)
}

// welcome resolves the operator's name from the token, asking the backend
// when the token carries no subject.
func (b *statefulBubble) welcome() tea.Cmd {
	return func() tea.Msg {
		if b.credentials == nil {
			return nil
		}

		token, err := b.credentials.Token()
		if err != nil {
			return nil
		}

		if claims, err := session.PeekClaims(token); err == nil {
			if subject, ok := claims.Subject.Get(); ok {
				return welcomeMsg{username: subject}
			}
		}

		user, err := b.client.Me(b.ctx)
		if err != nil {
			log.Warn(err)
			return nil
		}
		return welcomeMsg{username: user.Username}
	}
}
