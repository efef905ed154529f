// Package form drives the "add source" form: its visibility, the draft being
// edited and the state of the submission.
package form

import (
	"context"
	"errors"
	"sync"

	"github.com/grundrisse/grundrisse/constant"
	"github.com/grundrisse/grundrisse/log"
	"github.com/grundrisse/grundrisse/source"
)

var (
	ErrSubmitPending = errors.New("a submission is already in progress")
	ErrHidden        = errors.New("the form is not open")
	ErrNotPending    = errors.New("no submission in progress")
)

// Submission is the lifecycle of the latest submit.
type Submission int

const (
	Idle Submission = iota
	Pending
	Succeeded
	Failed
)

func (s Submission) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Creator is where submitted drafts go.
type Creator interface {
	Create(ctx context.Context, draft source.Draft) error
	Refresh(ctx context.Context) error
}

// State is a snapshot of the controller.
type State struct {
	Visible    bool
	Draft      source.Draft
	Submission Submission
	Err        error
}

// Editing reports whether the draft differs from an empty one.
func (s State) Editing() bool {
	return !s.Draft.Empty()
}

// Controller is safe for concurrent use.
type Controller struct {
	creator Creator

	mu         sync.Mutex
	visible    bool
	draft      source.Draft
	submission Submission
	err        error
}

// New returns a hidden controller with an empty draft.
func New(creator Creator) *Controller {
	return &Controller{
		creator: creator,
		draft:   source.NewDraft(),
	}
}

// State returns a snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Visible:    c.visible,
		Draft:      c.draft,
		Submission: c.submission,
		Err:        c.err,
	}
}

// Visible reports whether the form is shown.
func (c *Controller) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible
}

// Draft returns the draft being edited.
func (c *Controller) Draft() source.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// ToggleLabel is the caption of the button that opens and closes the form.
func (c *Controller) ToggleLabel() string {
	if c.Visible() {
		return constant.CancelLabel
	}
	return constant.AddSourceLabel
}

// Toggle shows or hides the form. The draft is kept.
func (c *Controller) Toggle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.visible = !c.visible
}

// Cancel hides the form and discards the draft.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.visible = false
	c.draft = source.NewDraft()
	c.err = nil
	if c.submission != Pending {
		c.submission = Idle
	}
}

// SetField updates a single draft field.
// A type outside the supported set is rejected and the previous type kept.
func (c *Controller) SetField(field source.Field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := c.draft.With(field, value)
	if err != nil {
		return err
	}
	c.draft = next
	return nil
}

// Begin validates the draft and marks the submission pending.
// It returns the draft to send.
func (c *Controller) Begin() (source.Draft, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submission == Pending {
		return source.Draft{}, ErrSubmitPending
	}
	if !c.visible {
		return source.Draft{}, ErrHidden
	}
	if err := c.draft.Validate(); err != nil {
		c.err = err
		return source.Draft{}, err
	}

	c.submission = Pending
	c.err = nil
	return c.draft, nil
}

// Complete settles a pending submission with the backend's answer.
// Success clears the draft and hides the form; failure keeps both and records
// the error for display.
func (c *Controller) Complete(err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submission != Pending {
		return ErrNotPending
	}

	if err != nil {
		c.submission = Failed
		c.err = err
		return nil
	}

	c.submission = Succeeded
	c.err = nil
	c.visible = false
	c.draft = source.NewDraft()
	return nil
}

// Submit sends the draft, settles the submission and, once it succeeded,
// refreshes the list. A failed refresh is returned as is; the submission still
// counts as succeeded.
func (c *Controller) Submit(ctx context.Context) error {
	draft, err := c.Begin()
	if err != nil {
		return err
	}

	err = c.creator.Create(ctx, draft)
	if cerr := c.Complete(err); cerr != nil {
		log.Warn(cerr)
	}
	if err != nil {
		return err
	}

	return c.creator.Refresh(ctx)
}
