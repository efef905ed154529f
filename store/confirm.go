package store

import (
	"context"

	"github.com/AlecAivazis/survey/v2"
	"github.com/grundrisse/grundrisse/constant"
	"github.com/grundrisse/grundrisse/log"
)

// Confirmer asks the operator a yes/no question.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) (bool, error)

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(prompt string) (bool, error) {
	return f(prompt)
}

// Yes approves without asking.
var Yes Confirmer = ConfirmFunc(func(string) (bool, error) { return true, nil })

// Survey asks on the terminal. The default answer is no.
type Survey struct{}

// Confirm implements Confirmer.
func (Survey) Confirm(prompt string) (bool, error) {
	var answer bool
	err := survey.AskOne(&survey.Confirm{Message: prompt, Default: false}, &answer)
	return answer, err
}

// ConfirmRemove asks for approval before removing a source.
// When the operator declines, or the prompt fails, nothing is sent and false is returned.
func (s *Store) ConfirmRemove(ctx context.Context, id int, c Confirmer) (bool, error) {
	ok, err := c.Confirm(constant.ConfirmDelete)
	if err != nil {
		log.Warn(err)
		return false, err
	}
	if !ok {
		log.WithFields(log.Fields{"id": id}).Info("delete declined")
		return false, nil
	}
	return true, s.Remove(ctx, id)
}
