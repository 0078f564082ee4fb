package cli

import (
	"errors"

	"github.com/charmbracelet/huh"

	apperrors "github.com/julianstephens/cloudcontrol/internal/errors"
)

// HuhConfirm shows an interactive confirmation prompt. Aborting with ctrl+c
// returns ErrCancelled.
func HuhConfirm(title, description string) (bool, error) {
	var confirmed bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, apperrors.ErrCancelled
	}
	if err != nil {
		return false, err
	}
	return confirmed, nil
}

// Confirmed returns true without prompting when skip is set, and otherwise asks.
func (c *Context) Confirmed(skip bool, title, description string) (bool, error) {
	if skip {
		return true, nil
	}
	return c.Confirm(title, description)
}
