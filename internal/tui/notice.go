package tui

import (
	"errors"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/vcardshell/internal/common"
)

// notices is a queue of blocking messages. Only the first is shown; it must
// be dismissed before the scene below receives keys again.
type notices []string

func (n notices) active() bool { return len(n) > 0 }

func (n notices) dismiss() notices {
	if len(n) == 0 {
		return n
	}
	return n[1:]
}

func (n notices) render(s Styles, width, height int) string {
	box := s.Notice.Render(n[0] + "\n\n" + s.Muted.Render("enter ok"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// describe turns a submission error into the text of a notice. blank is
// the message for a missing required field, which differs per form.
func describe(err error, blank string) string {
	switch {
	case errors.Is(err, common.ErrBlankField):
		return blank
	case errors.Is(err, common.ErrDuplicateFile):
		return "File already exists"
	case errors.Is(err, common.ErrBadFileName):
		return "File name must not contain a directory"
	case errors.Is(err, common.ErrCreation):
		return "Error creating card"
	case errors.Is(err, common.ErrParse):
		return "Error reading card"
	case errors.Is(err, common.ErrEdit):
		return "Card editing failed"
	case errors.Is(err, common.ErrValidation):
		return "Card validation failed"
	case errors.Is(err, common.ErrWrite):
		return "Writing to file failed"
	case errors.Is(err, common.ErrNotFound):
		return "Card is not in the contact cache"
	case errors.Is(err, common.ErrTransaction):
		return "Updating the contact cache failed"
	}
	return "Unexpected error: " + err.Error()
}
