package runner

import (
	"errors"

	"github.com/aretw0/intake/pkg/schema"
)

// ErrAborted is returned when the user quits or interrupts the wizard.
var ErrAborted = errors.New("wizard aborted")

// Menu choices.
const (
	ChoiceNext     = "Next"
	ChoiceSubmit   = "Submit"
	ChoiceBack     = "Back"
	ChoiceQuit     = "Save and quit"
	ChoiceContinue = "Continue"
	ChoiceAdd      = "Add another"
	ChoiceRemove   = "Remove last"
)

// NavigationLabel is the message of the per-step menu.
const NavigationLabel = "What next?"

// Question is one prompt. For field questions Path is the dotted document path;
// for the navigation menu it is empty and for an entries menu it is the list path.
type Question struct {
	Path     string
	Label    string
	Kind     schema.Kind
	Required bool
	Options  []string
	Current  any
}

// Prompter asks the user for values.
type Prompter interface {
	// Ask returns the new value of a field: a string, a bool for KindBool,
	// or a number for KindNumber when the input parses.
	Ask(q Question) (any, error)

	// Choose returns one of q.Options.
	Choose(q Question) (string, error)
}
