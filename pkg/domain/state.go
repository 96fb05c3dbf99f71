package domain

import (
	"math"
	"time"
)

// WizardStatus defines the lifecycle phase of a wizard session.
type WizardStatus string

const (
	StatusEditing   WizardStatus = "editing"   // Steps [0, n-2]
	StatusSubmitted WizardStatus = "submitted" // Terminal confirmation step (n-1)
)

// State represents the current snapshot of a wizard session.
type State struct {
	// SessionID identifies the session in stores and logs.
	SessionID string `json:"session_id"`

	// FormType selects the registry and schema that govern the document.
	FormType FormType `json:"form_type"`

	// StepIndex is the current position in the registry, in [0, stepCount-1].
	StepIndex int `json:"step_index"`

	// Document holds every declared section, seeded with defaults at creation.
	Document Document `json:"document"`

	// Errors is replaced wholesale on each validation pass.
	Errors ErrorMap `json:"errors"`

	// Submitting is true while a delivery attempt is in flight.
	Submitting bool `json:"submitting"`

	// Status is StatusSubmitted only after a successful delivery.
	Status WizardStatus `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewState creates a fresh session at step 0 with the given seeded document.
func NewState(sessionID string, formType FormType, seeded Document) *State {
	now := time.Now().UTC()
	return &State{
		SessionID: sessionID,
		FormType:  formType,
		StepIndex: 0,
		Document:  seeded,
		Errors:    make(ErrorMap),
		Status:    StatusEditing,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Snapshot returns a deep copy of the state.
func (s *State) Snapshot() *State {
	if s == nil {
		return nil
	}
	next := *s
	next.Document = s.Document.Clone()
	next.Errors = s.Errors.Clone()
	return &next
}

// IsSubmitted reports whether the session reached the terminal confirmation step.
func (s *State) IsSubmitted() bool {
	return s.Status == StatusSubmitted
}

// Progress describes the wizard position for progress indicators.
type Progress struct {
	Step    int    `json:"step"`    // 1-based
	Of      int    `json:"of"`      // total steps, confirmation included
	Name    string `json:"name"`    // current step name
	Percent int    `json:"percent"` // round((step+1)/n*100)
}

// NewProgress computes the progress indicator for index out of total steps.
func NewProgress(index, total int, name string) Progress {
	if total <= 0 {
		return Progress{Name: name}
	}
	return Progress{
		Step:    index + 1,
		Of:      total,
		Name:    name,
		Percent: int(math.Round(float64(index+1) / float64(total) * 100)),
	}
}
