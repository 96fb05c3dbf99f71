package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/forms"
	"github.com/aretw0/intake/pkg/registry"
	"github.com/aretw0/intake/pkg/schema"
)

// SessionView is the JSON shape of a wizard session.
type SessionView struct {
	ID            string          `json:"id"`
	FormType      domain.FormType `json:"formType"`
	Step          int             `json:"step"`
	Section       string          `json:"section,omitempty"`
	Progress      domain.Progress `json:"progress"`
	Document      domain.Document `json:"document"`
	Errors        domain.ErrorMap `json:"errors"`
	StepErrors    domain.ErrorMap `json:"stepErrors"`
	Submitting    bool            `json:"submitting"`
	Status        string          `json:"status"`
	ApplicantName string          `json:"applicantName,omitempty"`
}

// TransitionView wraps the session after a transition with its outcome.
type TransitionView struct {
	Outcome domain.Outcome `json:"outcome"`
	Error   string         `json:"error,omitempty"`
	Session SessionView    `json:"session"`
}

// FormSummary lists a registered form.
type FormSummary struct {
	Type  domain.FormType `json:"type"`
	Title string          `json:"title"`
	Steps int             `json:"steps"`
}

// FormView describes a form's steps and field tables.
type FormView struct {
	Type     domain.FormType `json:"type"`
	Title    string          `json:"title"`
	Steps    []registry.Step `json:"steps"`
	Sections []schema.Field  `json:"sections"`
}

// FieldError is one violation in a submit-form response.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// MessageResponse is the body of /api/submit-form.
type MessageResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newSessionView(def *forms.Definition, s *domain.State) SessionView {
	section := def.Registry.SectionAt(s.StepIndex)
	view := SessionView{
		ID:         s.SessionID,
		FormType:   s.FormType,
		Step:       s.StepIndex,
		Section:    section,
		Progress:   def.Progress(s.StepIndex),
		Document:   s.Document,
		Errors:     s.Errors,
		StepErrors: s.Errors.ForSection(section),
		Submitting: s.Submitting,
		Status:     string(s.Status),
	}
	if view.Errors == nil {
		view.Errors = domain.ErrorMap{}
	}
	if s.IsSubmitted() {
		view.ApplicantName = def.ApplicantName(s.Document)
	}
	return view
}

func newFormView(def *forms.Definition) FormView {
	return FormView{
		Type:     def.Type,
		Title:    def.Title,
		Steps:    def.Registry.Steps(),
		Sections: def.Schema.Sections(),
	}
}

func fieldErrors(m domain.ErrorMap) []FieldError {
	out := make([]FieldError, 0, len(m))
	for _, p := range m.Paths() {
		out = append(out, FieldError{Path: p, Message: m[p]})
	}
	return out
}

// statusForOutcome maps a transition outcome to its HTTP status.
func statusForOutcome(o domain.Outcome) int {
	switch o {
	case domain.OutcomeValidationFailed:
		return http.StatusUnprocessableEntity
	case domain.OutcomeDeliveryFailed:
		return http.StatusBadGateway
	default:
		return http.StatusOK
	}
}

// statusForError maps engine and store errors to HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSubmitInFlight),
		errors.Is(err, domain.ErrAlreadySubmitted),
		errors.Is(err, domain.ErrEntryLimit),
		errors.Is(err, domain.ErrEntryNotRemovable):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnknownSection),
		errors.Is(err, domain.ErrUnknownFormType),
		errors.Is(err, domain.ErrNotRepeatable),
		errors.Is(err, domain.ErrInvalidPath):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
