package http

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/schema"
	"github.com/google/uuid"
)

const (
	msgSubmitted   = "Form submitted successfully"
	msgInvalidData = "Invalid form data"
	msgInternal    = "Internal server error"
)

// submitForm validates and delivers a complete application in one request.
// It runs the same engine path as the wizard: every declared section present in
// data is applied, then the document is submitted. A declared section absent
// from data is reported as required on its own path and nothing is delivered.
//
//	200 {message}                    delivered
//	400 {message, errors[]}          bad JSON, unknown form type or invalid data
//	500 {message}                    delivery failed
func (s *Server) submitForm(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FormType domain.FormType `json:"formType"`
		Data     map[string]any  `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, MessageResponse{
			Message: msgInvalidData,
			Errors:  []FieldError{{Path: "", Message: "malformed JSON"}},
		})
		return
	}

	eng, err := s.engineFor(body.FormType)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, MessageResponse{
			Message: msgInvalidData,
			Errors:  []FieldError{{Path: "formType", Message: "must be one of: " + s.formTypeList()}},
		})
		return
	}
	if body.Data == nil {
		writeJSON(w, http.StatusBadRequest, MessageResponse{
			Message: msgInvalidData,
			Errors:  []FieldError{{Path: "data", Message: "required"}},
		})
		return
	}

	ctx := r.Context()
	def := eng.Definition()
	state := eng.Start(ctx, uuid.NewString())
	var missing []string
	for _, section := range def.Registry.Sections() {
		value, ok := body.Data[section]
		if !ok {
			missing = append(missing, section)
			continue
		}
		if state, _, err = eng.Update(ctx, state, section, value); err != nil {
			s.logger.Error("submit-form update failed", "section", section, "error", err)
			writeJSON(w, http.StatusInternalServerError, MessageResponse{Message: msgInternal})
			return
		}
	}

	if len(missing) > 0 {
		_, verr := schema.ValidateDocument(def.Schema, state.Document)
		errs := schema.ToErrorMap(verr)
		for _, section := range missing {
			errs.ClearPath(section)
			errs[section] = "required"
		}
		writeJSON(w, http.StatusBadRequest, MessageResponse{Message: msgInvalidData, Errors: fieldErrors(errs)})
		return
	}

	_, res, err := eng.Submit(ctx, state)
	switch {
	case err != nil:
		s.logger.Error("submit-form failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, MessageResponse{Message: msgInternal})
	case res.Outcome == domain.OutcomeValidationFailed:
		writeJSON(w, http.StatusBadRequest, MessageResponse{Message: msgInvalidData, Errors: fieldErrors(res.Errors)})
	case res.Outcome == domain.OutcomeDeliveryFailed:
		s.logger.Error("Form submission error", "form_type", body.FormType, "error", res.Err)
		writeJSON(w, http.StatusInternalServerError, MessageResponse{Message: msgInternal})
	default:
		writeJSON(w, http.StatusOK, MessageResponse{Message: msgSubmitted})
	}
}

func (s *Server) formTypeList() string {
	types := make([]string, 0, len(s.engines))
	for t := range s.engines {
		types = append(types, string(t))
	}
	sort.Strings(types)
	return strings.Join(types, ", ")
}
