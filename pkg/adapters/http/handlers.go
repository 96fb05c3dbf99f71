package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/aretw0/intake"
	"github.com/aretw0/intake/internal/presentation/graph"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/go-chi/chi/v5"
)

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if s.spec != nil && s.spec.Info != nil {
		apiVersion = s.spec.Info.Version
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "intake-http",
		"version":     intake.Version,
		"api_version": apiVersion,
	})
}

func (s *Server) getOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(RawSpec())
}

func (s *Server) listForms(w http.ResponseWriter, r *http.Request) {
	defs := s.catalog.Definitions()
	out := make([]FormSummary, 0, len(defs))
	for _, def := range defs {
		out = append(out, FormSummary{Type: def.Type, Title: def.Title, Steps: def.Registry.Len()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getForm(w http.ResponseWriter, r *http.Request) {
	def, err := s.catalog.Lookup(domain.FormType(chi.URLParam(r, "formType")))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, newFormView(def))
}

// getFormGraph renders the step flowchart; with ?session_id= the session's position is overlaid.
func (s *Server) getFormGraph(w http.ResponseWriter, r *http.Request) {
	def, err := s.catalog.Lookup(domain.FormType(chi.URLParam(r, "formType")))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	var overlay *graph.Overlay
	if id := r.URL.Query().Get("session_id"); id != "" {
		state, err := s.sessions.Load(r.Context(), id)
		if err != nil {
			writeError(w, statusForError(err), err.Error())
			return
		}
		if state.FormType != def.Type {
			writeError(w, http.StatusBadRequest, "session belongs to another form")
			return
		}
		overlay = &graph.Overlay{Current: state.StepIndex, Submitted: state.IsSubmitted()}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(graph.GenerateMermaid(def.Registry, overlay)))
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.sessions.List(r.Context())
	if err != nil {
		s.logger.Error("list sessions failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, ids)
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FormType domain.FormType `json:"formType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	eng, err := s.engineFor(body.FormType)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	state, err := s.sessions.Create(r.Context(), eng)
	if err != nil {
		s.logger.Error("create session failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	w.Header().Set("Location", "/sessions/"+state.SessionID)
	writeJSON(w, http.StatusCreated, newSessionView(eng.Definition(), state))
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	state, err := s.sessions.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	eng, err := s.engineFor(state.FormType)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionView(eng.Definition(), state))
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) updateSection(w http.ResponseWriter, r *http.Request) {
	var value any
	if err := json.NewDecoder(r.Body).Decode(&value); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	section := chi.URLParam(r, "section")
	s.transition(w, r, func(ctx context.Context, eng *intake.Engine, st *domain.State) (*domain.State, domain.Result, error) {
		return eng.Update(ctx, st, section, value)
	})
}

func (s *Server) updateField(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Path  string `json:"path"`
		Value any    `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Path == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.transition(w, r, func(ctx context.Context, eng *intake.Engine, st *domain.State) (*domain.State, domain.Result, error) {
		return eng.UpdateField(ctx, st, body.Path, body.Value)
	})
}

func (s *Server) addEntry(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")
	s.transition(w, r, func(ctx context.Context, eng *intake.Engine, st *domain.State) (*domain.State, domain.Result, error) {
		return eng.AddEntry(ctx, st, section)
	})
}

func (s *Server) removeEntry(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "index must be an integer")
		return
	}
	s.transition(w, r, func(ctx context.Context, eng *intake.Engine, st *domain.State) (*domain.State, domain.Result, error) {
		return eng.RemoveEntry(ctx, st, section, index)
	})
}

func (s *Server) advance(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, func(ctx context.Context, eng *intake.Engine, st *domain.State) (*domain.State, domain.Result, error) {
		return eng.Advance(ctx, st)
	})
}

func (s *Server) retreat(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, func(ctx context.Context, eng *intake.Engine, st *domain.State) (*domain.State, domain.Result, error) {
		return eng.Retreat(ctx, st)
	})
}

// submit runs the two-phase submit: other requests on the session get 409 while
// the delivery is in flight.
func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	state, err := s.sessions.Load(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	eng, err := s.engineFor(state.FormType)
	if err != nil {
		s.fail(w, err)
		return
	}

	next, res, err := s.sessions.Submit(r.Context(), id, eng)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeTransition(w, eng, next, res)
}

type engineOp func(ctx context.Context, eng *intake.Engine, state *domain.State) (*domain.State, domain.Result, error)

func (s *Server) transition(w http.ResponseWriter, r *http.Request, op engineOp) {
	var eng *intake.Engine
	next, res, err := s.sessions.Apply(r.Context(), chi.URLParam(r, "id"),
		func(ctx context.Context, state *domain.State) (*domain.State, domain.Result, error) {
			var err error
			if eng, err = s.engineFor(state.FormType); err != nil {
				return nil, domain.Result{}, err
			}
			return op(ctx, eng, state)
		})
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeTransition(w, eng, next, res)
}

func (s *Server) writeTransition(w http.ResponseWriter, eng *intake.Engine, next *domain.State, res domain.Result) {
	view := TransitionView{
		Outcome: res.Outcome,
		Session: newSessionView(eng.Definition(), next),
	}
	if res.Err != nil {
		view.Error = res.Err.Error()
	}
	writeJSON(w, statusForOutcome(res.Outcome), view)
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
		writeError(w, status, "internal server error")
		return
	}
	writeError(w, status, err.Error())
}
