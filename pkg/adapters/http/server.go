package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/intake"
	"github.com/aretw0/intake/internal/logging"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/forms"
	"github.com/aretw0/intake/pkg/forms/catalog"
	"github.com/aretw0/intake/pkg/observability"
	"github.com/aretw0/intake/pkg/ports"
	"github.com/aretw0/intake/pkg/session"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server exposes the wizard engine over JSON.
type Server struct {
	catalog   *forms.Catalog
	engines   map[domain.FormType]*intake.Engine
	sessions  *session.Manager
	deliverer ports.Deliverer
	hooks     domain.LifecycleHooks
	metrics   *observability.Metrics
	spec      *openapi3.T
	logger    *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for request handling and the engines.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCatalog replaces the default auto/property catalog.
func WithCatalog(c *forms.Catalog) Option {
	return func(s *Server) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithMetrics records lifecycle events and serves them on /metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithLifecycleHooks adds hooks to every engine the server builds.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Server) {
		s.hooks = s.hooks.Merge(hooks)
	}
}

// New builds a server over a session manager and a deliverer. The embedded OpenAPI
// document is validated here so a broken build fails at startup.
func New(ctx context.Context, sessions *session.Manager, deliverer ports.Deliverer, opts ...Option) (*Server, error) {
	s := &Server{
		catalog:   catalog.Default(),
		sessions:  sessions,
		deliverer: deliverer,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	spec, err := LoadSpec(ctx)
	if err != nil {
		return nil, err
	}
	s.spec = spec

	hooks := s.hooks
	if s.metrics != nil {
		hooks = s.metrics.Hooks().Merge(hooks)
	}

	s.engines = make(map[domain.FormType]*intake.Engine)
	for _, t := range s.catalog.Types() {
		eng, err := intake.New(t,
			intake.WithCatalog(s.catalog),
			intake.WithDeliverer(deliverer),
			intake.WithLifecycleHooks(hooks),
			intake.WithLogger(s.logger),
		)
		if err != nil {
			return nil, fmt.Errorf("build %s engine: %w", t, err)
		}
		s.engines[t] = eng
	}
	return s, nil
}

// Spec returns the validated OpenAPI document.
func (s *Server) Spec() *openapi3.T {
	return s.spec
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(enableCORS)

	r.Get("/health", s.getHealth)
	r.Get("/info", s.getInfo)
	r.Get("/openapi.yaml", s.getOpenAPI)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Route("/forms", func(r chi.Router) {
		r.Get("/", s.listForms)
		r.Get("/{formType}", s.getForm)
		r.Get("/{formType}/graph", s.getFormGraph)
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.listSessions)
		r.Post("/", s.createSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getSession)
			r.Delete("/", s.deleteSession)
			r.Put("/sections/{section}", s.updateSection)
			r.Patch("/fields", s.updateField)
			r.Post("/sections/{section}/entries", s.addEntry)
			r.Delete("/sections/{section}/entries/{index}", s.removeEntry)
			r.Post("/advance", s.advance)
			r.Post("/retreat", s.retreat)
			r.Post("/submit", s.submit)
		})
	})

	r.Post("/api/submit-form", s.submitForm)
	return r
}

func (s *Server) engineFor(t domain.FormType) (*intake.Engine, error) {
	eng, ok := s.engines[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownFormType, t)
	}
	return eng, nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
