package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/fsm"
	"github.com/aretw0/fsm/internal/logging"
	"github.com/aretw0/fsm/pkg/definition"
	"github.com/aretw0/fsm/pkg/domain"
	"github.com/aretw0/fsm/pkg/runner"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Catalog is the read side of the automaton registry.
type Catalog interface {
	Names() []string
	Get(name string) (*definition.Automaton, error)
}

// Option defines a functional option for the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithGatherer exposes the given metrics on /metrics instead of the default gatherer.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// WithMaxBodyBytes caps the size of a run request body.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		s.MaxBodyBytes = n
	}
}

// DefaultMaxBodyBytes is the run request limit unless WithMaxBodyBytes says otherwise.
const DefaultMaxBodyBytes = 1 << 20

// Server serves the automata of a Catalog over HTTP.
type Server struct {
	Automata     Catalog
	Runner       *runner.Runner
	Gatherer     prometheus.Gatherer
	Logger       *slog.Logger
	MaxBodyBytes int64
}

// RunRequest is the body of POST /automata/{name}/run.
type RunRequest struct {
	Input *string `json:"input"`
	Trace bool    `json:"trace"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewHandler creates a new HTTP handler for the catalog.
func NewHandler(automata Catalog, r *runner.Runner, opts ...Option) http.Handler {
	s := &Server{
		Automata:     automata,
		Runner:       r,
		Gatherer:     prometheus.DefaultGatherer,
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Logger == nil {
		s.Logger = logging.NewNop()
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(s.logRequests)

	router.Get("/health", s.GetHealth)
	router.Get("/info", s.GetInfo)
	router.Get("/openapi.yaml", s.GetSpec)
	router.Get("/swagger", s.GetSwagger)
	router.Get("/automata", s.ListAutomata)
	router.Get("/automata/{name}", s.GetAutomaton)
	router.Post("/automata/{name}/run", s.RunAutomaton)
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))

	return router
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.Logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if doc, err := loadSpec(); err == nil && doc.Info != nil {
		apiVersion = doc.Info.Version
	} else if err != nil {
		s.Logger.Error("load openapi spec", "error", err)
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "fsm-http",
		"version":     fsm.Version,
		"api_version": apiVersion,
	})
}

// ListAutomata handles the GET /automata request.
func (s *Server) ListAutomata(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Automata.Names())
}

// GetAutomaton handles the GET /automata/{name} request.
func (s *Server) GetAutomaton(w http.ResponseWriter, r *http.Request) {
	a, err := s.lookup(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, a.Definition())
}

// RunAutomaton handles the POST /automata/{name}/run request.
func (s *Server) RunAutomaton(w http.ResponseWriter, r *http.Request) {
	a, err := s.lookup(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var body RunRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		s.writeJSON(w, status, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	if body.Input == nil {
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body: missing input"})
		return
	}

	var res *domain.Result
	if body.Trace {
		res, err = s.Runner.Trace(r.Context(), a, *body.Input)
	} else {
		res, err = s.Runner.Evaluate(r.Context(), a, *body.Input)
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// -- Helpers --

func (s *Server) lookup(r *http.Request) (*definition.Automaton, error) {
	name, err := bindName(chi.URLParam(r, "name"))
	if err != nil {
		return nil, err
	}
	return s.Automata.Get(name)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrAutomatonNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownSymbol), errors.Is(err, errInvalidParam):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		s.Logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("encode response", "error", err)
	}
}
