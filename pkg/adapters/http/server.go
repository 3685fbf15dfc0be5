package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/internal/validator"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBodySize bounds request bodies; inputs are bounded again by the sanitizer.
const maxBodySize = 1 << 20

// Server exposes a runner.Service over HTTP.
type Server struct {
	Service *runner.Service
	Metrics *observability.Metrics
	Logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithMetrics records simulation errors and serves /metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.Metrics = m
	}
}

// WithLogger configures the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// NewHandler creates the HTTP handler for the service.
func NewHandler(svc *runner.Service, opts ...Option) http.Handler {
	server := &Server{
		Service: svc,
		Logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Route("/machines", func(r chi.Router) {
		r.Get("/", server.ListMachines)
		r.Get("/{name}", server.GetMachine)
		r.Get("/{name}/graph", server.GetGraph)
	})
	r.Post("/simulate", server.Simulate)
	r.Route("/runs", func(r chi.Router) {
		r.Get("/", server.ListRuns)
		r.Get("/{id}", server.GetRun)
		r.Delete("/{id}", server.DeleteRun)
	})
	if server.Metrics != nil {
		r.Handle("/metrics", server.Metrics.Handler())
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SimulateResponse is the body of a successful POST /simulate.
type SimulateResponse struct {
	RunID   string         `json:"run_id,omitempty"`
	Machine string         `json:"machine,omitempty"`
	Input   string         `json:"input"`
	Result  *domain.Result `json:"result"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// MachineResponse is the body of GET /machines/{name}.
type MachineResponse struct {
	Name       string             `json:"name"`
	Definition *domain.Definition `json:"definition"`
	Source     string             `json:"source"`
	Findings   []string           `json:"findings,omitempty"`
}

// Simulate handles POST /simulate.
func (s *Server) Simulate(w http.ResponseWriter, r *http.Request) {
	var body runner.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	outcome, err := s.Service.Simulate(r.Context(), body)
	if err != nil {
		s.observe(err)
		s.writeError(w, statusFor(err), err)
		return
	}
	if outcome.Err != nil {
		s.observe(outcome.Err)
		s.writeError(w, statusFor(outcome.Err), outcome.Err)
		return
	}

	machine := body.Machine
	if machine == "" {
		machine = "inline"
	}
	writeJSON(w, http.StatusOK, SimulateResponse{
		RunID:   outcome.RunID,
		Machine: machine,
		Input:   outcome.Input,
		Result:  outcome.Result,
	})
}

// ListMachines handles GET /machines.
func (s *Server) ListMachines(w http.ResponseWriter, r *http.Request) {
	if s.Service.Loader == nil {
		writeJSON(w, http.StatusOK, []string{})
		return
	}
	names, err := s.Service.Loader.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

// GetMachine handles GET /machines/{name}.
func (s *Server) GetMachine(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	_, def, err := s.Service.Resolve(r.Context(), runner.Request{Machine: name})
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	resp := MachineResponse{
		Name:       name,
		Definition: def,
		Source:     compiler.FormatString(def),
	}
	for _, issue := range validator.Lint(def) {
		resp.Findings = append(resp.Findings, issue.String())
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetGraph handles GET /machines/{name}/graph.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	_, def, err := s.Service.Resolve(r.Context(), runner.Request{Machine: name})
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, graph.GenerateMermaid(def, nil))
}

// ListRuns handles GET /runs.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	ids, err := s.Service.Store.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, ids)
}

// GetRun handles GET /runs/{id}.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	rec, err := s.Service.Store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// DeleteRun handles DELETE /runs/{id}.
func (s *Server) DeleteRun(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	if err := s.Service.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "turing-http",
		"version": strings.TrimSpace(turing.Version),
	})
}

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.Service.Store != nil {
		return true
	}
	s.writeError(w, http.StatusNotImplemented, errors.New("run recording is disabled"))
	return false
}

func (s *Server) observe(err error) {
	if s.Metrics != nil {
		s.Metrics.ObserveError(err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "status", status, "err", err)
	} else {
		s.Logger.Debug("request rejected", "status", status, "err", err)
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Kind: observability.ErrorKind(err)})
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrMachineNotFound), errors.Is(err, domain.ErrRunNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrMalformedDefinition),
		errors.Is(err, domain.ErrSymbolNotInAlphabet),
		errors.Is(err, runner.ErrInvalidRequest),
		errors.Is(err, runner.ErrInputTooLarge),
		errors.Is(err, runner.ErrInvalidUTF8):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrTapeUnderflow), errors.Is(err, domain.ErrStepLimitExceeded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrDeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
