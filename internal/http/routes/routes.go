package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/munnerz/goautoneg"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/briangreenhill/workoutplanner/internal/config"
	"github.com/briangreenhill/workoutplanner/internal/generators"
	appmw "github.com/briangreenhill/workoutplanner/internal/http/middleware"
	"github.com/briangreenhill/workoutplanner/internal/jobs"
	"github.com/briangreenhill/workoutplanner/internal/metrics"
	"github.com/briangreenhill/workoutplanner/internal/planner"
)

// Enqueuer schedules background plan jobs.
type Enqueuer interface {
	Enqueue(ctx context.Context, req planner.Request) (string, error)
}

// JobLookup reads the state of a background plan job.
type JobLookup interface {
	Get(id string) (*jobs.Status, error)
}

type Server struct {
	Router     *chi.Mux
	Generators *generators.Registry
	Catalog    *planner.Catalog
	Jobs       Enqueuer  // nil runs llm requests inline
	Lookup     JobLookup // nil disables job lookups
	Ready      func(ctx context.Context) error
	Log        zerolog.Logger
}

type ServerOptions struct {
	Cfg        config.Config
	Generators *generators.Registry
	Catalog    *planner.Catalog
	Jobs       Enqueuer
	Lookup     JobLookup
	Ready      func(ctx context.Context) error
	Metrics    *metrics.Metrics
	Log        zerolog.Logger
}

func New(opts ServerOptions) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(hlog.NewHandler(opts.Log))
	r.Use(hlog.RequestIDHandler("req_id", "X-Request-Id"))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))
	r.Use(chimw.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: opts.Cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
	}).Handler)

	catalog := opts.Catalog
	if catalog == nil {
		catalog = planner.DefaultCatalog()
	}
	registry := opts.Generators
	if registry == nil {
		registry = generators.NewRegistry()
	}
	s := &Server{
		Router:     r,
		Generators: registry,
		Catalog:    catalog,
		Jobs:       opts.Jobs,
		Lookup:     opts.Lookup,
		Ready:      opts.Ready,
		Log:        opts.Log,
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("write health check response")
		}
	})
	r.Get("/readyz", s.handleReady)
	if opts.Cfg.MetricsEnabled && opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)
		r.Get("/generators", s.handleGenerators)
		r.With(appmw.RequireJSON).Post("/plans", s.handlePlan)
		r.With(appmw.RequireJSON).Post("/plans/llm", s.handleLLMPlan)
		r.Get("/plans/llm/{jobID}", s.handleLLMPlanStatus)
	})

	return s
}

// RedisReadiness pings client. The worker queue is unusable while Redis is down.
func RedisReadiness(client *redis.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}

type planResponse struct {
	Strategy string `json:"strategy"`
	Plan     string `json:"plan"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

type jobResponse struct {
	ID        string `json:"id"`
	StatusURL string `json:"status_url"`
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.Ready != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.Ready(ctx); err != nil {
			hlog.FromRequest(r).Warn().Err(err).Msg("readiness check failed")
			writeJSON(w, r, http.StatusServiceUnavailable, errorResponse{Error: "not ready"})
			return
		}
	}
	if _, err := w.Write([]byte("ok")); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("write readiness response")
	}
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.Catalog.Snapshot())
}

func (s *Server) handleGenerators(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string][]string{"generators": s.Generators.List()})
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	s.generate(w, r, generators.NameTemplate, req)
}

func (s *Server) handleLLMPlan(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	if s.Jobs == nil {
		s.generate(w, r, generators.NameLLM, req)
		return
	}

	id, err := s.Jobs.Enqueue(r.Context(), req)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("enqueue plan job")
		writeJSON(w, r, http.StatusServiceUnavailable, errorResponse{Error: "failed to queue plan job"})
		return
	}
	w.Header().Set("Location", "/v1/plans/llm/"+id)
	writeJSON(w, r, http.StatusAccepted, jobResponse{ID: id, StatusURL: "/v1/plans/llm/" + id})
}

func (s *Server) handleLLMPlanStatus(w http.ResponseWriter, r *http.Request) {
	if s.Lookup == nil {
		writeJSON(w, r, http.StatusNotFound, errorResponse{Error: "background jobs are not enabled"})
		return
	}

	status, err := s.Lookup.Get(chi.URLParam(r, "jobID"))
	switch {
	case errors.Is(err, jobs.ErrNotFound):
		writeJSON(w, r, http.StatusNotFound, errorResponse{Error: err.Error()})
	case err != nil:
		hlog.FromRequest(r).Error().Err(err).Msg("look up plan job")
		writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "failed to look up plan job"})
	default:
		writeJSON(w, r, http.StatusOK, status)
	}
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request, name string, req planner.Request) {
	gen, ok := s.Generators.Get(name)
	if !ok {
		writeJSON(w, r, http.StatusServiceUnavailable, errorResponse{Error: name + " generator is not configured"})
		return
	}

	text, err := gen.Generate(r.Context(), req)
	if ve, isValidation := planner.AsValidationError(err); isValidation {
		writeJSON(w, r, http.StatusUnprocessableEntity, errorResponse{Error: ve.Message, Kind: ve.KindName()})
		return
	}
	if err != nil {
		writeJSON(w, r, http.StatusBadGateway, errorResponse{Error: "plan generation failed"})
		return
	}
	if wantsText(r) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, err := w.Write([]byte(text)); err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("write plan")
		}
		return
	}
	writeJSON(w, r, http.StatusOK, planResponse{Strategy: name, Plan: text})
}

var planContentTypes = []string{"application/json", "text/plain"}

// wantsText reports whether the client prefers the bare plan text over JSON.
func wantsText(r *http.Request) bool {
	return goautoneg.Negotiate(r.Header.Get("Accept"), planContentTypes) == "text/plain"
}

// decodeRequest accepts the same argument object as the tool interface.
func decodeRequest(w http.ResponseWriter, r *http.Request) (planner.Request, bool) {
	var args map[string]any
	if err := json.NewDecoder(r.Body).Decode(&args); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, r, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
			return planner.Request{}, false
		}
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return planner.Request{}, false
	}
	req, err := planner.DecodeRequest(args)
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return planner.Request{}, false
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("encode response")
	}
}
