// Package server exposes the term store over HTTP for the viewer's
// loader: term records by id, lookup by term text, and ingest.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/phanxgames/lexisphere"
	"github.com/phanxgames/lexisphere/internal/store"
)

// TermSource is the read side the server needs; *store.Store satisfies it,
// optionally wrapped by the cache layer for reads.
type TermSource interface {
	TermByID(ctx context.Context, id string) (*lexisphere.TermRecord, error)
	TermsByName(ctx context.Context, term string) ([]*lexisphere.TermRecord, error)
	UpsertTerm(ctx context.Context, rec *lexisphere.TermRecord) error
}

// Server serves term records over HTTP.
type Server struct {
	source TermSource
	logger *slog.Logger

	termLoads    *prometheus.CounterVec
	loadDuration prometheus.Histogram
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New creates a Server over the given term source, registering its metrics
// with reg. A nil reg skips metric registration (used by tests that build
// several servers in one process).
func New(source TermSource, reg prometheus.Registerer, opts ...Option) *Server {
	s := &Server{
		source: source,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	s.termLoads = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "lexisphere_term_loads_total",
		Help: "Term record loads by outcome.",
	}, []string{"outcome"})
	s.loadDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Name:    "lexisphere_term_load_seconds",
		Help:    "Latency of term record loads.",
		Buckets: prometheus.DefBuckets,
	})

	return s
}

// Handler builds the route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/terms", func(r chi.Router) {
		r.Get("/", s.handleSearch)
		r.Post("/", s.handleIngest)
		r.Get("/{id}", s.handleTerm)
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then drains with
// a short shutdown grace period.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("serving terms", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleTerm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	start := time.Now()

	rec, err := s.source.TermByID(r.Context(), id)
	s.loadDuration.Observe(time.Since(start).Seconds())
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.termLoads.WithLabelValues("miss").Inc()
		http.Error(w, "term not found", http.StatusNotFound)
		return
	case err != nil:
		s.termLoads.WithLabelValues("error").Inc()
		s.logger.Error("load term", "id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.termLoads.WithLabelValues("hit").Inc()
	writeJSON(w, rec)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")
	if term == "" {
		http.Error(w, "missing term parameter", http.StatusBadRequest)
		return
	}

	recs, err := s.source.TermsByName(r.Context(), term)
	if err != nil {
		s.logger.Error("search terms", "term", term, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if len(recs) == 0 {
		http.Error(w, "term not found", http.StatusNotFound)
		return
	}
	writeJSON(w, recs)
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var rec lexisphere.TermRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if rec.ID == "" || rec.Term == "" {
		http.Error(w, "id and term are required", http.StatusBadRequest)
		return
	}

	if err := s.source.UpsertTerm(r.Context(), &rec); err != nil {
		s.logger.Error("ingest term", "id", rec.ID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}
