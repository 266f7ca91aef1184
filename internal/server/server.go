// Package server exposes the circuit pipeline over HTTP.
//
// The API is small: POST a circuit document to render it in any supported
// format, or publish it to get a stable shareable URL that re-renders on
// every fetch. Published circuits live in a pluggable store (memory, file,
// Redis, or MongoDB) selected by configuration.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gatestack/pkg/pipeline"
	"github.com/matzehuels/gatestack/pkg/share"
)

// Server wires the HTTP routes to the pipeline and the circuit store.
type Server struct {
	cfg    Config
	router chi.Router
	runner *pipeline.Runner
	store  share.Store
	logger *log.Logger
}

// New builds a Server from the given configuration. It connects the
// configured store backend eagerly so that misconfiguration fails at
// startup rather than on the first request.
func New(ctx context.Context, cfg Config, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}

	store, err := newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	artifactCache, err := newCache(cfg)
	if err != nil {
		store.Close()
		return nil, err
	}

	s := &Server{
		cfg:    cfg,
		runner: pipeline.NewRunner(artifactCache, logger),
		store:  store,
		logger: logger,
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the HTTP handler for the server, primarily for tests.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Post("/circuits", s.handlePublish)
		r.Get("/circuits/{id}", s.handleGetCircuit)
		r.Get("/circuits/{id}.svg", s.handleGetCircuitSVG)
		r.Delete("/circuits/{id}", s.handleDeleteCircuit)
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully within the configured timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return s.store.Close()
}

// logRequests is a chi middleware that logs each request on completion.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
