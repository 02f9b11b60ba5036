// Package server implements the papg HTTP API.
//
// # Endpoints
//
//	GET  /healthz                 liveness probe
//	GET  /version                 build information
//	GET  /strategies              names accepted by ?strategy=
//	POST /solve?strategy=<name>   solve a game sent as the request body
//	POST /render?format=<fmt>     solve and draw a game
//
// Bodies are PGSolver text, or JSON when the Content-Type is
// application/json. Errors are JSON objects carrying a [perrors.Code]; the
// status is chosen by [perrors.HTTPStatus].
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/papg/pkg/pipeline"
)

// DefaultMaxBodyBytes limits the size of uploaded games.
const DefaultMaxBodyBytes = 8 << 20

// DefaultMaxPriority limits the highest priority of uploaded games.
const DefaultMaxPriority = 1 << 12

// DefaultMaxMeasureCells limits the total number of measure components a
// solve may allocate, the vertex count times the number of odd priorities.
const DefaultMaxMeasureCells = 1 << 25

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

// Config configures a [Server].
type Config struct {
	Addr string

	// Runner solves and renders games. Nil selects an uncached runner.
	Runner *pipeline.Runner

	Logger *log.Logger

	// MaxBodyBytes limits request bodies. Zero selects [DefaultMaxBodyBytes].
	MaxBodyBytes int64

	// MaxVertices rejects larger games with 413. Zero means no limit.
	MaxVertices int

	// MaxPriority rejects games with a higher priority with 413. Zero
	// selects [DefaultMaxPriority].
	MaxPriority int

	// MaxMeasureCells rejects games whose measures would need more
	// components with 413. Zero selects [DefaultMaxMeasureCells].
	MaxMeasureCells int64

	// SolveTimeout bounds each request. Zero means no limit.
	SolveTimeout time.Duration
}

// Server serves the API.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server and registers its routes.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.MaxPriority <= 0 {
		cfg.MaxPriority = DefaultMaxPriority
	}
	if cfg.MaxMeasureCells <= 0 {
		cfg.MaxMeasureCells = DefaultMaxMeasureCells
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	runner := cfg.Runner
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	s := &Server{cfg: cfg, runner: runner, logger: logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	if s.cfg.SolveTimeout > 0 {
		r.Use(middleware.Timeout(s.cfg.SolveTimeout))
	}

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Get("/strategies", s.handleStrategies)
	r.Post("/solve", s.handleSolve)
	r.Post("/render", s.handleRender)
	r.NotFound(s.handleNotFound)
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
