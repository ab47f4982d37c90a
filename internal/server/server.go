// Package server serves mazes over HTTP.
//
// Routes:
//
//	GET /v1/maze        rendered maze; Content-Type follows ?format=
//	GET /v1/maze/stats  JSON description of a maze without rendering it
//	GET /version        build information
//	GET /healthz        liveness probe
//
// Query parameters for /v1/maze: width, height, algorithm, seed, format
// (txt, dot, svg, png), wall, open, color, labels, refresh. Requests with a
// seed are reproducible and their artifacts are cached by the runner.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"

	"github.com/fruitnuke/maze/pkg/pipeline"
)

const serviceName = "maze"

/* *** Server Config *** */

// Config configures the HTTP server.
type Config struct {
	Address         string
	MaxDimension    int
	ShutdownTimeout time.Duration
	AccessLog       bool
}

// Option sets a Config field.
type Option func(*Config)

// NewConfig returns a config with defaults overridden by options.
func NewConfig(options ...Option) *Config {
	cfg := &Config{
		Address:         ":8080",
		MaxDimension:    1000,
		ShutdownTimeout: 10 * time.Second,
		AccessLog:       true,
	}
	for _, option := range options {
		option(cfg)
	}
	return cfg
}

func WithAddress(address string) Option {
	return func(c *Config) {
		c.Address = address
	}
}

// WithMaxDimension caps the width and height a request may ask for.
func WithMaxDimension(max int) Option {
	return func(c *Config) {
		if max > 0 {
			c.MaxDimension = max
		}
	}
}

func WithShutdownTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.ShutdownTimeout = d
	}
}

// WithAccessLog enables per-request logging.
func WithAccessLog(enabled bool) Option {
	return func(c *Config) {
		c.AccessLog = enabled
	}
}

/* *** Server *** */

// Server is the maze HTTP API.
type Server struct {
	cfg    *Config
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New builds the router. The runner is shared by all requests.
func New(cfg *Config, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{cfg: cfg, runner: runner, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.Heartbeat("/healthz"))
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	if s.cfg.AccessLog {
		router.Use(httplog.RequestLogger(httplog.NewLogger(serviceName, httplog.Options{
			LogLevel:         slog.LevelInfo,
			MessageFieldName: "msg",
			JSON:             true,
			Concise:          true,
			RequestHeaders:   false,
			ResponseHeaders:  false,
		})))
	}
	router.Use(middleware.Recoverer)
	router.Use(requestHooks)
	router.Use(render.SetContentType(render.ContentTypeJSON))

	{
		handler := NewMazeHandler(s.runner, s.cfg.MaxDimension)
		router.Route("/v1/maze", func(r chi.Router) {
			r.Get("/", handler.GetMaze)
			r.Get("/stats", handler.GetStats)
		})
	}
	router.Get("/version", GetVersion)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Render(w, r, ErrNotFound(r.URL.Path))
	})
	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	s.logger.Info("listening", "addr", s.cfg.Address, "max-dimension", s.cfg.MaxDimension)

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", s.cfg.Address, err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("server shutdown complete")
	return nil
}
