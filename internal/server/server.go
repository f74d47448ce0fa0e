// Package server serves banners over HTTP.
//
// # Routes
//
//	GET /banner.{format}  render a banner (png, jpeg, jpg, svg, html, json)
//	GET /themes           list the color presets as JSON
//	GET /healthz          liveness probe
//
// Banner query parameters mirror the flags of "codebanner generate": name,
// title, tagline, theme, bg, text, count, width, height, max_attempts, seed
// and engine. Requests with a seed are deterministic and served with
// long-lived cache headers; the seed of every response is reported in the
// X-Seed header so that an unseeded banner can be requested again.
//
// Bad parameters are answered with 400 and a JSON error body carrying the
// machine-readable code from pkg/errors.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/codebanner/pkg/pipeline"
)

const (
	// DefaultAddr is the listen address used when none is configured.
	DefaultAddr = ":8080"

	// DefaultRequestTimeout bounds a single banner request.
	DefaultRequestTimeout = 60 * time.Second

	shutdownTimeout = 10 * time.Second
)

// Config controls request handling.
type Config struct {
	// Phrases is the phrase source used for every request (file or URL).
	Phrases string

	// AllowRemotePhrases lets clients pick a phrase URL with ?phrases=.
	// Local paths are never accepted from clients.
	AllowRemotePhrases bool

	// Engine is the default raster engine; clients may override it.
	Engine      string
	BrowserPath string
	NoSandbox   bool

	RequestTimeout time.Duration
}

// Server routes banner requests to a pipeline runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	cfg    Config
	router chi.Router
}

// New creates a server. The runner is shared by all requests.
func New(runner *pipeline.Runner, logger *log.Logger, cfg Config) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.Engine == "" {
		cfg.Engine = pipeline.DefaultEngine
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	s := &Server{
		runner: runner,
		logger: logger,
		cfg:    cfg,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Get("/themes", s.handleThemes)
	r.Get("/banner.{format}", s.handleBanner)
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// logRequests logs one line per request with status and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		logf := s.logger.Info
		if status >= http.StatusInternalServerError {
			logf = s.logger.Error
		}
		logf("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Millisecond),
			"id", middleware.GetReqID(r.Context()))
	})
}
