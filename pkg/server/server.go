package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/docbolt/docbolt/pkg/api"
	"github.com/docbolt/docbolt/pkg/engine"
)

// Server wires the engine, the REST API, and the metrics endpoint.
type Server struct {
	router *mux.Router
	engine *engine.Engine
	logger zerolog.Logger
}

// NewServer creates a new instance of Server.
func NewServer(logger zerolog.Logger, engineOptions ...engine.EngineOption) *Server {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	opts := append([]engine.EngineOption{
		engine.WithLogger(logger),
		engine.WithMetricsRegistry(registry),
	}, engineOptions...)

	s := &Server{
		router: mux.NewRouter(),
		engine: engine.NewEngine(opts...),
		logger: logger,
	}

	api.NewHandler(s.engine, logger).RegisterRoutes(s.router)
	s.router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	s.router.Use(s.requestLoggerMiddleware)
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Warn().Str("method", r.Method).Str("path", r.URL.Path).Msg("no route found")
		http.NotFound(w, r)
	})

	return s
}

// requestLoggerMiddleware logs the method, URL path, and duration for each request.
func (s *Server) requestLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug().Str("method", r.Method).Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).Msg("request handled")
	})
}

// Engine exposes the underlying storage engine.
func (s *Server) Engine() *engine.Engine {
	return s.engine
}

// Router exposes the internal mux.Router.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start launches the engine's background workers.
func (s *Server) Start() {
	s.engine.StartBackgroundWorkers()
}

// Shutdown compacts every collection one last time and closes the
// database handles.
func (s *Server) Shutdown() {
	if err := s.engine.CompactAll(); err != nil {
		s.logger.Error().Err(err).Msg("final compaction failed")
	}
	if err := s.engine.Close(); err != nil {
		s.logger.Error().Err(err).Msg("closing engine failed")
	}
}
