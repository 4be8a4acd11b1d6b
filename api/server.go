// Package api - Thin HTTP layer over the estimation engine
// The API is only responsible for input decoding, engine calls and
// response serialization. It never performs cost logic.
package api

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"infra-estimator/core/engine"
	"infra-estimator/core/output"
	"infra-estimator/internal/config"
	"infra-estimator/internal/logging"
)

const (
	// APIVersion is the route prefix version
	APIVersion = "v1"

	maxBodyBytes            = 1 << 20
	gracefulShutdownTimeout = 5 * time.Second
)

// Options configures a Server
type Options struct {
	Version  string
	Server   config.ServerConfig
	Estimate config.EstimateConfig

	// Estimator defaults to a fresh engine
	Estimator output.Estimator

	// Registry defaults to a private registry
	Registry *prometheus.Registry
}

// Server is the API server
type Server struct {
	router    chi.Router
	opts      Options
	estimator output.Estimator
	registry  *prometheus.Registry
	metrics   *Metrics
	log       *zap.Logger
}

// NewServer creates a new API server
func NewServer(opts Options) *Server {
	if opts.Estimator == nil {
		opts.Estimator = engine.New()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	s := &Server{
		router:    chi.NewRouter(),
		opts:      opts,
		estimator: opts.Estimator,
		registry:  opts.Registry,
		metrics:   NewMetrics(opts.Registry, opts.Estimator),
		log:       logging.Named("api"),
	}

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	origins := s.opts.Server.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s.router.Use(
		s.metrics.Handler,
		cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"*"},
			MaxAge:         300,
		}),
		requestID,
		s.requestLogger,
		middleware.Recoverer,
	)

	s.router.Get("/health", s.handleHealth)
	s.router.Get("/version", s.handleVersion)
	if s.opts.Server.MetricsEnabled {
		s.router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	s.router.Route("/api/"+APIVersion, func(r chi.Router) {
		r.Get("/presets", s.handlePresets)
		r.Post("/estimate", s.handleEstimate)
		r.Post("/team", s.handleTeam)
		r.Post("/scenarios", s.handleScenarios)
		r.Post("/export", s.handleExport)
	})
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves on listener until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:      s,
		ReadTimeout:  seconds(s.opts.Server.ReadTimeoutSeconds),
		WriteTimeout: seconds(s.opts.Server.WriteTimeoutSeconds),
	}

	go func() {
		<-ctx.Done()
		s.log.Info("shutdown signal received", zap.Error(ctx.Err()))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(shutdownCtx)
		s.log.Info("api server terminated")
	}()

	s.log.Info("listening", zap.String("address", listener.Addr().String()))
	if err := srv.Serve(listener); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ListenAndServe listens on the configured address and calls Run
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := s.opts.Server.Address
	if addr == "" {
		addr = ":8080"
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Run(ctx, listener)
}

// requestID keeps the caller's X-Request-Id or assigns a fresh UUID
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(middleware.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(middleware.RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.log.Debug("request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func seconds(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}
