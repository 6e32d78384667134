package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iot-manager/console/pkg/middleware"
	"github.com/iot-manager/console/pkg/navigation"
	"github.com/iot-manager/console/pkg/routepath"
	"github.com/iot-manager/console/pkg/routetable"
	"github.com/iot-manager/console/pkg/views"
)

// NavEndpoint is the live navigation socket, relative to the base path.
const NavEndpoint = "/_nav"

// Server is the HTTP host for the console.
type Server struct {
	config Config
	table  *routetable.Table
	views  *views.Set

	middleware []navigation.Middleware
	metrics    *middleware.Metrics
	gatherer   prometheus.Gatherer

	upgrader websocket.Upgrader
	router   chi.Router
	logger   *slog.Logger

	mu         sync.Mutex
	sessions   map[string]*session
	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithMiddleware adds navigation middleware to every Navigator the server
// creates, for pages and sockets alike.
func WithMiddleware(mw ...navigation.Middleware) Option {
	return func(s *Server) {
		s.middleware = append(s.middleware, mw...)
	}
}

// WithMetrics records sessions in m and serves g at /metrics.
// Either may be nil.
func WithMetrics(m *middleware.Metrics, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = g
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New creates a server for table. set supplies the not-found view.
func New(cfg Config, table *routetable.Table, set *views.Set, opts ...Option) *Server {
	cfg.applyDefaults()
	cfg.BasePath = routepath.NormalizeBase(cfg.BasePath)

	s := &Server{
		config:   cfg,
		table:    table,
		views:    set,
		sessions: make(map[string]*session),
		logger:   slog.Default(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "server")
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	if s.config.LiveNavigation {
		r.Get(s.navPath(), s.handleSocket)
	}
	r.Get("/*", s.handlePage)
	r.Head("/*", s.handlePage)
	return r
}

// navPath is the absolute path of the navigation socket.
func (s *Server) navPath() string {
	return routepath.JoinBase(s.config.BasePath, NavEndpoint)
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Config returns the effective configuration.
func (s *Server) Config() Config {
	return s.config
}

// Sessions returns the number of open navigation sessions.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Run listens on the configured address and blocks until ctx is canceled
// or the listener fails. Cancellation triggers a graceful shutdown.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: s.config.ReadTimeout,
		ReadTimeout:       s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
	}
	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			"address", s.config.Addr,
			"base", s.config.BasePath,
			"routes", s.table.Len(),
			"live_navigation", s.config.LiveNavigation)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", s.config.Addr, err)
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes every navigation session and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.mu.Lock()
	sessions := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	srv := s.httpServer
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.close(websocket.CloseGoingAway, "server shutting down")
	}

	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// requestLogger logs one line per HTTP request.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelDebug
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.Log(r.Context(), level, "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", chimw.GetReqID(r.Context()))
		})
	}
}
