package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/AjayBarot7035/secret-santa/internal/logger"
	"github.com/AjayBarot7035/secret-santa/internal/metrics"
	"github.com/AjayBarot7035/secret-santa/results"
	"github.com/AjayBarot7035/secret-santa/types"
	"github.com/AjayBarot7035/secret-santa/wire"
)

// Route templates.
const (
	RouteGenerate      = "/api/v1/assignments/generate"
	RouteSubmit        = "/api/v1/secret_santa/generate_assignments"
	RouteCheckStatus   = "/api/v1/secret_santa/check_status/{request_id}"
	RouteHealth        = "/health"
	RouteGatewayHealth = "/api/v1/secret_santa/health"
	RouteMetrics       = "/metrics"
)

// Server defaults.
const (
	DefaultRequestTimeout = 10 * time.Second
	DefaultServiceName    = "Secret Santa API Gateway"
	MaxRequestBytes       = 1 << 20
	shutdownTimeout       = 10 * time.Second
)

// Runner generates assignments for a decoded request.
type Runner interface {
	Run(ctx context.Context, req wire.Request) (types.Result, error)
}

// Submitter queues a request for asynchronous processing.
type Submitter interface {
	Submit(ctx context.Context, req wire.Request) (string, error)
}

// Server is the HTTP API.
type Server struct {
	runner         Runner
	submitter      Submitter
	results        results.Store
	logger         types.Logger
	metrics        types.HTTPMetrics
	metricsHandler http.Handler
	timeout        time.Duration
	service        string

	router *mux.Router
}

// Option configures a Server.
type Option func(*Server)

// WithSubmitter enables asynchronous submission. Without it the submit
// route generates synchronously (dev mode).
func WithSubmitter(s Submitter) Option {
	return func(srv *Server) { srv.submitter = s }
}

// WithResults sets the store polled by the status route.
func WithResults(store results.Store) Option {
	return func(srv *Server) { srv.results = store }
}

// WithLogger sets the logger.
func WithLogger(l types.Logger) Option {
	return func(srv *Server) {
		if l != nil {
			srv.logger = l
		}
	}
}

// WithMetrics sets the request metrics collector.
func WithMetrics(m types.HTTPMetrics) Option {
	return func(srv *Server) {
		if m != nil {
			srv.metrics = m
		}
	}
}

// WithMetricsHandler exposes h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(srv *Server) { srv.metricsHandler = h }
}

// WithRequestTimeout bounds the handling of each request.
func WithRequestTimeout(d time.Duration) Option {
	return func(srv *Server) {
		if d > 0 {
			srv.timeout = d
		}
	}
}

// WithServiceName sets the service name reported by health checks.
func WithServiceName(name string) Option {
	return func(srv *Server) {
		if name != "" {
			srv.service = name
		}
	}
}

// New creates a Server.
//
// Parameters:
//   - runner: Generation service used by the synchronous routes
//   - opts: Optional configuration
//
// Returns:
//   - *Server: Server with routes registered
//   - error: Missing runner, or a submitter without a results store
func New(runner Runner, opts ...Option) (*Server, error) {
	if runner == nil {
		return nil, errors.New("runner is required")
	}

	srv := &Server{
		runner:  runner,
		logger:  logger.NewNop(),
		metrics: metrics.NewNop(),
		timeout: DefaultRequestTimeout,
		service: DefaultServiceName,
	}
	for _, opt := range opts {
		opt(srv)
	}

	if srv.submitter != nil && srv.results == nil {
		return nil, errors.New("asynchronous mode requires a results store")
	}

	srv.router = srv.routes()

	return srv, nil
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.instrument, s.withTimeout)

	r.HandleFunc(RouteGenerate, s.handleGenerate).Methods(http.MethodPost)
	r.HandleFunc(RouteSubmit, s.handleSubmit).Methods(http.MethodPost)
	r.HandleFunc(RouteCheckStatus, s.handleCheckStatus).Methods(http.MethodGet)
	r.HandleFunc(RouteHealth, s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc(RouteGatewayHealth, s.handleHealth).Methods(http.MethodGet)
	if s.metricsHandler != nil {
		r.Handle(RouteMetrics, s.metricsHandler).Methods(http.MethodGet)
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Mode reports "production" when requests are queued, "development" otherwise.
func (s *Server) Mode() string {
	if s.submitter != nil {
		return "production"
	}

	return "development"
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpSrv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", ln.Addr().String(), "mode", s.Mode())
		errCh <- httpSrv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP shutdown: %w", err)
	}

	return nil
}
