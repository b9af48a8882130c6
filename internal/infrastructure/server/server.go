package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/LexOS/backend/internal/api/http"
	"github.com/GriffinCanCode/LexOS/backend/internal/api/middleware"
	"github.com/GriffinCanCode/LexOS/backend/internal/api/ws"
	"github.com/GriffinCanCode/LexOS/backend/internal/domain/catalog"
	"github.com/GriffinCanCode/LexOS/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/LexOS/backend/internal/domain/window"
	"github.com/GriffinCanCode/LexOS/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/LexOS/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/LexOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/LexOS/backend/internal/infrastructure/tracing"
)

const (
	streamPath      = "/stream"
	gzipMinSize     = 256
	shutdownTimeout = 10 * time.Second
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	handler http.Handler
	shell   *desktop.Shell
	hub     *ws.Hub
	detach  func()
	tracer  *tracing.Tracer
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// NewServer builds the catalog, window manager and routes. A nil logger
// is built from cfg.Logging.
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		var err error
		logger, err = logging.FromConfig(cfg.Logging)
		if err != nil {
			return nil, fmt.Errorf("failed to build logger: %w", err)
		}
	}

	logger.Info("Initializing LexOS desktop server",
		zap.String("addr", cfg.Addr()),
		zap.String("catalog_glob", cfg.Catalog.Glob),
	)

	apps, err := catalog.Build(cfg.Catalog.Glob)
	if err != nil {
		return nil, fmt.Errorf("failed to load app catalog: %w", err)
	}
	logger.Info("App catalog loaded", zap.Int("apps", apps.Len()))

	// Metrics first; the domain layers record into them
	metrics := monitoring.NewMetrics()
	tracer := tracing.New("lexosd", logger.Logger)

	windows := window.NewManager().WithMetrics(metrics).WithLogger(logger.Logger)
	shell := desktop.NewShell(windows, apps).WithMetrics(metrics).WithLogger(logger.Logger)

	hub := ws.NewHub(cfg.WebSocket.SendBuffer).WithMetrics(metrics).WithLogger(logger.Logger)
	detach := hub.Attach(windows)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.Recovery(logger.Logger))
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.RequestLogger(logger.Logger))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}
	if cfg.RateLimit.GlobalEnabled {
		logger.Info("Global rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.GlobalRequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.GlobalBurst),
		)
		router.Use(middleware.GlobalRateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.GlobalRequestsPerSecond,
			Burst:             cfg.RateLimit.GlobalBurst,
		}))
	}

	apihttp.NewHandlers(shell, metrics, logger.Logger).Register(router)

	wsHandler := ws.NewHandler(shell, hub).WithTracer(tracer).WithLogger(logger.Logger)
	router.GET(streamPath, wsHandler.HandleConnection)

	var handler http.Handler = router
	if cfg.Compression.Enabled {
		handler, err = compress(router)
		if err != nil {
			detach()
			tracer.Close()
			return nil, err
		}
		logger.Info("Response compression enabled")
	}

	logger.Info("Server initialized successfully")

	return &Server{
		router:  router,
		handler: handler,
		shell:   shell,
		hub:     hub,
		detach:  detach,
		tracer:  tracer,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

// compress gzips REST responses. The stream endpoint bypasses the wrapper
// because the upgrade needs the raw, hijackable writer.
func compress(next http.Handler) (http.Handler, error) {
	wrap, err := gzhttp.NewWrapper(gzhttp.MinSize(gzipMinSize))
	if err != nil {
		return nil, fmt.Errorf("failed to build gzip wrapper: %w", err)
	}
	gz := wrap(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == streamPath {
			next.ServeHTTP(w, r)
			return
		}
		gz.ServeHTTP(w, r)
	}), nil
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Shell returns the desktop shell served by s
func (s *Server) Shell() *desktop.Shell {
	return s.shell
}

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")

	// Hijacked stream connections are not tracked by Shutdown
	s.hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	<-errCh
	return nil
}

// Close releases background resources
func (s *Server) Close() error {
	s.detach()
	s.hub.Close()
	s.tracer.Close()

	// Sync logger before exit
	_ = s.logger.Sync()

	return nil
}
