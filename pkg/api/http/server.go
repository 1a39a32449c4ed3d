package http

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/clusterlab/podlab/internal/application/auth"
	"github.com/clusterlab/podlab/internal/application/readiness"
	"github.com/clusterlab/podlab/internal/application/session"
	"github.com/clusterlab/podlab/internal/application/stress"
	"github.com/clusterlab/podlab/internal/config"
	metrics "github.com/clusterlab/podlab/pkg/adapters/metrics/prometheus"
	"github.com/clusterlab/podlab/pkg/adapters/storage"
)

// Server represents the HTTP API server
type Server struct {
	router   *gin.Engine
	server   *http.Server
	store    storage.Store
	sessions *session.Manager
	creds    auth.Credentials
	ready    *readiness.State
	stress   *stress.Pool
	metrics  *metrics.Collector
	settings *config.Config
	logger   *zap.Logger
	hostname string
	version  string
	exit     func(int)
}

// Config holds HTTP server configuration
type Config struct {
	Store       storage.Store
	Sessions    *session.Manager
	Credentials auth.Credentials
	Readiness   *readiness.State
	Stress      *stress.Pool
	Metrics     *metrics.Collector
	Settings    *config.Config
	Logger      *zap.Logger
	Version     string

	// Exit terminates the process for the crash endpoint. Defaults to
	// os.Exit; injectable so the handler can be tested.
	Exit func(int)
}

// NewServer creates a new HTTP server
func NewServer(cfg *Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(requestLogger(cfg.Logger))
	router.Use(requestMetrics(cfg.Metrics))

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	exit := cfg.Exit
	if exit == nil {
		exit = os.Exit
	}

	s := &Server{
		router:   router,
		store:    cfg.Store,
		sessions: cfg.Sessions,
		creds:    cfg.Credentials,
		ready:    cfg.Readiness,
		stress:   cfg.Stress,
		metrics:  cfg.Metrics,
		settings: cfg.Settings,
		logger:   cfg.Logger,
		hostname: hostname,
		version:  cfg.Version,
		exit:     exit,
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:    cfg.Settings.GetHTTPAddr(),
		Handler: router,
	}

	return s
}

// setupRoutes configures API routes
func (s *Server) setupRoutes() {
	// Introspection and probes
	s.router.GET("/", s.handleRoot)
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/ready", s.handleReady)
	s.router.POST("/ready/enable", s.handleReadyEnable)
	s.router.POST("/ready/disable", s.handleReadyDisable)
	s.router.POST("/crash", s.handleCrash)
	s.router.GET("/stress", s.handleStress)
	s.router.GET("/config", s.handleConfig)
	s.router.GET("/version", s.handleVersion)
	s.router.GET("/info", s.handleInfo)

	// Key-value proxy
	s.router.GET("/visits", s.handleVisits)
	s.router.GET("/kv/:key", s.handleKVGet)
	s.router.POST("/kv/:key", s.handleKVSet)

	// Sessions
	s.router.POST("/login", s.handleLogin)
	s.router.POST("/logout", s.handleLogout)
	s.router.GET("/me", s.requireSession(), s.handleMe)

	// Metrics
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Router exposes the underlying handler for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info("HTTP server shut down complete")
	return nil
}
