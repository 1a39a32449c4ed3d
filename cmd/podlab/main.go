package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/clusterlab/podlab/internal/application/auth"
	"github.com/clusterlab/podlab/internal/application/readiness"
	"github.com/clusterlab/podlab/internal/application/session"
	"github.com/clusterlab/podlab/internal/application/stress"
	"github.com/clusterlab/podlab/internal/config"
	metricsprom "github.com/clusterlab/podlab/pkg/adapters/metrics/prometheus"
	redisstorage "github.com/clusterlab/podlab/pkg/adapters/storage/redis"
	httpapi "github.com/clusterlab/podlab/pkg/api/http"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Version is set by build flags
	Version = "1.0.0"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("starting podlab",
		zap.String("version", Version),
		zap.String("app_name", cfg.AppName))

	// Initialize Redis client
	redisClient := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Redis.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})

	// Probe the Redis connection. An unreachable store is not fatal: the
	// store-backed endpoints answer 503 until it comes back.
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Warn("redis not reachable at startup",
			zap.String("addr", cfg.Redis.GetRedisAddr()),
			zap.Error(err))
	} else {
		logger.Info("connected to Redis", zap.String("addr", cfg.Redis.GetRedisAddr()))
	}

	// Initialize adapters
	store := redisstorage.NewStore(redisClient, logger)
	metricsCollector := metricsprom.NewCollector(prometheus.DefaultRegisterer)

	// Initialize application components
	sessionManager := session.NewManager(store, cfg.SessionTTL(), logger)
	readyState := readiness.NewState()

	stressPool := stress.NewPool(cfg.StressWorkers, cfg.MaxStressSeconds, logger)
	if err := stressPool.Start(); err != nil {
		logger.Fatal("failed to start stress pool", zap.Error(err))
	}

	// Initialize API server
	httpServer := httpapi.NewServer(&httpapi.Config{
		Store:       store,
		Sessions:    sessionManager,
		Credentials: auth.DefaultCredentials(),
		Readiness:   readyState,
		Stress:      stressPool,
		Metrics:     metricsCollector,
		Settings:    cfg,
		Logger:      logger,
		Version:     Version,
	})

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	logger.Info("podlab started",
		zap.Int("http_port", cfg.HTTPPort),
		zap.Int("stress_workers", cfg.StressWorkers))

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("received shutdown signal")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	if err := stressPool.Shutdown(shutdownCtx); err != nil {
		logger.Error("stress pool shutdown error", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		logger.Error("Redis close error", zap.Error(err))
	}

	logger.Info("podlab shut down complete")
}

// initLogger initializes the logger based on log level
func initLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	return logger
}
