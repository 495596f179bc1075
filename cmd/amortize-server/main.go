package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/loan-amortization/internal/cache"
	"github.com/iwvelando/loan-amortization/internal/logging"
	"github.com/iwvelando/loan-amortization/internal/metrics"
	"github.com/iwvelando/loan-amortization/internal/server"
	"github.com/iwvelando/loan-amortization/pkg/constants"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	configPath := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	addressOverride := flag.String("address", "", "listen address override, e.g. :8080")
	maxBodySize := flag.String("max-body-size", "", "request body limit override, e.g. 256KiB")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	cfg, err := server.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configPath, err)
		os.Exit(1)
	}
	if *addressOverride != "" {
		cfg.Address = *addressOverride
	}
	if *maxBodySize != "" {
		size, err := server.ParseSize(*maxBodySize)
		if err != nil {
			fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"invalid max body size\", \"error\": \"%v\"}\n", err)
			os.Exit(1)
		}
		cfg.SetBodySizeBytes(size)
	}

	logger, err := logging.NewLogger(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduleCache, err := cache.New(cfg.Cache, logger)
	if err != nil {
		logger.Fatal("failed to create schedule cache",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	if redisCache, ok := scheduleCache.(*cache.Redis); ok {
		if err := redisCache.Ping(ctx); err != nil {
			logger.Warn("redis cache unreachable, schedules will be computed per request",
				zap.String("op", "main"),
				zap.String("address", cfg.Cache.RedisAddress),
				zap.Error(err),
			)
		}
	}
	if closer, ok := scheduleCache.(io.Closer); ok {
		defer func() {
			_ = closer.Close()
		}()
	}

	provider, err := metrics.NewProvider(ctx, cfg.Metrics, logger)
	if err != nil {
		logger.Fatal("failed to create metrics provider",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	recorder, err := metrics.NewRecorder(provider.Meter())
	if err != nil {
		logger.Fatal("failed to create metrics recorder",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	handler := server.NewHandler(logger, server.Options{
		MaxBodySize: cfg.BodySizeBytes(),
		Version:     version,
		Cache:       scheduleCache,
		Recorder:    recorder,
	})

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting amortization server",
			zap.String("op", "main"),
			zap.String("address", cfg.Address),
			zap.String("version", version),
			zap.String("cache", cfg.Cache.Backend),
			zap.String("metrics", cfg.Metrics.Exporter),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		logger.Error("server failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	case <-ctx.Done():
		logger.Info("shutting down server", zap.String("op", "main"))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during server shutdown",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	if err := provider.Shutdown(shutdownCtx); err != nil {
		logger.Warn("failed to flush metrics",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
