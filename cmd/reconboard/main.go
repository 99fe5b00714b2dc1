package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"reconboard/internal/config"
	"reconboard/internal/gateway"
	apphttp "reconboard/internal/http"
	applog "reconboard/internal/log"
	"reconboard/internal/metrics"
)

func main() {
	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := applog.New(applog.Config{
		Level:     logLevel(cfg.LogLevel),
		Component: applog.ComponentApp,
		Handler:   logHandler(cfg),
	})
	applog.SetDefault(logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	collector := metrics.NewCollector("reconboard")
	if err := collector.Register(registry); err != nil {
		logger.Error("Failed to register metrics", applog.FieldError, err)
		os.Exit(1)
	}

	engine := gateway.NewClient(gateway.Config{
		BaseURL:        cfg.EngineBaseURL,
		Timeout:        cfg.EngineTimeout,
		BreakerEnabled: cfg.BreakerEnabled,
		Logger:         logger,
		Metrics:        collector,
	})

	srv, err := apphttp.NewServer(apphttp.Config{
		Addr:           ":" + cfg.Port,
		Engine:         engine,
		Logger:         logger,
		Metrics:        collector,
		Registry:       registry,
		UploadMaxBytes: cfg.UploadMaxBytes,
	})
	if err != nil {
		logger.Error("Failed to build server", applog.FieldError, err)
		os.Exit(1)
	}

	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received",
			applog.FieldOperation, applog.OpShutdown, "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting reconboard server",
		applog.FieldOperation, applog.OpStartup,
		"port", cfg.Port,
		applog.FieldEngineURL, cfg.EngineBaseURL)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully", applog.FieldOperation, applog.OpShutdown)
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func logHandler(cfg *config.Config) slog.Handler {
	opts := &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)}
	if cfg.LogFormat == "json" {
		return slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.NewTextHandler(os.Stdout, opts)
}
