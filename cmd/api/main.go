package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"farmapi/internal/config"
	"farmapi/internal/logging"
	"farmapi/internal/otel"
	"farmapi/internal/server"
	"farmapi/internal/storage"
)

// @title Farm Assistant API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel, os.Stdout)
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		logger.Fatal("failed to initialize tracing", zap.Error(err))
	}

	store, err := newStorage(cfg)
	if err != nil {
		logger.Fatal("failed to initialize upload storage", zap.String("backend", cfg.StorageBackend), zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app, err := server.New(cfg, server.Deps{Logger: logger, Registry: reg, Store: store})
	if err != nil {
		logger.Fatal("failed to build server", zap.Error(err))
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Port
	logger.Info("server_started",
		zap.String("addr", addr),
		zap.String("storage_backend", cfg.StorageBackend),
		zap.String("public_dir", cfg.PublicDir),
	)
	if err := app.Listen(addr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	tctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(tctx); err != nil {
		logger.Error("tracing shutdown failed", zap.Error(err))
	}
}

func newStorage(cfg *config.AppConfig) (storage.Storage, error) {
	if cfg.StorageBackend == config.BackendMinIO {
		return storage.NewMinIO(cfg.MinIO, otelhttp.NewTransport(nil))
	}
	return storage.NewDisk(cfg.UploadDir)
}
