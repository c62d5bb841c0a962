package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/citanz/dashboard/backend/internal/app"
	"github.com/citanz/dashboard/backend/internal/config"
	"github.com/citanz/dashboard/backend/internal/logging"
	"github.com/citanz/dashboard/backend/internal/server"
)

func main() {
	_ = godotenv.Load(".env")
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	components, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build data path", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := components.Close(context.Background()); err != nil {
			logger.Warn("closing graph client failed", "error", err)
		}
	}()

	svc := components.Service
	if _, err := svc.Dataset(ctx); err != nil {
		// The server still starts; requests retry the load and report the error.
		logger.Warn("initial dataset load failed", "error", err)
	}

	router := server.NewRouter(logger, server.RouterDependencies{
		Health:           server.SourceHealthService{Source: svc},
		API:              server.NewDashboardHandlers(logger, svc),
		APIBase:          cfg.HTTP.APIBase,
		MetricsEnabled:   cfg.HTTP.MetricsEnabled,
		AllowedOrigins:   cfg.HTTP.AllowedOrigins(),
		AllowCredentials: true,
	})

	srv := server.New(logger, cfg.HTTP, router, svc.SourceName())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

Loop:
	for {
		select {
		case sig := <-sigCh:
			if sig == syscall.SIGHUP {
				logger.Info("reload requested, dropping cached dataset")
				svc.Invalidate()
				continue
			}
			logger.Info("received shutdown signal", "signal", sig.String())
			break Loop
		case err := <-errCh:
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("server stopped unexpectedly", "error", err)
			}
			break Loop
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
