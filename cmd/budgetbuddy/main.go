package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"budgetbuddy/internal/backend"
	"budgetbuddy/internal/cli"
	apphttp "budgetbuddy/internal/http"
	"budgetbuddy/internal/ledger"
	applog "budgetbuddy/internal/log"
)

func main() {
	cli.LoadEnvFile()

	bootLogger := applog.New(applog.DefaultConfig())
	cfg := cli.LoadAndValidateConfig(bootLogger)
	logger := cli.SetupLogger(cfg.LogLevel)

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	factory := backend.NewFactory(logger)
	result, err := factory.CreateRepository(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize data backend",
			applog.FieldError, err,
			applog.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	defer func() {
		if result.Cleanup != nil {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", applog.FieldError, err)
			}
		}
	}()

	store, err := ledger.NewStore(ctx, result.Repository, logger)
	if err != nil {
		logger.Error("Failed to load ledger", applog.FieldError, err)
		os.Exit(1)
	}

	srv := apphttp.NewServer(":"+cfg.Port, store, logger)
	srv.ReadTimeout = cfg.RequestTimeout
	srv.WriteTimeout = cfg.RequestTimeout
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting budgetbuddy server",
			"port", cfg.Port,
			applog.FieldBackend, cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
