package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	h "github.com/fontfetch/fontfetch/internal/api/http"
	"github.com/fontfetch/fontfetch/internal/config"
	repo "github.com/fontfetch/fontfetch/internal/repository"
	svc "github.com/fontfetch/fontfetch/internal/service"
	"github.com/fontfetch/fontfetch/internal/storage"
	"github.com/fontfetch/fontfetch/internal/worker"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API.

  POST /runs          {"document": "..."} starts a run in the background
  GET  /runs/{id}     run status and per-font outcomes
  GET  /fonts         saved fonts with their metadata
  GET  /fonts/{name}  raw font file
  GET  /health, /metrics`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		cfg, err := loadConfig(cmd, func(c *config.Config) {
			if flags.Changed("port") {
				c.HTTPPort, _ = flags.GetInt("port")
			}
		})
		if err != nil {
			return err
		}

		logger := config.SetupLogger(cfg, cmd.ErrOrStderr())
		logger.Info("configuration loaded successfully", "environment", cfg.Environment)

		runStorage, err := repo.NewRunStorage(cfg.StateFile)
		if err != nil {
			return fmt.Errorf("initializing run repository: %w", err)
		}

		fileStorage := storage.NewFileStorage(cfg.OutputDir)
		if err := fileStorage.EnsureDir(); err != nil {
			return err
		}
		fetcher := worker.NewFontFetcher(fileStorage, cfg, logger)
		scheduler := worker.NewScheduler(fetcher, cfg.WorkerPoolSize, logger)
		runService := svc.NewRunService(runStorage, scheduler, logger)

		if err := runService.RecoverPendingRuns(cmd.Context()); err != nil {
			logger.Error("failed to recover pending runs", "error", err)
		}

		router := h.NewRouter(runService, fileStorage, logger)
		server := &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
			Handler:      router,
			ReadTimeout:  cfg.HTTPTimeout,
			WriteTimeout: cfg.HTTPTimeout,
			IdleTimeout:  cfg.HTTPTimeout,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		serveErr := make(chan error, 1)
		go func() {
			logger.Info("server starting", "address", server.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serveErr <- err
			}
			close(serveErr)
		}()

		select {
		case <-ctx.Done():
			logger.Info("shutdown signal received")
		case err := <-serveErr:
			if err != nil {
				return fmt.Errorf("server failed to start: %w", err)
			}
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		} else {
			logger.Info("server stopped gracefully")
		}

		return runService.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().IntP("port", "p", 8080, "HTTP port (FF_HTTP_PORT)")
}
