package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"rtref/internal/api"
	"rtref/internal/config"
	"rtref/internal/dataset"
	"rtref/internal/view"
	"rtref/pkg/logger"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "rtref",
		Short: "RT phrasebook reference server",
		Long:  "Serves browsable, tooltip-annotated pilot/controller radio-telephony scripts from per-airport JSON datasets.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath)
		},
		SilenceUsage: true,
	}
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "config.toml", "path to the TOML config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	log.Info("Starting rtref",
		logger.String("addr", cfg.Server.Addr()),
		logger.String("data_dir", cfg.Data.Dir),
		logger.String("default_airport", cfg.Data.DefaultAirport))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := dataset.NewStore(cfg.Data.Dir, log)
	defer store.Close() //nolint:errcheck

	// The default airport must load, there is nothing to serve without it.
	if _, err := store.Get(ctx, cfg.Data.DefaultAirport); err != nil {
		return fmt.Errorf("failed to load default airport %s: %w", cfg.Data.DefaultAirport, err)
	}

	if cfg.Data.WatchFiles {
		if err := store.Watch(ctx); err != nil {
			log.Warn("File watching disabled", logger.Error(err))
		}
	}

	renderer, err := view.NewRenderer(log)
	if err != nil {
		return err
	}
	builder := view.NewBuilder(view.Timings{
		TooltipDelayMS:      cfg.UI.TooltipDelayMS,
		HighlightDurationMS: cfg.UI.HighlightDurationMS,
	}, log)

	router := api.NewRouter(store, builder, renderer, cfg, log)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Routes(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSecs) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSecs) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", logger.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Info("Shutting down", logger.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeoutSec)*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
