package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/brazucaphish/console/pkg/apiclient"
	"github.com/brazucaphish/console/pkg/config"
	"github.com/brazucaphish/console/pkg/i18n"
	"github.com/brazucaphish/console/pkg/mailer"
	"github.com/brazucaphish/console/pkg/shared/kvs"
	"github.com/brazucaphish/console/pkg/shared/logging"
	"github.com/brazucaphish/console/pkg/web"
	"github.com/spf13/cobra"
)

const (
	reloadDebounce  = 100 * time.Millisecond
	shutdownTimeout = 30 * time.Second
)

func newServeCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web front end",
		Long: `Start the web front end with the specified configuration.

The server will:
- Load the configuration file and watch it for changes
- Open the session store (memory, LevelDB or Redis)
- Serve the auth forms, the assistant and the dashboard
- Report draining on /health and shut down gracefully on SIGTERM/SIGINT`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, o)
		},
	}
}

// newServerLogger logs to stdout and, when configured, to a rotated file.
func newServerLogger(cfg *config.Config) (logging.Logger, error) {
	var fileRotationConfig *logging.FileRotationConfig
	if f := cfg.Logging.File; f != nil && f.Path != "" {
		fileRotationConfig = &logging.FileRotationConfig{
			Path:       f.Path,
			MaxSizeMB:  f.MaxSizeMB,
			MaxBackups: f.MaxBackups,
			MaxAge:     f.MaxAge,
			Compress:   f.Compress,
		}
	}

	logger, err := logging.NewLoggerWithFile("main", logging.ParseLevel(cfg.Logging.Level), cfg.Logging.Color, fileRotationConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

func runServe(cmd *cobra.Command, o *rootOptions) error {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newServerLogger(cfg)
	if err != nil {
		return err
	}
	logger.Info("Starting brazuca", "version", version, "api", cfg.API.BaseURL)

	store, err := kvs.New(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	defer func() { _ = store.Close() }()

	timeout, _ := cfg.API.GetTimeout()
	client, err := apiclient.New(apiclient.Options{BaseURL: cfg.API.BaseURL, Timeout: timeout, Logger: logger})
	if err != nil {
		return err
	}

	translator := i18n.NewTranslator()
	notifier, err := mailer.NewNotifier(cfg, fmt.Sprintf("http://%s/dashboard", cfg.Server.Addr()), translator, logger)
	if err != nil {
		return fmt.Errorf("failed to set up mailer: %w", err)
	}

	srv, err := web.New(web.Options{
		Config:     cfg,
		API:        client,
		Store:      store,
		Notifier:   notifier,
		Translator: translator,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.Run(runCtx)

	// Hot reload only when the configuration came from a file
	if _, err := os.Stat(o.cfgFile); err == nil {
		reloader, err := config.NewReloader(o.cfgFile, reloadDebounce, srv.Reload, logger)
		if err != nil {
			return fmt.Errorf("failed to create file watcher: %w", err)
		}
		reloader.Override = func(c *config.Config) { o.override(cmd, c) }
		go func() {
			if err := reloader.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("File watcher error", "error", err)
			}
		}()
		logger.Info("File watcher initialized for hot reload", "config_file", o.cfgFile)
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
			return
		}
		errChan <- nil
	}()
	srv.SetReady()
	logger.Info("Starting server", "addr", server.Addr)

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received, stopping server...")
		srv.SetDraining()

		shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
		defer stop()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		if err := <-errChan; err != nil {
			return err
		}
	case err := <-errChan:
		if err != nil {
			logger.Error("Server stopped with error", "error", err)
			return err
		}
	}

	logger.Info("Server stopped successfully")
	return nil
}
