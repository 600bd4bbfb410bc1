package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mcoot/codenames/internal/api"
	"github.com/mcoot/codenames/internal/config"
	"github.com/mcoot/codenames/internal/factory"
)

func main() {
	var opts config.Options

	cmd := &cobra.Command{
		Use:          "codenames-server",
		Short:        "Serve a Codenames game over HTTP",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, opts)
		},
	}
	cmd.Flags().StringVar(&opts.ConfigFile, "config", "", "Config file (YAML, JSON or TOML)")
	cmd.Flags().StringVar(&opts.EnvFile, "env-file", ".env", "Environment file, ignored if missing")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, opts config.Options) error {
	cfg, err := config.Load(opts)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	app, err := factory.New(ctx, factory.FromConfig(cfg, logger))
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		return err
	}
	defer app.Close()

	router := api.NewRouter(api.RouterConfig{
		Logger:  logger,
		Engine:  app.Engine,
		Storage: app.Storage,
		Hub:     app.Hub,
	})

	server := api.NewServer(router, cfg.APIServer(), logger)
	// Event streams would otherwise hold Shutdown open
	server.OnShutdown(app.Hub.Close)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutdown signal received")
		return server.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("server stopped")
	return nil
}

func newLogger(cfg *config.Config) (*slog.Logger, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	if cfg.Log.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, handlerOpts)), nil
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, handlerOpts)), nil
}
