// Package main implements the interactive bookstore catalog and sales tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/abgdnv/bookstore/internal/app"
	"github.com/abgdnv/bookstore/internal/bootstrap"
	"github.com/abgdnv/bookstore/internal/config"
	"github.com/abgdnv/bookstore/internal/config/configloader"
)

const appName = "bookstore"

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("application run failed: %v", err)
		os.Exit(1)
	}
}

// run loads the configuration, wires the in-memory stores and services and
// drives the menu shell until exit or interrupt.
func run(ctx context.Context) error {
	cfg, cfgErr := configloader.Load[*config.Config](appName, config.Defaults())
	if cfgErr != nil {
		return fmt.Errorf("failed to load configuration: %w", cfgErr)
	}

	logger := bootstrap.NewLogger(cfg.Log.Level).With(slog.String("session_id", uuid.NewString()))
	slog.SetDefault(logger)
	logger.Debug("configuration loaded", "config", cfg.String())

	deps, err := app.SetupDependencies(cfg, logger)
	if err != nil {
		return err
	}
	shell := app.SetupShell(deps, cfg, os.Stdin, os.Stdout)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return shell.Run(gCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("shell exited with error: %w", err)
	}
	logger.Info("session ended")
	return nil
}
