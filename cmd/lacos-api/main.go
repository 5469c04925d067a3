package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devsantx/Lacos-Digitais-Backend/internal/bootstrap"
	"github.com/devsantx/Lacos-Digitais-Backend/internal/httpapi"
	"github.com/devsantx/Lacos-Digitais-Backend/internal/pkg/buildinfo"
	"github.com/devsantx/Lacos-Digitais-Backend/internal/pkg/config"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfgPath := flag.String("config", os.Getenv("LACOS_CONFIG"), "path to config.yaml")
	flag.Parse()

	if err := run(*cfgPath); err != nil {
		slog.Error("lacos-api exited", "error", err)
		os.Exit(1)
	}
}

func run(cfgPath string) error {
	core, err := bootstrap.NewCore(cfgPath)
	if err != nil {
		return err
	}
	defer core.Close()

	slog.Info("starting",
		"name", core.Cfg.App.Name,
		"version", core.Cfg.App.Version,
		"build", buildinfo.Version,
		"environment", core.Cfg.App.Environment,
		"driver", core.DB.Driver,
	)
	if core.DB.SafeMode {
		// serve /health so the operator can see why
		slog.Warn("database in safe mode", "reason", core.DB.MigrationError)
	}

	if f := core.Cfg.File(); f != "" {
		if err := config.Watch(f, config.ApplyLogLevel); err != nil {
			slog.Warn("config watch disabled", "path", f, "error", err)
		}
	}

	srv, err := httpapi.New(core)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Listen(core.Cfg.HTTP.ListenAddr)
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	slog.Info("stopped")
	return nil
}
