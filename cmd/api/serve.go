package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"pets-mvc/internal/adapters/storage"
	"pets-mvc/internal/adapters/views/htmlviews"
	"pets-mvc/internal/config"
	"pets-mvc/internal/platform/logger"
	"pets-mvc/internal/router"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

func serve(ctx context.Context, configPath string, flags *pflag.FlagSet) error {
	cfg, err := config.Load(configPath, flags)
	if err != nil {
		return err
	}

	level := logger.ParseLevel(cfg.Log.Level)
	log := logger.New(logger.Options{
		Level:  level,
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.AppName,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := storage.Open(ctx, cfg.Store)
	if err != nil {
		log.Error("store unavailable", map[string]any{"driver": cfg.Store.Driver, "err": err})
		return err
	}

	views, err := htmlviews.New()
	if err != nil {
		_ = backend.Close(context.Background())
		return fmt.Errorf("load views: %w", err)
	}

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.NewRouter(router.Options{
			Backend: backend,
			Views:   views,
			Logger:  log,
		}),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting server", map[string]any{
			"addr":      srv.Addr,
			"store":     backend.Driver,
			"log_level": level.String(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("http shutdown", map[string]any{"err": err})
		}
		if err := backend.Close(shutdownCtx); err != nil {
			log.Warn("store close", map[string]any{"err": err})
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped", map[string]any{"err": err})
		return err
	}
	return nil
}
