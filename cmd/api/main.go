package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/marcelsud/hookbin/config"
	"github.com/marcelsud/hookbin/hook"
	"github.com/marcelsud/hookbin/internal/http/chi"
	"github.com/marcelsud/hookbin/internal/logging"
	"github.com/marcelsud/hookbin/metrics"
	"github.com/marcelsud/hookbin/registry"
	"github.com/marcelsud/hookbin/seed"
	"github.com/rs/zerolog"
)

const TIMEOUT = 30 * time.Second

/* The api binary wires config, storage, the capture service and the HTTP layer.
 * Imports only go down: main imports the service, which imports the registry engines.
 */

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}
	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	opts := registry.Options{
		MongoURI:        cfg.MongoURI,
		MongoDatabase:   cfg.MongoDatabase,
		MongoCollection: cfg.MongoCollection,
		RedisAddr:       cfg.RedisAddr,
		RedisPassword:   cfg.RedisPassword,
		RedisDB:         cfg.RedisDB,
		FilePath:        cfg.DataFile,
		LogLimit:        cfg.LogLimit,
		Logger:          logger,
	}
	repo, err := registry.New(opts)
	if err != nil {
		return err
	}
	if err := repo.Init(ctx); err != nil {
		return fmt.Errorf("initializing %s registry: %w", opts.Backend(), err)
	}
	defer closeRegistry(repo, logger)
	logger.Info().Str("backend", opts.Backend()).Int("log_limit", cfg.LogLimit).Msg("registry ready")

	if cfg.SeedFile != "" {
		loader := seed.NewLoader()
		if err := loader.Load(cfg.SeedFile); err != nil {
			return err
		}
		created, err := seed.Apply(ctx, repo, loader)
		if err != nil {
			return err
		}
		logger.Info().Str("file", cfg.SeedFile).Int("created", created).Msg("seed applied")
	}

	exporter, err := metrics.NewOTelExporter(metrics.NewRegistryCollector(repo))
	if err != nil {
		return err
	}
	defer exporter.Shutdown(context.Background())

	s := hook.NewService(repo)
	s.AutoCreate = cfg.AutoCreate
	r := chi.Handlers(ctx, s, chi.Options{
		AdminToken:         cfg.AdminToken,
		MaxBodyBytes:       cfg.MaxBodyBytes,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Metrics:            exporter.ServeHTTP(),
	})
	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         ":" + cfg.Port,
		Handler:      r,
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, errShutdown)
	logger.Info().Str("port", cfg.Port).Bool("auto_create", cfg.AutoCreate).Msg("listening")
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return <-errShutdown
}

func closeRegistry(repo hook.Registry, logger zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), TIMEOUT)
	defer cancel()
	if err := repo.Close(ctx); err != nil {
		logger.Error().Err(err).Msg("closing registry")
	}
}

func shutdown(server *http.Server, ctxShutdown context.Context, errShutdown chan error) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), TIMEOUT)
	defer stop()

	err := server.Shutdown(ctxTimeout)
	switch err {
	case nil:
		fmt.Printf("\nShutting down server...\n")
		errShutdown <- nil
	case context.DeadlineExceeded:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	default:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	}
}
