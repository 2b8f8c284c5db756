package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/socially/internal/identity"
	"github.com/anonto42/socially/internal/invalidation"
	"github.com/anonto42/socially/internal/observability"
	"github.com/anonto42/socially/internal/router"
	"github.com/anonto42/socially/pkg/config"
	"github.com/anonto42/socially/pkg/firebase"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, loadedDotenv, err := config.Load()
	if err != nil {
		return err
	}
	logger := observability.NewLogger(cfg.Env, cfg.LogLevel)
	slog.SetDefault(logger)
	if !loadedDotenv {
		logger.Debug("no .env file found, using process environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.InitDB(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.CloseDB()

	verifier, err := newVerifier(ctx, cfg, logger)
	if err != nil {
		return err
	}

	var sinks []invalidation.Sink
	if db.Redis != nil {
		sinks = append(sinks, invalidation.NewRedisSink(db.Redis, invalidation.DefaultChannel))
	}
	if db.Mongo != nil {
		sinks = append(sinks, invalidation.NewMongoSink(db.Mongo.Database(cfg.MongoDatabase)))
	}

	e := echo.New()
	router.SetupMiddleware(e, logger)
	if err := router.SetupRoutes(e, router.Deps{
		DB:        db.SQL,
		Verifier:  verifier,
		Publisher: invalidation.NewDispatcher(logger, sinks...),
		Logger:    logger,
	}); err != nil {
		return err
	}

	metricsSrv := &http.Server{
		Addr:              ":" + cfg.MetricsPort,
		Handler:           promhttp.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", slog.String("error", err.Error()))
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", slog.String("port", cfg.Port), slog.String("env", cfg.Env))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return shutdown(shutdownCtx, logger, e, metricsSrv)
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

// shutdown stops the metrics server, logging its failure, then the API server
// whose error is returned.
func shutdown(ctx context.Context, logger *slog.Logger, api, metrics shutdowner) error {
	if err := metrics.Shutdown(ctx); err != nil {
		logger.Error("metrics server shutdown failed", slog.String("error", err.Error()))
	}
	return api.Shutdown(ctx)
}

// newVerifier prefers Firebase and falls back to the shared-secret verifier.
func newVerifier(ctx context.Context, cfg *config.Config, logger *slog.Logger) (identity.Verifier, error) {
	if cfg.FirebaseCredentialsPath != "" {
		client, err := firebase.NewAuthClient(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			return nil, err
		}
		logger.Info("identity provider: firebase")
		return identity.NewFirebaseVerifier(client), nil
	}
	logger.Warn("identity provider: shared-secret JWT (development only)")
	return identity.NewJWTVerifier(cfg.JWTSecret), nil
}
