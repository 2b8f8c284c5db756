// Package services holds the social actions: relation toggles, content
// mutation, the notification feed and listing queries. Every operation takes
// the already-resolved actor id explicitly.
package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/anonto42/socially/internal/invalidation"
	"github.com/anonto42/socially/internal/metrics"
	"github.com/anonto42/socially/internal/models"
	"github.com/anonto42/socially/internal/repositories"
)

// storageErr classifies err, keeping existing classifications intact.
func storageErr(operation string, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return models.NewStorageError(operation, err)
}

// fail logs a failed operation with its target and counts it.
func fail(ctx context.Context, logger *slog.Logger, operation string, err error, attrs ...slog.Attr) {
	kind := models.KindOf(err)
	metrics.ActionFailures.WithLabelValues(operation, string(kind)).Inc()

	level := slog.LevelWarn
	if kind == models.KindStorage {
		level = slog.LevelError
	}
	args := []slog.Attr{
		slog.String("operation", operation),
		slog.String("kind", string(kind)),
		slog.String("error", err.Error()),
	}
	logger.LogAttrs(ctx, level, "action failed", append(args, attrs...)...)
}

// profilePath resolves the profile view of userID, or "" when it cannot.
func profilePath(ctx context.Context, users repositories.UserRepository, userID uint) string {
	user, err := users.GetUserByID(ctx, userID)
	if err != nil {
		return ""
	}
	return invalidation.ProfilePath(user.Username)
}

func idAttr(key string, id uint) slog.Attr {
	return slog.Uint64(key, uint64(id))
}
