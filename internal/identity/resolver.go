package identity

import (
	"context"
	"log/slog"
	"strings"

	"github.com/anonto42/socially/internal/models"
	"github.com/anonto42/socially/internal/repositories"
	"github.com/google/uuid"
)

// Resolver maps verified profiles onto internal users.
type Resolver struct {
	users  repositories.UserRepository
	logger *slog.Logger
}

func NewResolver(users repositories.UserRepository, logger *slog.Logger) *Resolver {
	return &Resolver{users: users, logger: logger}
}

// ResolveOrCreateUser returns the user linked to p.ExternalID, inserting it on
// first sight. Existing users are returned as stored; profile fields are not
// re-synced on later calls.
func (r *Resolver) ResolveOrCreateUser(ctx context.Context, p Profile) (*models.User, error) {
	if p.ExternalID == "" {
		return nil, models.NewValidationError("Identity has no subject")
	}

	user, err := r.users.GetUserByExternalID(ctx, p.ExternalID)
	if err == nil {
		return user, nil
	}
	if !repositories.IsNotFound(err) {
		r.logger.ErrorContext(ctx, "lookup user failed", slog.String("operation", "resolve_user"), slog.String("error", err.Error()))
		return nil, models.NewStorageError("resolve user", err)
	}

	username, err := r.availableUsername(ctx, p)
	if err != nil {
		return nil, models.NewStorageError("resolve user", err)
	}

	user = &models.User{
		ExternalID: p.ExternalID,
		Name:       p.FirstName,
		Surname:    p.LastName,
		Username:   username,
		Email:      p.Email,
		Image:      p.ImageURL,
	}
	if err := r.users.CreateUser(ctx, user); err != nil {
		if repositories.IsUniqueViolation(err) {
			// A concurrent request for the same identity won the insert.
			if existing, getErr := r.users.GetUserByExternalID(ctx, p.ExternalID); getErr == nil {
				return existing, nil
			}
		}
		r.logger.ErrorContext(ctx, "create user failed", slog.String("operation", "resolve_user"), slog.String("error", err.Error()))
		return nil, models.NewStorageError("create user", err)
	}

	r.logger.InfoContext(ctx, "user created", slog.Uint64("user_id", uint64(user.ID)), slog.String("username", user.Username))
	return user, nil
}

// CurrentUserID resolves the caller's internal id. A nil profile means the
// caller is unauthenticated and yields ok=false without error; an
// authenticated identity without a user record is a NotFound error.
func (r *Resolver) CurrentUserID(ctx context.Context, p *Profile) (uint, bool, error) {
	if p == nil || p.ExternalID == "" {
		return 0, false, nil
	}
	user, err := r.users.GetUserByExternalID(ctx, p.ExternalID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return 0, false, models.NewNotFoundError("User", p.ExternalID)
		}
		return 0, false, models.NewStorageError("resolve user", err)
	}
	return user.ID, true, nil
}

// availableUsername prefers the provider's username, then the email local
// part, and appends a short random suffix if that name is already taken.
func (r *Resolver) availableUsername(ctx context.Context, p Profile) (string, error) {
	base := strings.ToLower(strings.TrimSpace(p.Username))
	if base == "" {
		base = strings.ToLower(emailLocalPart(p.Email))
	}
	if base == "" {
		base = "user"
	}

	taken, err := r.users.UsernameTaken(ctx, base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}
	return base + "-" + uuid.NewString()[:6], nil
}
