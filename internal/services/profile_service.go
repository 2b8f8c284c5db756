package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/anonto42/socially/internal/invalidation"
	"github.com/anonto42/socially/internal/models"
	"github.com/anonto42/socially/internal/repositories"
)

type ProfileService struct {
	store     *repositories.Store
	publisher invalidation.Publisher
	logger    *slog.Logger
}

func NewProfileService(store *repositories.Store, publisher invalidation.Publisher, logger *slog.Logger) *ProfileService {
	return &ProfileService{store: store, publisher: publisher, logger: logger}
}

// GetProfileByUsername returns the user and their aggregates.
func (s *ProfileService) GetProfileByUsername(ctx context.Context, username string) (*models.Profile, error) {
	user, err := s.store.Users.GetUserByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, models.NewNotFoundError("User", username)
		}
		err = storageErr("load profile", err)
		fail(ctx, s.logger, "get_profile", err, slog.String("username", username))
		return nil, err
	}
	return s.withCounts(ctx, user)
}

// GetProfileByID is GetProfileByUsername keyed by internal id.
func (s *ProfileService) GetProfileByID(ctx context.Context, userID uint) (*models.Profile, error) {
	user, err := s.store.Users.GetUserByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, models.NewNotFoundError("User", userID)
		}
		err = storageErr("load profile", err)
		fail(ctx, s.logger, "get_profile", err, idAttr("user_id", userID))
		return nil, err
	}
	return s.withCounts(ctx, user)
}

// UpdateProfile overwrites the editable profile fields of actorID.
func (s *ProfileService) UpdateProfile(ctx context.Context, actorID uint, req models.UpdateProfileRequest) (*models.Profile, error) {
	fields := map[string]interface{}{
		"name":     strings.TrimSpace(req.Name),
		"bio":      strings.TrimSpace(req.Bio),
		"location": strings.TrimSpace(req.Location),
		"website":  strings.TrimSpace(req.Website),
	}
	if err := s.store.Users.UpdateProfile(ctx, actorID, fields); err != nil {
		if repositories.IsNotFound(err) {
			err = models.NewNotFoundError("User", actorID)
		} else {
			err = storageErr("update profile", err)
		}
		fail(ctx, s.logger, "update_profile", err, idAttr("user_id", actorID))
		return nil, err
	}

	profile, err := s.GetProfileByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(ctx, "profile updated", invalidation.ProfilePath(profile.Username))
	return profile, nil
}

// IsFollowing reports whether viewerID follows targetID; false on failure.
func (s *ProfileService) IsFollowing(ctx context.Context, viewerID, targetID uint) bool {
	ok, err := s.store.Follows.IsFollowing(ctx, viewerID, targetID)
	if err != nil {
		fail(ctx, s.logger, "is_following", storageErr("check follow", err), idAttr("viewer_id", viewerID), idAttr("target_id", targetID))
		return false
	}
	return ok
}

func (s *ProfileService) withCounts(ctx context.Context, user *models.User) (*models.Profile, error) {
	profile := &models.Profile{User: *user}
	var err error
	if profile.Counts.Followers, err = s.store.Follows.GetFollowersCount(ctx, user.ID); err != nil {
		return nil, storageErr("count followers", err)
	}
	if profile.Counts.Following, err = s.store.Follows.GetFollowingCount(ctx, user.ID); err != nil {
		return nil, storageErr("count following", err)
	}
	if profile.Counts.Posts, err = s.store.Posts.CountByAuthorID(ctx, user.ID); err != nil {
		return nil, storageErr("count posts", err)
	}
	return profile, nil
}
