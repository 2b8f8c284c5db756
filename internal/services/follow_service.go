package services

import (
	"context"
	"log/slog"

	"github.com/anonto42/socially/internal/invalidation"
	"github.com/anonto42/socially/internal/models"
	"github.com/anonto42/socially/internal/repositories"
)

// followRelation is the follower -> followed user edge. The notified owner is
// the followed user.
type followRelation struct{}

func (followRelation) Kind() RelationKind { return RelationFollow }

func (followRelation) NotificationType() models.NotificationType { return models.NotificationFollow }

func (followRelation) Check(actorID, targetID uint) error {
	if actorID == targetID {
		return models.NewValidationError("You cannot follow yourself")
	}
	return nil
}

func (followRelation) Owner(ctx context.Context, s *repositories.Store, targetID uint) (uint, error) {
	user, err := s.Users.GetUserByID(ctx, targetID)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

func (followRelation) Exists(ctx context.Context, s *repositories.Store, actorID, targetID uint) (bool, error) {
	return s.Follows.IsFollowing(ctx, actorID, targetID)
}

func (followRelation) Insert(ctx context.Context, s *repositories.Store, actorID, targetID uint) error {
	return s.Follows.CreateFollow(ctx, &models.Follow{FollowerID: actorID, FollowingID: targetID})
}

func (followRelation) Remove(ctx context.Context, s *repositories.Store, actorID, targetID uint) (bool, error) {
	return s.Follows.DeleteFollow(ctx, actorID, targetID)
}

func (followRelation) PostRef(uint) *uint { return nil }

type FollowService struct {
	engine    *ToggleEngine
	users     repositories.UserRepository
	publisher invalidation.Publisher
	logger    *slog.Logger
}

func NewFollowService(store *repositories.Store, publisher invalidation.Publisher, logger *slog.Logger) *FollowService {
	return &FollowService{
		engine:    NewToggleEngine(store, logger),
		users:     store.Users,
		publisher: publisher,
		logger:    logger,
	}
}

// ToggleFollow follows targetUserID if actorID does not follow them yet,
// otherwise unfollows.
func (s *FollowService) ToggleFollow(ctx context.Context, actorID, targetUserID uint) (Outcome, error) {
	out, err := s.engine.Toggle(ctx, actorID, targetUserID, followRelation{})
	if err != nil {
		fail(ctx, s.logger, "toggle_follow", err, idAttr("actor_id", actorID), idAttr("target_user_id", targetUserID))
		return Outcome{}, err
	}

	paths := []string{
		invalidation.FeedPath,
		profilePath(ctx, s.users, targetUserID),
		profilePath(ctx, s.users, actorID),
	}
	if out.Notified {
		paths = append(paths, invalidation.NotificationsPath)
	}
	s.publisher.Publish(ctx, "follow "+string(out.State), paths...)
	return out, nil
}
