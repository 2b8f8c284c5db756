package services

import (
	"context"
	"log/slog"

	"github.com/anonto42/socially/internal/invalidation"
	"github.com/anonto42/socially/internal/models"
	"github.com/anonto42/socially/internal/repositories"
)

// likeRelation is the user -> post edge. The notified owner is the post author.
type likeRelation struct{}

func (likeRelation) Kind() RelationKind { return RelationLike }

func (likeRelation) NotificationType() models.NotificationType { return models.NotificationLike }

func (likeRelation) Check(uint, uint) error { return nil }

func (likeRelation) Owner(ctx context.Context, s *repositories.Store, postID uint) (uint, error) {
	post, err := s.Posts.GetPostByID(ctx, postID)
	if err != nil {
		return 0, err
	}
	return post.AuthorID, nil
}

func (likeRelation) Exists(ctx context.Context, s *repositories.Store, actorID, postID uint) (bool, error) {
	return s.Likes.HasUserLikedPost(ctx, actorID, postID)
}

func (likeRelation) Insert(ctx context.Context, s *repositories.Store, actorID, postID uint) error {
	return s.Likes.CreateLike(ctx, &models.Like{UserID: actorID, PostID: postID})
}

func (likeRelation) Remove(ctx context.Context, s *repositories.Store, actorID, postID uint) (bool, error) {
	return s.Likes.DeleteLike(ctx, actorID, postID)
}

func (likeRelation) PostRef(postID uint) *uint {
	id := postID
	return &id
}

type LikeService struct {
	engine    *ToggleEngine
	users     repositories.UserRepository
	publisher invalidation.Publisher
	logger    *slog.Logger
}

func NewLikeService(store *repositories.Store, publisher invalidation.Publisher, logger *slog.Logger) *LikeService {
	return &LikeService{
		engine:    NewToggleEngine(store, logger),
		users:     store.Users,
		publisher: publisher,
		logger:    logger,
	}
}

// ToggleLike likes postID if actorID has not liked it yet, otherwise unlikes.
// Liking one's own post is allowed and produces no notification.
func (s *LikeService) ToggleLike(ctx context.Context, actorID, postID uint) (Outcome, error) {
	out, err := s.engine.Toggle(ctx, actorID, postID, likeRelation{})
	if err != nil {
		fail(ctx, s.logger, "toggle_like", err, idAttr("actor_id", actorID), idAttr("post_id", postID))
		return Outcome{}, err
	}

	paths := []string{invalidation.FeedPath, profilePath(ctx, s.users, actorID)}
	if out.Notified {
		paths = append(paths, invalidation.NotificationsPath)
	}
	s.publisher.Publish(ctx, "like "+string(out.State), paths...)
	return out, nil
}
