package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/anonto42/socially/internal/invalidation"
	"github.com/anonto42/socially/internal/models"
	"github.com/anonto42/socially/internal/repositories"
)

type PostService struct {
	store     *repositories.Store
	publisher invalidation.Publisher
	logger    *slog.Logger
}

func NewPostService(store *repositories.Store, publisher invalidation.Publisher, logger *slog.Logger) *PostService {
	return &PostService{store: store, publisher: publisher, logger: logger}
}

// CreatePost stores a post for authorID. Content may be empty only when an
// image is attached.
func (s *PostService) CreatePost(ctx context.Context, authorID uint, content, imageURL string) (*models.Post, error) {
	post := &models.Post{
		AuthorID: authorID,
		Content:  strings.TrimSpace(content),
		Image:    strings.TrimSpace(imageURL),
	}
	if post.Content == "" && post.Image == "" {
		err := models.NewValidationError("Post must have content or an image")
		fail(ctx, s.logger, "create_post", err, idAttr("author_id", authorID))
		return nil, err
	}

	if err := s.store.Posts.CreatePost(ctx, post); err != nil {
		err = storageErr("create post", err)
		fail(ctx, s.logger, "create_post", err, idAttr("author_id", authorID))
		return nil, err
	}

	s.logger.InfoContext(ctx, "post created", idAttr("post_id", post.ID), idAttr("author_id", authorID))
	s.publisher.Publish(ctx, "post created", invalidation.FeedPath, profilePath(ctx, s.store.Users, authorID))
	return post, nil
}

// UpdatePost replaces the content of a post owned by actorID.
func (s *PostService) UpdatePost(ctx context.Context, actorID, postID uint, content string) (*models.Post, error) {
	post, err := s.ownedPost(ctx, actorID, postID)
	if err == nil {
		content = strings.TrimSpace(content)
		if content == "" {
			err = models.NewValidationError("Post content cannot be empty")
		}
	}
	if err == nil {
		if err = s.store.Posts.UpdatePostContent(ctx, postID, content); err != nil {
			err = storageErr("update post", err)
		}
	}
	if err != nil {
		fail(ctx, s.logger, "update_post", err, idAttr("actor_id", actorID), idAttr("post_id", postID))
		return nil, err
	}

	post.Content = content
	s.publisher.Publish(ctx, "post updated", invalidation.FeedPath, profilePath(ctx, s.store.Users, actorID))
	return post, nil
}

// DeletePost removes a post owned by actorID together with everything that
// references it: notifications about the post or its comments, likes and
// comments. Either all of it is removed or none of it.
func (s *PostService) DeletePost(ctx context.Context, actorID, postID uint) error {
	if _, err := s.ownedPost(ctx, actorID, postID); err != nil {
		fail(ctx, s.logger, "delete_post", err, idAttr("actor_id", actorID), idAttr("post_id", postID))
		return err
	}

	var removed struct{ notifications, likes, comments int64 }
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		commentIDs, err := tx.Comments.GetCommentIDsByPostID(ctx, postID)
		if err != nil {
			return err
		}
		if removed.notifications, err = tx.Notifications.DeleteByPost(ctx, postID, commentIDs); err != nil {
			return err
		}
		if removed.likes, err = tx.Likes.DeleteLikesByPostID(ctx, postID); err != nil {
			return err
		}
		if removed.comments, err = tx.Comments.DeleteCommentsByPostID(ctx, postID); err != nil {
			return err
		}
		n, err := tx.Posts.DeletePost(ctx, postID)
		if err != nil {
			return err
		}
		if n == 0 {
			return models.NewNotFoundError("Post", postID)
		}
		return nil
	})
	if err != nil {
		err = storageErr("delete post", err)
		fail(ctx, s.logger, "delete_post", err, idAttr("actor_id", actorID), idAttr("post_id", postID))
		return err
	}

	s.logger.InfoContext(ctx, "post deleted",
		idAttr("post_id", postID),
		slog.Int64("notifications", removed.notifications),
		slog.Int64("likes", removed.likes),
		slog.Int64("comments", removed.comments),
	)
	s.publisher.Publish(ctx, "post deleted",
		invalidation.FeedPath,
		invalidation.NotificationsPath,
		profilePath(ctx, s.store.Users, actorID),
	)
	return nil
}

func (s *PostService) ownedPost(ctx context.Context, actorID, postID uint) (*models.Post, error) {
	post, err := s.store.Posts.GetPostByID(ctx, postID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, models.NewNotFoundError("Post", postID)
		}
		return nil, storageErr("load post", err)
	}
	if post.AuthorID != actorID {
		return nil, models.NewUnauthorizedError("You can only modify your own posts")
	}
	return post, nil
}
