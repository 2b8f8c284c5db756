package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/anonto42/socially/internal/invalidation"
	"github.com/anonto42/socially/internal/metrics"
	"github.com/anonto42/socially/internal/models"
	"github.com/anonto42/socially/internal/repositories"
)

const maxCommentLength = 500

type CommentService struct {
	store     *repositories.Store
	publisher invalidation.Publisher
	logger    *slog.Logger
}

func NewCommentService(store *repositories.Store, publisher invalidation.Publisher, logger *slog.Logger) *CommentService {
	return &CommentService{store: store, publisher: publisher, logger: logger}
}

// CreateComment adds a comment to postID and, when the commenter is not the
// post author, notifies the author in the same transaction.
func (s *CommentService) CreateComment(ctx context.Context, authorID, postID uint, content string) (*models.Comment, error) {
	comment, notified, err := s.createComment(ctx, authorID, postID, content)
	if err != nil {
		fail(ctx, s.logger, "create_comment", err, idAttr("author_id", authorID), idAttr("post_id", postID))
		return nil, err
	}

	paths := []string{invalidation.FeedPath}
	if notified {
		metrics.NotificationsCreated.WithLabelValues(string(models.NotificationComment)).Inc()
		paths = append(paths, invalidation.NotificationsPath)
	}
	s.publisher.Publish(ctx, "comment created", paths...)
	return comment, nil
}

func (s *CommentService) createComment(ctx context.Context, authorID, postID uint, content string) (*models.Comment, bool, error) {
	content, err := validCommentContent(content)
	if err != nil {
		return nil, false, err
	}

	post, err := s.store.Posts.GetPostByID(ctx, postID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, false, models.NewNotFoundError("Post", postID)
		}
		return nil, false, storageErr("load post", err)
	}

	comment := &models.Comment{PostID: postID, AuthorID: authorID, Content: content}
	notify := post.AuthorID != authorID
	err = s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := tx.Comments.CreateComment(ctx, comment); err != nil {
			return err
		}
		if !notify {
			return nil
		}
		return tx.Notifications.CreateNotification(ctx, &models.Notification{
			UserID:    post.AuthorID,
			CreatorID: authorID,
			Type:      models.NotificationComment,
			PostID:    &comment.PostID,
			CommentID: &comment.ID,
		})
	})
	if err != nil {
		return nil, false, storageErr("create comment", err)
	}
	return comment, notify, nil
}

// UpdateComment replaces the content of a comment owned by actorID.
func (s *CommentService) UpdateComment(ctx context.Context, actorID, commentID uint, content string) (*models.Comment, error) {
	comment, err := s.ownedComment(ctx, actorID, commentID)
	if err == nil {
		content, err = validCommentContent(content)
	}
	if err == nil {
		if err = s.store.Comments.UpdateCommentContent(ctx, commentID, content); err != nil {
			err = storageErr("update comment", err)
		}
	}
	if err != nil {
		fail(ctx, s.logger, "update_comment", err, idAttr("actor_id", actorID), idAttr("comment_id", commentID))
		return nil, err
	}

	comment.Content = content
	s.publisher.Publish(ctx, "comment updated", invalidation.FeedPath)
	return comment, nil
}

// DeleteComment removes a comment owned by actorID and the notifications that
// reference it.
func (s *CommentService) DeleteComment(ctx context.Context, actorID, commentID uint) error {
	if _, err := s.ownedComment(ctx, actorID, commentID); err != nil {
		fail(ctx, s.logger, "delete_comment", err, idAttr("actor_id", actorID), idAttr("comment_id", commentID))
		return err
	}

	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if _, err := tx.Notifications.DeleteByCommentID(ctx, commentID); err != nil {
			return err
		}
		n, err := tx.Comments.DeleteComment(ctx, commentID)
		if err != nil {
			return err
		}
		if n == 0 {
			return models.NewNotFoundError("Comment", commentID)
		}
		return nil
	})
	if err != nil {
		err = storageErr("delete comment", err)
		fail(ctx, s.logger, "delete_comment", err, idAttr("actor_id", actorID), idAttr("comment_id", commentID))
		return err
	}

	s.publisher.Publish(ctx, "comment deleted", invalidation.FeedPath, invalidation.NotificationsPath)
	return nil
}

func (s *CommentService) ownedComment(ctx context.Context, actorID, commentID uint) (*models.Comment, error) {
	comment, err := s.store.Comments.GetCommentByID(ctx, commentID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, models.NewNotFoundError("Comment", commentID)
		}
		return nil, storageErr("load comment", err)
	}
	if comment.AuthorID != actorID {
		return nil, models.NewUnauthorizedError("You can only modify your own comments")
	}
	return comment, nil
}

func validCommentContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", models.NewValidationError("Comment content cannot be empty")
	}
	if len([]rune(content)) > maxCommentLength {
		return "", models.NewValidationError("Comment content is too long")
	}
	return content, nil
}
