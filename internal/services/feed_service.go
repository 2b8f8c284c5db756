package services

import (
	"context"
	"log/slog"

	"github.com/anonto42/socially/internal/models"
	"github.com/anonto42/socially/internal/repositories"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	SuggestionLimit = 3
)

// Page is a keyset cursor over posts ordered newest first.
type Page struct {
	BeforeID uint
	Limit    int
}

func (p Page) limit() int {
	switch {
	case p.Limit <= 0:
		return DefaultPageSize
	case p.Limit > MaxPageSize:
		return MaxPageSize
	default:
		return p.Limit
	}
}

// FeedService serves the read-only listings. Failures are logged and
// degrade to empty slices.
type FeedService struct {
	posts  repositories.PostRepository
	users  repositories.UserRepository
	logger *slog.Logger
}

func NewFeedService(store *repositories.Store, logger *slog.Logger) *FeedService {
	return &FeedService{posts: store.Posts, users: store.Users, logger: logger}
}

// ListPosts returns the global feed.
func (s *FeedService) ListPosts(ctx context.Context, page Page) []models.PostView {
	return s.list(ctx, "list_posts", repositories.PostFilter{BeforeID: page.BeforeID, Limit: page.limit()})
}

// ListUserPosts returns posts authored by userID.
func (s *FeedService) ListUserPosts(ctx context.Context, userID uint) []models.PostView {
	return s.list(ctx, "list_user_posts", repositories.PostFilter{AuthorID: userID})
}

// ListLikedPosts returns posts userID has liked.
func (s *FeedService) ListLikedPosts(ctx context.Context, userID uint) []models.PostView {
	return s.list(ctx, "list_liked_posts", repositories.PostFilter{LikedBy: userID})
}

// ListFollowSuggestions returns up to three users viewerID neither is nor follows.
func (s *FeedService) ListFollowSuggestions(ctx context.Context, viewerID uint) []models.Suggestion {
	suggestions, err := s.users.GetSuggestions(ctx, viewerID, SuggestionLimit)
	if err != nil {
		fail(ctx, s.logger, "list_follow_suggestions", storageErr("list suggestions", err), idAttr("viewer_id", viewerID))
		return []models.Suggestion{}
	}
	if suggestions == nil {
		return []models.Suggestion{}
	}
	return suggestions
}

func (s *FeedService) list(ctx context.Context, operation string, filter repositories.PostFilter) []models.PostView {
	posts, err := s.posts.ListPosts(ctx, filter)
	if err != nil {
		fail(ctx, s.logger, operation, storageErr("list posts", err))
		return []models.PostView{}
	}
	views := make([]models.PostView, 0, len(posts))
	for i := range posts {
		views = append(views, posts[i].ToView())
	}
	return views
}
