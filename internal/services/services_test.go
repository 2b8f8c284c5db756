package services

import (
	"context"
	"testing"

	"github.com/anonto42/socially/internal/models"
	"github.com/anonto42/socially/internal/observability"
	"github.com/anonto42/socially/internal/repositories"
	"github.com/anonto42/socially/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type published struct {
	reason string
	paths  []string
}

type recordingPublisher struct {
	calls []published
}

func (p *recordingPublisher) Publish(_ context.Context, reason string, paths ...string) {
	p.calls = append(p.calls, published{reason: reason, paths: paths})
}

func (p *recordingPublisher) paths() []string {
	var out []string
	for _, c := range p.calls {
		out = append(out, c.paths...)
	}
	return out
}

type env struct {
	db            *gorm.DB
	store         *repositories.Store
	pub           *recordingPublisher
	follows       *FollowService
	likes         *LikeService
	posts         *PostService
	comments      *CommentService
	notifications *NotificationService
	feed          *FeedService
	profiles      *ProfileService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.NewDB(t)
	store := repositories.NewStore(db)
	pub := &recordingPublisher{}
	logger := observability.Discard()
	return &env{
		db:            db,
		store:         store,
		pub:           pub,
		follows:       NewFollowService(store, pub, logger),
		likes:         NewLikeService(store, pub, logger),
		posts:         NewPostService(store, pub, logger),
		comments:      NewCommentService(store, pub, logger),
		notifications: NewNotificationService(store, pub, logger),
		feed:          NewFeedService(store, logger),
		profiles:      NewProfileService(store, pub, logger),
	}
}

func (e *env) notificationsFor(t *testing.T, userID uint) []models.Notification {
	t.Helper()
	var rows []models.Notification
	require.NoError(t, e.db.Where("user_id = ?", userID).Order("id ASC").Find(&rows).Error)
	return rows
}

func (e *env) count(t *testing.T, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	return testutil.Count(t, e.db, model, query, args...)
}
