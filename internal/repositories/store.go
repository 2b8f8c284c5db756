package repositories

import (
	"context"
	"errors"

	"github.com/anonto42/socially/internal/models"
	"gorm.io/gorm"
)

// Store bundles every repository over one connection or transaction.
type Store struct {
	db            *gorm.DB
	Users         UserRepository
	Posts         PostRepository
	Comments      CommentRepository
	Likes         LikeRepository
	Follows       FollowRepository
	Notifications NotificationRepository
}

// NewStore binds all repositories to db.
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:            db,
		Users:         NewGormUserRepository(db),
		Posts:         NewGormPostRepository(db),
		Comments:      NewGormCommentRepository(db),
		Likes:         NewGormLikeRepository(db),
		Follows:       NewGormFollowRepository(db),
		Notifications: NewGormNotificationRepository(db),
	}
}

// Transaction runs fn with a Store bound to a single database transaction.
// Returning an error from fn rolls back every write made through tx.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// Migrate creates or updates the relational schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}

// IsNotFound reports a missing row.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsUniqueViolation reports a unique-constraint conflict. The connection must
// be opened with TranslateError so driver errors map to gorm.ErrDuplicatedKey.
func IsUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
