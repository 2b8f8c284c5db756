package repositories

import (
	"context"

	"github.com/anonto42/socially/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	GetByRecipientID(ctx context.Context, recipientID uint) ([]models.Notification, error)
	GetUnreadCount(ctx context.Context, recipientID uint) (int64, error)
	MarkAsRead(ctx context.Context, recipientID uint, ids []uint) (int64, error)
	DeleteByPost(ctx context.Context, postID uint, commentIDs []uint) (int64, error)
	DeleteByCommentID(ctx context.Context, commentID uint) (int64, error)
}

type gormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) NotificationRepository {
	return &gormNotificationRepository{db: db}
}

func (r *gormNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(notification).Error
}

// GetByRecipientID lists a user's notifications newest first with the creator,
// post and comment projections preloaded.
func (r *gormNotificationRepository) GetByRecipientID(ctx context.Context, recipientID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Preload("Creator", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "surname", "username", "image")
		}).
		Preload("Post", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "content", "image")
		}).
		Preload("Comment", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "content", "created_at")
		}).
		Where("user_id = ?", recipientID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *gormNotificationRepository) GetUnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).Where("user_id = ? AND read = ?", recipientID, false).Count(&count).Error
	return count, err
}

// MarkAsRead flips the read flag on the recipient's unread notifications among
// ids. Ids that are unknown, already read or owned by someone else are skipped.
func (r *gormNotificationRepository) MarkAsRead(ctx context.Context, recipientID uint, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id IN ? AND user_id = ? AND read = ?", ids, recipientID, false).
		Update("read", true)
	return res.RowsAffected, res.Error
}

// DeleteByPost removes notifications referencing the post or any of the given comments
func (r *gormNotificationRepository) DeleteByPost(ctx context.Context, postID uint, commentIDs []uint) (int64, error) {
	q := r.db.WithContext(ctx).Where("post_id = ?", postID)
	if len(commentIDs) > 0 {
		q = q.Or("comment_id IN ?", commentIDs)
	}
	res := q.Delete(&models.Notification{})
	return res.RowsAffected, res.Error
}

func (r *gormNotificationRepository) DeleteByCommentID(ctx context.Context, commentID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("comment_id = ?", commentID).Delete(&models.Notification{})
	return res.RowsAffected, res.Error
}
