package services

import (
	"context"
	"log/slog"

	"github.com/anonto42/socially/internal/invalidation"
	"github.com/anonto42/socially/internal/models"
	"github.com/anonto42/socially/internal/repositories"
)

// NotificationService reads and acknowledges a recipient's notifications.
// Its read paths degrade to empty values on storage failure.
type NotificationService struct {
	notifications repositories.NotificationRepository
	publisher     invalidation.Publisher
	logger        *slog.Logger
}

func NewNotificationService(store *repositories.Store, publisher invalidation.Publisher, logger *slog.Logger) *NotificationService {
	return &NotificationService{notifications: store.Notifications, publisher: publisher, logger: logger}
}

// ListNotifications returns userID's notifications newest first.
func (s *NotificationService) ListNotifications(ctx context.Context, userID uint) []models.NotificationView {
	rows, err := s.notifications.GetByRecipientID(ctx, userID)
	if err != nil {
		fail(ctx, s.logger, "list_notifications", storageErr("list notifications", err), idAttr("user_id", userID))
		return []models.NotificationView{}
	}
	views := make([]models.NotificationView, 0, len(rows))
	for i := range rows {
		views = append(views, rows[i].ToView())
	}
	return views
}

// MarkRead flips the given notifications of userID to read and returns how
// many changed. Ids belonging to other recipients are ignored.
func (s *NotificationService) MarkRead(ctx context.Context, userID uint, ids []uint) int64 {
	if len(ids) == 0 {
		return 0
	}
	n, err := s.notifications.MarkAsRead(ctx, userID, ids)
	if err != nil {
		fail(ctx, s.logger, "mark_notifications_read", storageErr("mark notifications read", err), idAttr("user_id", userID))
		return 0
	}
	if n > 0 {
		s.publisher.Publish(ctx, "notifications read", invalidation.NotificationsPath)
	}
	return n
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) int64 {
	n, err := s.notifications.GetUnreadCount(ctx, userID)
	if err != nil {
		fail(ctx, s.logger, "unread_count", storageErr("count notifications", err), idAttr("user_id", userID))
		return 0
	}
	return n
}
