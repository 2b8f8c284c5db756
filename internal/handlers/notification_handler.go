package handlers

import (
	"net/http"

	"github.com/anonto42/socially/internal/identity"
	"github.com/anonto42/socially/internal/middleware"
	"github.com/anonto42/socially/internal/models"
	"github.com/anonto42/socially/internal/services"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notifications *services.NotificationService
	resolver      *identity.Resolver
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications *services.NotificationService, resolver *identity.Resolver) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, resolver: resolver}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.POST("/notifications/read", h.MarkRead, middleware.RequireProfile)
}

// GetNotifications lists the caller's notifications, newest first. Anonymous
// callers get an empty list.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	userID, ok := viewerID(c, h.resolver)
	if !ok {
		return c.JSON(http.StatusOK, []models.NotificationView{})
	}
	return c.JSON(http.StatusOK, h.notifications.ListNotifications(c.Request().Context(), userID))
}

func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	var count int64
	if userID, ok := viewerID(c, h.resolver); ok {
		count = h.notifications.UnreadCount(c.Request().Context(), userID)
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": count})
}

// MarkRead marks the given notifications of the caller as read
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID, err := actorID(c, h.resolver)
	if err != nil {
		return failure(c, err)
	}

	var req models.MarkReadRequest
	if err := bindAndValidate(c, &req); err != nil {
		return failure(c, err)
	}

	updated := h.notifications.MarkRead(c.Request().Context(), userID, req.IDs)
	return success(c, http.StatusOK, map[string]int64{"updated": updated})
}
