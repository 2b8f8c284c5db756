package handlers

import (
	"net/http"

	"github.com/anonto42/socially/internal/identity"
	"github.com/anonto42/socially/internal/middleware"
	"github.com/anonto42/socially/internal/models"
	"github.com/anonto42/socially/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles comment-related HTTP requests
type CommentHandler struct {
	comments *services.CommentService
	resolver *identity.Resolver
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(comments *services.CommentService, resolver *identity.Resolver) *CommentHandler {
	return &CommentHandler{comments: comments, resolver: resolver}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:id/comments", h.CreateComment, middleware.RequireProfile)
	g.PUT("/comments/:id", h.UpdateComment, middleware.RequireProfile)
	g.DELETE("/comments/:id", h.DeleteComment, middleware.RequireProfile)
}

// CreateComment adds a comment to a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID, err := actorID(c, h.resolver)
	if err != nil {
		return failure(c, err)
	}
	postID, err := paramID(c, "id")
	if err != nil {
		return failure(c, err)
	}

	var req models.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return failure(c, err)
	}

	comment, err := h.comments.CreateComment(c.Request().Context(), userID, postID, req.Content)
	if err != nil {
		return failure(c, err)
	}
	return success(c, http.StatusCreated, comment)
}

func (h *CommentHandler) UpdateComment(c echo.Context) error {
	userID, err := actorID(c, h.resolver)
	if err != nil {
		return failure(c, err)
	}
	commentID, err := paramID(c, "id")
	if err != nil {
		return failure(c, err)
	}

	var req models.UpdateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return failure(c, err)
	}

	comment, err := h.comments.UpdateComment(c.Request().Context(), userID, commentID, req.Content)
	if err != nil {
		return failure(c, err)
	}
	return success(c, http.StatusOK, comment)
}

func (h *CommentHandler) DeleteComment(c echo.Context) error {
	userID, err := actorID(c, h.resolver)
	if err != nil {
		return failure(c, err)
	}
	commentID, err := paramID(c, "id")
	if err != nil {
		return failure(c, err)
	}

	if err := h.comments.DeleteComment(c.Request().Context(), userID, commentID); err != nil {
		return failure(c, err)
	}
	return success(c, http.StatusOK, map[string]uint{"id": commentID})
}
