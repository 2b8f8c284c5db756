package handlers

import (
	"net/http"

	"github.com/anonto42/socially/internal/identity"
	"github.com/anonto42/socially/internal/middleware"
	"github.com/anonto42/socially/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles like toggles on posts
type LikeHandler struct {
	likes    *services.LikeService
	resolver *identity.Resolver
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likes *services.LikeService, resolver *identity.Resolver) *LikeHandler {
	return &LikeHandler{likes: likes, resolver: resolver}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:id/like", h.ToggleLike, middleware.RequireProfile)
}

// ToggleLike likes the post, or unlikes it if the caller already did
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	userID, err := actorID(c, h.resolver)
	if err != nil {
		return failure(c, err)
	}
	postID, err := paramID(c, "id")
	if err != nil {
		return failure(c, err)
	}

	out, err := h.likes.ToggleLike(c.Request().Context(), userID, postID)
	if err != nil {
		return failure(c, err)
	}
	return success(c, http.StatusOK, out)
}
