package handlers

import (
	"net/http"

	"github.com/anonto42/socially/internal/identity"
	"github.com/anonto42/socially/internal/middleware"
	"github.com/anonto42/socially/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow toggles between users
type FollowHandler struct {
	follows  *services.FollowService
	profiles *services.ProfileService
	resolver *identity.Resolver
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(follows *services.FollowService, profiles *services.ProfileService, resolver *identity.Resolver) *FollowHandler {
	return &FollowHandler{follows: follows, profiles: profiles, resolver: resolver}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.ToggleFollow, middleware.RequireProfile)
	g.GET("/users/:id/follow", h.FollowStatus)
}

// ToggleFollow follows the user, or unfollows if the caller already does
func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	userID, err := actorID(c, h.resolver)
	if err != nil {
		return failure(c, err)
	}
	targetID, err := paramID(c, "id")
	if err != nil {
		return failure(c, err)
	}

	out, err := h.follows.ToggleFollow(c.Request().Context(), userID, targetID)
	if err != nil {
		return failure(c, err)
	}
	return success(c, http.StatusOK, out)
}

// FollowStatus reports whether the caller follows the user. Anonymous
// callers follow nobody.
func (h *FollowHandler) FollowStatus(c echo.Context) error {
	targetID, err := paramID(c, "id")
	if err != nil {
		return failure(c, err)
	}

	following := false
	if viewer, ok := viewerID(c, h.resolver); ok {
		following = h.profiles.IsFollowing(c.Request().Context(), viewer, targetID)
	}
	return success(c, http.StatusOK, map[string]bool{"following": following})
}
