package handlers

import (
	"net/http"

	"github.com/anonto42/socially/internal/identity"
	"github.com/anonto42/socially/internal/middleware"
	"github.com/anonto42/socially/internal/services"
	"github.com/labstack/echo/v4"
)

// AuthHandler links verified identities to internal users.
type AuthHandler struct {
	resolver *identity.Resolver
	profiles *services.ProfileService
}

func NewAuthHandler(resolver *identity.Resolver, profiles *services.ProfileService) *AuthHandler {
	return &AuthHandler{resolver: resolver, profiles: profiles}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/auth/sync", h.Sync, middleware.RequireProfile)
	g.GET("/me", h.Me, middleware.RequireProfile)
}

// Sync creates the caller's user record on first sign-in and returns it.
func (h *AuthHandler) Sync(c echo.Context) error {
	user, err := h.resolver.ResolveOrCreateUser(c.Request().Context(), *middleware.ProfileFrom(c))
	if err != nil {
		return failure(c, err)
	}
	return success(c, http.StatusOK, user)
}

// Me returns the caller's profile with follower, following and post counts.
func (h *AuthHandler) Me(c echo.Context) error {
	id, err := actorID(c, h.resolver)
	if err != nil {
		return failure(c, err)
	}
	profile, err := h.profiles.GetProfileByID(c.Request().Context(), id)
	if err != nil {
		return failure(c, err)
	}
	return success(c, http.StatusOK, profile)
}
