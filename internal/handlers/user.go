package handlers

import (
	"net/http"

	"github.com/anonto42/socially/internal/identity"
	"github.com/anonto42/socially/internal/middleware"
	"github.com/anonto42/socially/internal/models"
	"github.com/anonto42/socially/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler serves profile pages and profile edits
type UserHandler struct {
	profiles *services.ProfileService
	feed     *services.FeedService
	resolver *identity.Resolver
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(profiles *services.ProfileService, feed *services.FeedService, resolver *identity.Resolver) *UserHandler {
	return &UserHandler{profiles: profiles, feed: feed, resolver: resolver}
}

// RegisterProfileRoutes registers profile routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profiles/:username", h.GetProfile)
	g.GET("/profiles/:username/posts", h.GetUserPosts)
	g.GET("/profiles/:username/likes", h.GetLikedPosts)
	g.PUT("/me/profile", h.UpdateProfile, middleware.RequireProfile)
}

type profileResponse struct {
	*models.Profile
	IsFollowing bool `json:"is_following"`
}

// GetProfile returns a user's profile with counts and whether the caller follows them
func (h *UserHandler) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()
	profile, err := h.profiles.GetProfileByUsername(ctx, c.Param("username"))
	if err != nil {
		return failure(c, err)
	}

	resp := profileResponse{Profile: profile}
	if viewer, ok := viewerID(c, h.resolver); ok && viewer != profile.ID {
		resp.IsFollowing = h.profiles.IsFollowing(ctx, viewer, profile.ID)
	}
	return success(c, http.StatusOK, resp)
}

// GetUserPosts lists posts authored by the user
func (h *UserHandler) GetUserPosts(c echo.Context) error {
	ctx := c.Request().Context()
	profile, err := h.profiles.GetProfileByUsername(ctx, c.Param("username"))
	if err != nil {
		return c.JSON(http.StatusOK, []models.PostView{})
	}
	return c.JSON(http.StatusOK, h.feed.ListUserPosts(ctx, profile.ID))
}

// GetLikedPosts lists posts the user has liked
func (h *UserHandler) GetLikedPosts(c echo.Context) error {
	ctx := c.Request().Context()
	profile, err := h.profiles.GetProfileByUsername(ctx, c.Param("username"))
	if err != nil {
		return c.JSON(http.StatusOK, []models.PostView{})
	}
	return c.JSON(http.StatusOK, h.feed.ListLikedPosts(ctx, profile.ID))
}

// UpdateProfile edits the caller's name, bio, location and website
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := actorID(c, h.resolver)
	if err != nil {
		return failure(c, err)
	}

	var req models.UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return failure(c, err)
	}

	profile, err := h.profiles.UpdateProfile(c.Request().Context(), userID, req)
	if err != nil {
		return failure(c, err)
	}
	return success(c, http.StatusOK, profile)
}
