package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/socially/internal/identity"
	"github.com/anonto42/socially/internal/models"
	"github.com/anonto42/socially/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler serves the global feed and follow suggestions
type FeedHandler struct {
	feed     *services.FeedService
	resolver *identity.Resolver
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feed *services.FeedService, resolver *identity.Resolver) *FeedHandler {
	return &FeedHandler{feed: feed, resolver: resolver}
}

// RegisterFeedRoutes registers feed routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/posts", h.GetPosts)
	g.GET("/suggestions", h.GetSuggestions)
}

// GetPosts returns posts newest first. ?before=<post id>&limit=<n> pages
// through older posts.
func (h *FeedHandler) GetPosts(c echo.Context) error {
	var page services.Page
	if before, err := strconv.ParseUint(c.QueryParam("before"), 10, 32); err == nil {
		page.BeforeID = uint(before)
	}
	if limit, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		page.Limit = limit
	}
	return c.JSON(http.StatusOK, h.feed.ListPosts(c.Request().Context(), page))
}

// GetSuggestions returns a few users the caller could follow
func (h *FeedHandler) GetSuggestions(c echo.Context) error {
	userID, ok := viewerID(c, h.resolver)
	if !ok {
		return c.JSON(http.StatusOK, []models.Suggestion{})
	}
	return c.JSON(http.StatusOK, h.feed.ListFollowSuggestions(c.Request().Context(), userID))
}
