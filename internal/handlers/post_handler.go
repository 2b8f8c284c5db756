package handlers

import (
	"net/http"

	"github.com/anonto42/socially/internal/identity"
	"github.com/anonto42/socially/internal/middleware"
	"github.com/anonto42/socially/internal/models"
	"github.com/anonto42/socially/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	posts    *services.PostService
	resolver *identity.Resolver
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(posts *services.PostService, resolver *identity.Resolver) *PostHandler {
	return &PostHandler{posts: posts, resolver: resolver}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost, middleware.RequireProfile)
	g.PUT("/posts/:id", h.UpdatePost, middleware.RequireProfile)
	g.DELETE("/posts/:id", h.DeletePost, middleware.RequireProfile)
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID, err := actorID(c, h.resolver)
	if err != nil {
		return failure(c, err)
	}

	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return failure(c, err)
	}

	post, err := h.posts.CreatePost(c.Request().Context(), userID, req.Content, req.ImageURL)
	if err != nil {
		return failure(c, err)
	}
	return success(c, http.StatusCreated, post)
}

// UpdatePost updates an existing post
func (h *PostHandler) UpdatePost(c echo.Context) error {
	userID, err := actorID(c, h.resolver)
	if err != nil {
		return failure(c, err)
	}
	postID, err := paramID(c, "id")
	if err != nil {
		return failure(c, err)
	}

	var req models.UpdatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return failure(c, err)
	}

	post, err := h.posts.UpdatePost(c.Request().Context(), userID, postID, req.Content)
	if err != nil {
		return failure(c, err)
	}
	return success(c, http.StatusOK, post)
}

// DeletePost deletes a post and everything attached to it
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID, err := actorID(c, h.resolver)
	if err != nil {
		return failure(c, err)
	}
	postID, err := paramID(c, "id")
	if err != nil {
		return failure(c, err)
	}

	if err := h.posts.DeletePost(c.Request().Context(), userID, postID); err != nil {
		return failure(c, err)
	}
	return success(c, http.StatusOK, map[string]uint{"id": postID})
}
