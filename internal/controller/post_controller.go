// internal/controller/post_controller.go
package controller

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/MarcusGasberg/somemellier/internal/errors"
	"github.com/MarcusGasberg/somemellier/internal/middleware"
	"github.com/MarcusGasberg/somemellier/internal/model"
	"github.com/MarcusGasberg/somemellier/internal/service"
)

type PostController struct {
	PostService *service.PostService
}

// ListPosts serves GET /api/posts with an optional campaignId filter.
func (c *PostController) ListPosts(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	campaignID := r.URL.Query().Get("campaignId")

	posts, err := c.PostService.ListPosts(userID, campaignID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

func (c *PostController) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var post model.Post
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		writeError(w, appErrors.NewValidation("invalid body"))
		return
	}

	created, err := c.PostService.CreatePost(userID, &post)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"post": created})
}

// UpdatePost replaces a post wholesale; the id travels in the body.
func (c *PostController) UpdatePost(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var post model.Post
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		writeError(w, appErrors.NewValidation("invalid body"))
		return
	}
	if post.ID == "" {
		writeError(w, appErrors.NewValidation("Post ID required"))
		return
	}

	updated, err := c.PostService.UpdatePost(userID, &post)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"post": updated})
}

// ListPostVersions serves the append-only history trail of a post.
func (c *PostController) ListPostVersions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	postID := chi.URLParam(r, "id")

	versions, err := c.PostService.ListVersions(postID, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"versions": versions})
}
