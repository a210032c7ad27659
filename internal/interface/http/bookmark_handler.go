package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-link-saver/internal/application"
	"github.com/oksasatya/go-link-saver/internal/domain/entity"
	"github.com/oksasatya/go-link-saver/internal/interface/middleware"
	"github.com/oksasatya/go-link-saver/pkg/response"
	"github.com/oksasatya/go-link-saver/pkg/validation"
)

// BookmarkService is the bookmark side of the application layer.
type BookmarkService interface {
	Create(ctx context.Context, ownerID int64, rawURL string) (*entity.Bookmark, error)
	List(ctx context.Context, ownerID int64) ([]entity.Bookmark, error)
	Get(ctx context.Context, ownerID, id int64) (*entity.Bookmark, error)
	Delete(ctx context.Context, ownerID, id int64) (bool, error)
	Search(ctx context.Context, ownerID int64, q string, size int) ([]entity.Bookmark, error)
}

type BookmarkHandler struct {
	Svc    BookmarkService
	Logger *logrus.Logger
}

func NewBookmarkHandler(svc BookmarkService, logger *logrus.Logger) *BookmarkHandler {
	return &BookmarkHandler{Svc: svc, Logger: logger}
}

type createBookmarkRequest struct {
	URL string `json:"url" binding:"required,weburl"`
}

// Create POST /api/bookmarks
func (h *BookmarkHandler) Create(c *gin.Context) {
	uid, ok := middleware.UserID(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "authentication required", nil)
		return
	}
	var req createBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	b, err := h.Svc.Create(c.Request.Context(), uid, strings.TrimSpace(req.URL))
	if err != nil {
		internalError(c, h.Logger, "create bookmark failed", err)
		return
	}
	response.Success(c, http.StatusCreated, b, "bookmark saved", nil)
}

// List GET /api/bookmarks
func (h *BookmarkHandler) List(c *gin.Context) {
	uid, ok := middleware.UserID(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "authentication required", nil)
		return
	}
	items, err := h.Svc.List(c.Request.Context(), uid)
	if err != nil {
		internalError(c, h.Logger, "list bookmarks failed", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookmarks": items}, "ok", map[string]any{"count": len(items)})
}

// Search GET /api/bookmarks/search?q=&size=
func (h *BookmarkHandler) Search(c *gin.Context) {
	uid, ok := middleware.UserID(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "authentication required", nil)
		return
	}
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "invalid query", map[string]string{"q": "is required"})
		return
	}
	size, _ := strconv.Atoi(c.Query("size"))
	items, err := h.Svc.Search(c.Request.Context(), uid, q, size)
	if err != nil {
		internalError(c, h.Logger, "search bookmarks failed", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookmarks": items}, "ok", map[string]any{"count": len(items)})
}

// Get GET /api/bookmarks/:id
func (h *BookmarkHandler) Get(c *gin.Context) {
	uid, ok := middleware.UserID(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "authentication required", nil)
		return
	}
	id, ok := bookmarkID(c)
	if !ok {
		response.Error[any](c, http.StatusNotFound, "bookmark not found", nil)
		return
	}
	b, err := h.Svc.Get(c.Request.Context(), uid, id)
	if err != nil {
		if errors.Is(err, application.ErrBookmarkNotFound) {
			response.Error[any](c, http.StatusNotFound, "bookmark not found", nil)
			return
		}
		internalError(c, h.Logger, "get bookmark failed", err)
		return
	}
	response.Success(c, http.StatusOK, b, "ok", nil)
}

// Delete DELETE /api/bookmarks/:id
func (h *BookmarkHandler) Delete(c *gin.Context) {
	uid, ok := middleware.UserID(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "authentication required", nil)
		return
	}
	id, ok := bookmarkID(c)
	if !ok {
		response.Error[any](c, http.StatusNotFound, "bookmark not found", nil)
		return
	}
	deleted, err := h.Svc.Delete(c.Request.Context(), uid, id)
	if err != nil {
		internalError(c, h.Logger, "delete bookmark failed", err)
		return
	}
	if !deleted {
		response.Error[any](c, http.StatusNotFound, "bookmark not found", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, "bookmark deleted", nil)
}

// a malformed id cannot name an existing bookmark
func bookmarkID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
