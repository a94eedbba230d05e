package avatars

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-coach/internal/shared/server/middleware"
	"resume-coach/internal/shared/server/respond"
	"resume-coach/internal/shared/storage/object"
	"resume-coach/internal/shared/telemetry"
)

// MaxImageBytes caps avatar uploads at 5 MB.
const MaxImageBytes = 5 << 20

// Handler exposes the avatar endpoints.
type Handler struct {
	Repo  Repo
	Store object.Store
}

func NewHandler(repo Repo, store object.Store) *Handler {
	return &Handler{Repo: repo, Store: store}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/avatars", h.upload)
	rg.GET("/avatars/current", h.current)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_upload", "image file is required", nil)
		return
	}
	if fileHeader.Size > MaxImageBytes {
		respond.Error(c, http.StatusBadRequest, "invalid_upload", "image exceeds 5MB limit", nil)
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		respond.Error(c, http.StatusBadRequest, "invalid_upload", "only image uploads are accepted", nil)
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_upload", "could not read upload", nil)
		return
	}
	defer src.Close()

	key, err := h.Store.Save(c.Request.Context(), fileHeader.Filename, src)
	if err != nil {
		telemetry.Error("avatar.save_failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "internal", "could not store image", nil)
		return
	}

	avatar := &Avatar{
		UserID:      userID,
		FileKey:     key,
		ContentType: contentType,
		SizeBytes:   fileHeader.Size,
		UpdatedAt:   time.Now().UTC(),
	}
	prevKey, err := h.Repo.Upsert(c.Request.Context(), avatar)
	if err != nil {
		_ = h.Store.Delete(context.Background(), key)
		telemetry.Error("avatar.upsert_failed", map[string]any{"user_id": userID, "error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "internal", "could not save avatar", nil)
		return
	}

	if prevKey != "" && prevKey != key {
		if err := h.Store.Delete(context.Background(), prevKey); err != nil {
			telemetry.Warn("avatar.cleanup_failed", map[string]any{"file_key": prevKey, "error": err.Error()})
		}
	}

	respond.Success(c, gin.H{"avatar": avatar})
}

func (h *Handler) current(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	avatar, err := h.Repo.GetByUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "no avatar set", nil)
			return
		}
		telemetry.Error("avatar.get_failed", map[string]any{"user_id": userID, "error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "internal", "could not load avatar", nil)
		return
	}

	rc, err := h.Store.Open(c.Request.Context(), avatar.FileKey)
	if err != nil {
		telemetry.Error("avatar.open_failed", map[string]any{"user_id": userID, "file_key": avatar.FileKey, "error": err.Error()})
		respond.Error(c, http.StatusNotFound, "not_found", "avatar file is no longer available", nil)
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, avatar.SizeBytes, avatar.ContentType, rc, nil)
}
