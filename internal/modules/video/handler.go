package video

import (
	"errors"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"vidtube/internal/pkg/response"
	"vidtube/internal/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	videos := protected.Group("/videos")
	{
		videos.GET("", h.List)
		videos.POST("", h.Publish)
		videos.GET("/:id", h.Get)
		videos.PATCH("/:id", h.Update)
		videos.DELETE("/:id", h.Delete)
		videos.PATCH("/:id/toggle-publish", h.TogglePublish)
	}
}

func (h *Handler) Publish(c *gin.Context) {
	var req PublishRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Title and description are required")
		return
	}

	videoFile, err := c.FormFile("videoFile")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Video file is required")
		return
	}
	thumbnailFile, err := c.FormFile("thumbnail")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Thumbnail is required")
		return
	}

	videoPath, err := saveTempUpload(c, videoFile)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to accept video file")
		return
	}
	thumbnailPath, err := saveTempUpload(c, thumbnailFile)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to accept thumbnail")
		return
	}

	v, err := h.service.Publish(c.Request.Context(), c.GetInt64("user_id"), req, videoPath, thumbnailPath)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, storage.ErrUploadFailed):
			response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to upload video or thumbnail")
		default:
			response.Error(c, http.StatusInternalServerError, "PUBLISH_FAILED", "Failed to publish video")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"video": NewView(v)}, "Video published successfully")
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	v, err := h.service.Get(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		if errors.Is(err, ErrVideoNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Video not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch video")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"video": NewView(v)}, "Video retrieved successfully")
}

func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	videos, total, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list videos")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"videos": NewViews(videos),
		"total":  total,
	}, "Videos fetched successfully")
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	var thumbnailPath string
	if file, err := c.FormFile("thumbnail"); err == nil {
		if thumbnailPath, err = saveTempUpload(c, file); err != nil {
			response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to accept thumbnail")
			return
		}
	}

	v, err := h.service.Update(c.Request.Context(), c.GetInt64("user_id"), id, req, thumbnailPath)
	if err != nil {
		h.writeOwnershipError(c, err, "Failed to update video")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"video": NewView(v)}, "Video updated successfully")
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		h.writeOwnershipError(c, err, "Failed to delete video")
		return
	}

	response.Success(c, http.StatusOK, nil, "Video deleted successfully")
}

func (h *Handler) TogglePublish(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	v, err := h.service.TogglePublish(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		h.writeOwnershipError(c, err, "Failed to toggle publish status")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"video": NewView(v)}, "Video publish status updated")
}

func (h *Handler) writeOwnershipError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrVideoNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Video not found")
	case errors.Is(err, ErrNotOwner):
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "You are not the owner of this video")
	case errors.Is(err, storage.ErrUploadFailed):
		response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to upload thumbnail")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid video ID")
		return 0, false
	}
	return id, true
}

func saveTempUpload(c *gin.Context, file *multipart.FileHeader) (string, error) {
	path := filepath.Join(os.TempDir(), uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", err
	}
	return path, nil
}
