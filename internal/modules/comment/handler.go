package comment

import (
	"errors"
	"net/http"
	"strconv"

	"vidtube/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/videos/:id/comments", h.ListByVideo)
	protected.POST("/videos/:id/comments", h.Add)

	comments := protected.Group("/comments")
	{
		comments.PATCH("/:id", h.Update)
		comments.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) ListByVideo(c *gin.Context) {
	videoID, ok := paramID(c, "Invalid video ID")
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	comments, total, err := h.service.ListByVideo(c.Request.Context(), videoID, page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch comments")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"comments": NewViews(comments),
		"total":    total,
	}, "Comments fetched successfully")
}

func (h *Handler) Add(c *gin.Context) {
	videoID, ok := paramID(c, "Invalid video ID")
	if !ok {
		return
	}

	var req AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Comment cannot be empty")
		return
	}

	comment, err := h.service.Add(c.Request.Context(), c.GetInt64("user_id"), videoID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyContent):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Comment cannot be empty")
		case errors.Is(err, ErrVideoNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Video not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to add comment")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"comment": NewView(comment)}, "Comment added successfully")
}

func (h *Handler) Update(c *gin.Context) {
	commentID, ok := paramID(c, "Invalid comment ID")
	if !ok {
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Comment cannot be empty")
		return
	}

	comment, err := h.service.Update(c.Request.Context(), c.GetInt64("user_id"), commentID, req.Content)
	if err != nil {
		h.writeError(c, err, "Failed to update comment")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"comment": NewView(comment)}, "Comment updated successfully")
}

func (h *Handler) Delete(c *gin.Context) {
	commentID, ok := paramID(c, "Invalid comment ID")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.GetInt64("user_id"), commentID); err != nil {
		h.writeError(c, err, "Failed to delete comment")
		return
	}

	response.Success(c, http.StatusOK, nil, "Comment deleted successfully")
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrEmptyContent):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Comment cannot be empty")
	case errors.Is(err, ErrCommentNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Comment not found")
	case errors.Is(err, ErrNotOwner):
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "You are not the owner of this comment")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}

func paramID(c *gin.Context, msg string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", msg)
		return 0, false
	}
	return id, true
}
