package channel

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
	protected.GET("/c/:username", h.Profile)
	protected.GET("/users/history", h.WatchHistory)
}

func (h *Handler) Profile(c *gin.Context) {
	username := c.Param("username")

	profile, err := h.service.Profile(c.Request.Context(), c.GetInt64("user_id"), username)
	if err != nil {
		if errors.Is(err, ErrChannelNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Channel not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch channel profile")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"channel": profile}, "Channel profile")
}

func (h *Handler) WatchHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, err := h.service.WatchHistory(c.Request.Context(), c.GetInt64("user_id"), limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch watch history")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"history": items}, "Watch history")
}
