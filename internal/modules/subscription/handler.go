package subscription

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
	subs := protected.Group("/subscriptions")
	{
		subs.POST("/channels/:id", h.Toggle)
		subs.GET("/channels/:id/subscribers", h.Subscribers)
		subs.GET("/me", h.SubscribedChannels)
	}
}

func (h *Handler) Toggle(c *gin.Context) {
	channelID, ok := paramID(c)
	if !ok {
		return
	}

	subscribed, err := h.service.Toggle(c.Request.Context(), c.GetInt64("user_id"), channelID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfSubscription):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "You can't subscribe to your own channel")
		case errors.Is(err, ErrChannelNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Channel not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to toggle subscription")
		}
		return
	}

	message := "Subscription removed"
	if subscribed {
		message = "Subscription added"
	}
	response.Success(c, http.StatusOK, gin.H{"subscribed": subscribed}, message)
}

func (h *Handler) Subscribers(c *gin.Context) {
	channelID, ok := paramID(c)
	if !ok {
		return
	}

	users, err := h.service.Subscribers(c.Request.Context(), channelID)
	if err != nil {
		if errors.Is(err, ErrChannelNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Channel not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch subscribers")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"subscribers": NewChannelSummaries(users)}, "Subscribers")
}

func (h *Handler) SubscribedChannels(c *gin.Context) {
	users, err := h.service.SubscribedChannels(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch subscriptions")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"channels": NewChannelSummaries(users)}, "Subscribed channels")
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid channel ID")
		return 0, false
	}
	return id, true
}
