package healthcheck

import (
	"net/http"

	"vidtube/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup) {
	v1.GET("/healthz", h.Check)
}

func (h *Handler) Check(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"status": "ok"}, "OK")
}
