package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/hirescope/hirescope/internal/pkg/response"
	"github.com/hirescope/hirescope/internal/service"
)

type HealthHandler struct {
	screening *service.ScreeningService
}

func NewHealthHandler(screening *service.ScreeningService) *HealthHandler {
	return &HealthHandler{screening: screening}
}

func (h *HealthHandler) Health(c *gin.Context) {
	response.Success(c, gin.H{
		"status": "ok",
		"state":  h.screening.State(),
	})
}
