package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hirescope/hirescope/internal/middleware"
)

type RouterDeps struct {
	Screening       *ScreeningHandler
	Health          *HealthHandler
	RateLimitWindow time.Duration
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.GET("/health", deps.Health.Health)

	// Uploads and generation calls share one per-path cooldown.
	limit := middleware.RateLimit(deps.RateLimitWindow)

	uploads := api.Group("/upload")
	uploads.Use(limit)
	uploads.POST("/resume", deps.Screening.UploadResume)
	uploads.POST("/jd", deps.Screening.UploadJobDescription)

	api.GET("/analysis", deps.Screening.Analysis)
	api.POST("/chat", limit, deps.Screening.Chat)
	api.GET("/ask", limit, deps.Screening.Ask)
}
