package report

import (
	"github.com/gin-gonic/gin"

	"github.com/yungsandro2003/vivaponto/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware())
	{
		reports.GET("", h.Generate)
		reports.GET("/export", h.Export)
	}

	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.AuthMiddleware(), middleware.RequireAdmin())
	{
		dashboard.GET("/stats", h.Dashboard)
	}
}
