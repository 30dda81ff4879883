package adjustment

import (
	"github.com/gin-gonic/gin"

	"github.com/yungsandro2003/vivaponto/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	requests := r.Group("/adjustment-requests")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.GET("", h.List)
		requests.POST("", h.Submit)
		requests.PUT("/:id/approve", middleware.RequireAdmin(), h.Approve)
		requests.PUT("/:id/reject", middleware.RequireAdmin(), h.Reject)
	}
}
