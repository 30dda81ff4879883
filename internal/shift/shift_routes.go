package shift

import (
	"github.com/gin-gonic/gin"

	"github.com/yungsandro2003/vivaponto/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	shifts := r.Group("/shifts")
	shifts.Use(middleware.AuthMiddleware())
	{
		shifts.GET("", h.GetAll)
		shifts.GET("/:id", h.GetByID)
		shifts.POST("", middleware.RequireAdmin(), h.Create)
		shifts.PUT("/:id", middleware.RequireAdmin(), h.Update)
		shifts.DELETE("/:id", middleware.RequireAdmin(), h.Delete)
	}
}
