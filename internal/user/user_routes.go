package user

import (
	"github.com/gin-gonic/gin"

	"github.com/yungsandro2003/vivaponto/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/me", h.GetMe)
		users.GET("", middleware.RequireAdmin(), h.ListEmployees)
		users.GET("/:id/shift-history", middleware.RequireAdmin(), h.ShiftHistory)
		users.PUT("/:id", middleware.RequireAdmin(), h.Update)
		users.DELETE("/:id", middleware.RequireAdmin(), h.Delete)
	}
}
