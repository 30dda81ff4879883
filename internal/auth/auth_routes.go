package auth

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/yungsandro2003/vivaponto/internal/middleware"
)

func RegisterRoutes(rg *gin.RouterGroup, handler *Handler) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/login", middleware.RateLimitByIP(rate.Every(time.Second), 5), handler.Login)
		authGroup.POST("/register", middleware.AuthMiddleware(), middleware.RequireAdmin(), handler.Register)
		authGroup.GET("/me", middleware.AuthMiddleware(), handler.GetMe)
	}
}
