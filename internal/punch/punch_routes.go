package punch

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/yungsandro2003/vivaponto/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	records := r.Group("/time-records")
	records.Use(middleware.AuthMiddleware())
	{
		records.POST("", middleware.RateLimitByUser(rate.Every(time.Second), 3), h.ClockIn)
		records.GET("", h.List)
		records.GET("/today", h.Today)
	}

	manual := r.Group("/manual")
	manual.Use(middleware.AuthMiddleware(), middleware.RequireAdmin())
	{
		manual.POST("/add", h.ManualAdd)
		manual.PUT("/edit/:id", h.ManualEdit)
		manual.DELETE("/delete/:id", h.ManualDelete)
		manual.GET("/records/:userId/:date", h.DayRecords)
	}
}
