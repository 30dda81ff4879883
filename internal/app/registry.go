package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungsandro2003/vivaponto/internal/adjustment"
	"github.com/yungsandro2003/vivaponto/internal/auth"
	"github.com/yungsandro2003/vivaponto/internal/messaging/kafka"
	"github.com/yungsandro2003/vivaponto/internal/punch"
	"github.com/yungsandro2003/vivaponto/internal/report"
	"github.com/yungsandro2003/vivaponto/internal/shift"
	"github.com/yungsandro2003/vivaponto/internal/user"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	shiftRepo := shift.NewRepository(gormDB)
	punchRepo := punch.NewRepository(gormDB)
	adjustmentRepo := adjustment.NewRepository(gormDB)
	reportRepo := report.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	authService := auth.NewService(userRepo)
	userService := user.NewService(db, userRepo)
	shiftService := shift.NewService(db, shiftRepo, rdb)
	punchService := punch.NewServiceWithOutbox(db, punchRepo, outboxRepo)
	adjustmentService := adjustment.NewServiceWithOutbox(db, adjustmentRepo, punchRepo, outboxRepo)
	reportService := report.NewService(reportRepo, userRepo, adjustmentRepo, rdb, report.DefaultConfig())

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService)
	shiftHandler := shift.NewHandler(shiftService)
	punchHandler := punch.NewHandler(punchService)
	adjustmentHandler := adjustment.NewHandler(adjustmentService)
	reportHandler := report.NewHandler(reportService)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		user.RegisterRoutes(api, userHandler)
		shift.RegisterRoutes(api, shiftHandler)
		punch.RegisterRoutes(api, punchHandler)
		adjustment.RegisterRoutes(api, adjustmentHandler)
		report.RegisterRoutes(api, reportHandler)
	}

	return nil
}
