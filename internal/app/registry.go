package app

import (
	"database/sql"
	"os"
	"path/filepath"

	"go-presensi/internal/appsettings"
	"go-presensi/internal/attendance"
	"go-presensi/internal/auth"
	"go-presensi/internal/leave"
	"go-presensi/internal/logbook"
	"go-presensi/internal/messaging/kafka"
	"go-presensi/internal/officenetwork"
	"go-presensi/internal/rbac"
	"go-presensi/internal/rbac/infra"
	"go-presensi/internal/storage"
	"go-presensi/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	logbookRepo := logbook.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	officeNetworkRepo := officenetwork.NewRepository(gormDB)
	settingsRepo := appsettings.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)
	if err := rbacRepo.SeedRolePermissions(rbac.DefaultRolePermissions()); err != nil {
		return err
	}

	// --- Storage ---
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	store, err := storage.NewDiskStore(uploadDir)
	if err != nil {
		return err
	}

	// --- Services ---
	settingsService := appsettings.NewService(db, settingsRepo)
	officeNetworkService := officenetwork.NewService(db, officeNetworkRepo, rdb)
	attendanceService := attendance.NewService(
		db,
		attendanceRepo,
		officeNetworkService,
		settingsService,
		logbookRepo,
		store,
		outboxRepo,
	)
	logbookService := logbook.NewService(db, logbookRepo, attendanceRepo)
	leaveService := leave.NewService(db, leaveRepo, settingsService, store, outboxRepo)
	userService := user.NewService(userRepo, rbacService)
	authService := auth.NewService(userRepo)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	authHandler := auth.NewHandler(authService)
	leaveHandler := leave.NewHandler(leaveService)
	logbookHandler := logbook.NewHandler(logbookService)
	officeNetworkHandler := officenetwork.NewHandler(officeNetworkService)
	settingsHandler := appsettings.NewHandler(settingsService)
	userHandler := user.NewHandler(userService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService)
		logbook.RegisterRoutes(api, logbookHandler, rbacService)
		officenetwork.RegisterRoutes(api, officeNetworkHandler, rbacService)
		appsettings.RegisterRoutes(api, settingsHandler, rbacService)
		user.RegisterRoutes(api, userHandler, rbacService)
	}

	return nil
}
