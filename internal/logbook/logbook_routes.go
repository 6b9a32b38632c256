package logbook

import (
	"go-presensi/internal/middleware"
	"go-presensi/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	logbooks := r.Group("/logbooks")
	logbooks.Use(middleware.AuthMiddleware())
	{
		logbooks.POST("", handler.Create)
		logbooks.GET("/today", handler.GetToday)
		logbooks.GET("/me", handler.GetMine)
		logbooks.PUT("/:id", handler.Update)

		logbooks.GET("", middleware.RBACAuthorize(rbacService, "logbook", "review"), handler.GetAllForReview)
		logbooks.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "logbook", "review"), handler.Approve)
		logbooks.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "logbook", "review"), handler.Reject)
	}
}
