package attendance

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
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.POST("/pre-check", handler.PreCheck)
		attendances.POST("/check-in", handler.CheckIn)
		attendances.POST("/check-out", handler.CheckOut)
		attendances.GET("/today", handler.GetToday)
		attendances.GET("", handler.GetAll)

		attendances.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "attendance", "review"), handler.Approve)
		attendances.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "attendance", "review"), handler.Reject)
	}
}
