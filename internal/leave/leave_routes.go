package leave

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
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("", handler.Create)
		leaves.GET("/me", handler.GetMine)
		leaves.GET("/quota", handler.GetQuota)

		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "review"), handler.GetAllForReview)
		leaves.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "leave", "review"), handler.Approve)
		leaves.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "leave", "review"), handler.Reject)
	}
}
