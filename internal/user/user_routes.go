package user

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
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("", middleware.RBACAuthorize(rbacService, "user", "manage"), handler.GetAll)
		users.GET("/:id", middleware.RBACAuthorize(rbacService, "user", "manage"), handler.GetByID)
		users.POST("", middleware.RBACAuthorize(rbacService, "user", "manage"), handler.Create)
		users.PUT("/:id/role", middleware.RBACAuthorize(rbacService, "user", "manage"), handler.UpdateRole)
	}
}
