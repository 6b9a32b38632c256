package officenetwork

import (
	"go-presensi/internal/middleware"
	"go-presensi/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	networks := r.Group("/office-networks")
	networks.Use(middleware.AuthMiddleware())
	{
		networks.GET("", middleware.RBACAuthorize(rbacService, "office_network", "read"), h.GetAll)
		networks.GET("/:id", middleware.RBACAuthorize(rbacService, "office_network", "read"), h.GetByID)
		networks.POST("", middleware.RBACAuthorize(rbacService, "office_network", "manage"), h.Create)
		networks.PUT("/:id", middleware.RBACAuthorize(rbacService, "office_network", "manage"), h.Update)
		networks.DELETE("/:id", middleware.RBACAuthorize(rbacService, "office_network", "manage"), h.Delete)
	}
}
