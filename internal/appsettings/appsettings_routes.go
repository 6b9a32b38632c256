package appsettings

import (
	"go-presensi/internal/middleware"
	"go-presensi/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	settings := r.Group("/settings")
	settings.Use(middleware.AuthMiddleware())
	{
		settings.GET("/time-validation", h.GetTimeValidation)
		settings.PUT("", middleware.RBACAuthorize(rbacService, "settings", "manage"), h.Update)
	}
}
