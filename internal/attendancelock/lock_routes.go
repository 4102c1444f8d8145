package attendancelock

import (
	"organizerpro/internal/middleware"
	"organizerpro/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.GET("/locks", rbac.Authorize(rbacService, "attendance", "read"), h.ListLocked)
		attendances.POST("/lock", rbac.Authorize(rbacService, "attendance", "lock"), h.Lock)
		attendances.POST("/unlock",
			rbac.Authorize(rbacService, "attendance", "unlock"),
			middleware.PrivilegedOnly(),
			h.Unlock,
		)
	}
}
