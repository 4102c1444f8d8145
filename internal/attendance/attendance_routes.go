package attendance

import (
	"organizerpro/internal/middleware"
	"organizerpro/internal/rbac"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	attendances.Use(middleware.RateLimitByTenant(rate.Limit(20), 40))
	{
		attendances.GET("", rbac.Authorize(rbacService, "attendance", "read"), h.GetAll)
		attendances.GET("/stats", rbac.Authorize(rbacService, "attendance", "read"), h.Stats)
		attendances.GET("/summary", rbac.Authorize(rbacService, "attendance", "read"), h.Summary)
		attendances.POST("", rbac.Authorize(rbacService, "attendance", "create"), h.Create)
		attendances.POST("/quick", rbac.Authorize(rbacService, "attendance", "create"), h.QuickMark)
		attendances.POST("/bulk", rbac.Authorize(rbacService, "attendance", "create"), h.BulkMark)
		attendances.PATCH("/:id", rbac.Authorize(rbacService, "attendance", "update"), h.Update)
		attendances.DELETE("/:id", rbac.Authorize(rbacService, "attendance", "delete"), h.Delete)
	}
}
