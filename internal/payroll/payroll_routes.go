package payroll

import (
	"organizerpro/internal/middleware"
	"organizerpro/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService rbac.Service,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware())
	{
		payrolls.GET("", rbac.Authorize(rbacService, "payroll", "read"), h.GetAll)
		payrolls.GET("/:id", rbac.Authorize(rbacService, "payroll", "read"), h.GetByID)

		if redisClient != nil {
			payrolls.POST(
				"/generate",
				middleware.Idempotency(redisClient),
				rbac.Authorize(rbacService, "payroll", "generate"),
				h.Generate,
			)
		} else {
			payrolls.POST("/generate", rbac.Authorize(rbacService, "payroll", "generate"), h.Generate)
		}

		payrolls.POST("/:id/approve",
			rbac.Authorize(rbacService, "payroll", "approve"),
			middleware.PrivilegedOnly(),
			h.Approve,
		)
		payrolls.POST("/:id/pay",
			rbac.Authorize(rbacService, "payroll", "pay"),
			middleware.PrivilegedOnly(),
			h.Pay,
		)
	}
}
