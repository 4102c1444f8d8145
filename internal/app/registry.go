package app

import (
	"organizerpro/internal/attendance"
	"organizerpro/internal/attendancelock"
	"organizerpro/internal/ledger"
	"organizerpro/internal/member"
	"organizerpro/internal/messaging/kafka"
	"organizerpro/internal/payroll"
	"organizerpro/internal/rbac"
	"organizerpro/internal/shared/clock"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	lockRepo := attendancelock.NewRepository(gormDB)
	ledgerRepo := ledger.NewRepository(gormDB)
	memberRepo := member.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Services ---
	clk := clock.System()
	lockService := attendancelock.NewService(gormDB, lockRepo, outboxRepo, clk)
	attendanceService := attendance.NewService(gormDB, attendanceRepo, memberRepo, lockService, clk)
	payrollService := payroll.NewService(gormDB, payrollRepo, attendanceService, ledgerRepo, outboxRepo, clk)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	lockHandler := attendancelock.NewHandler(lockService)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		attendancelock.RegisterRoutes(api, lockHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
	}

	return nil
}
