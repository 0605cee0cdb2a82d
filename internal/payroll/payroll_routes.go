package payroll

import (
	"go-hrm/internal/middleware"
	"go-hrm/internal/rbac"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	enforcer *casbin.Enforcer,
	rdb *redis.Client,
) {
	payslips := r.Group("/payslips")
	payslips.Use(middleware.AuthMiddleware())
	{
		payslips.GET("/employees/:id", rbac.Authorize(enforcer, "payslip", "read"), handler.GetMonthlySlip)
		payslips.POST("/generate",
			rbac.Authorize(enforcer, "payslip", "generate"),
			middleware.Idempotency(rdb),
			handler.GenerateDetailedSlip,
		)
	}
}
