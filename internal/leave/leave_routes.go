package leave

import (
	"go-hrm/internal/middleware"
	"go-hrm/internal/rbac"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	enforcer *casbin.Enforcer,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.GET("", rbac.Authorize(enforcer, "leave", "read"), handler.GetAll)
		leaves.GET("/:id", rbac.Authorize(enforcer, "leave", "read"), handler.GetById)
		leaves.POST("", rbac.Authorize(enforcer, "leave", "create"), handler.Create)
		leaves.POST("/:id/approve", rbac.Authorize(enforcer, "leave", "approve"), handler.Approve)
		leaves.POST("/:id/reject", rbac.Authorize(enforcer, "leave", "approve"), handler.Reject)
		leaves.POST("/:id/cancel", rbac.Authorize(enforcer, "leave", "read"), handler.Cancel)
		leaves.DELETE("/:id", rbac.Authorize(enforcer, "leave", "read"), handler.Delete)
	}

	compoffs := r.Group("/compoffs")
	compoffs.Use(middleware.AuthMiddleware())
	{
		compoffs.POST("", rbac.Authorize(enforcer, "compoff", "create"), handler.GrantCompOff)
		compoffs.POST("/:id/use", rbac.Authorize(enforcer, "compoff", "read"), handler.UseCompOff)
	}

	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("/:id/leave-summary", rbac.Authorize(enforcer, "leave", "read"), handler.MonthlySummary)
		employees.GET("/:id/compoffs", rbac.Authorize(enforcer, "compoff", "read"), handler.ListCompOff)
	}
}
