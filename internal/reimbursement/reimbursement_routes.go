package reimbursement

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
	reimbursements := r.Group("/reimbursements")
	reimbursements.Use(middleware.AuthMiddleware())
	{
		reimbursements.GET("", rbac.Authorize(enforcer, "reimbursement", "read"), handler.GetAll)
		reimbursements.GET("/:id", rbac.Authorize(enforcer, "reimbursement", "read"), handler.GetById)
		reimbursements.POST("", rbac.Authorize(enforcer, "reimbursement", "create"), handler.Create)
		reimbursements.POST("/:id/approve", rbac.Authorize(enforcer, "reimbursement", "process"), handler.Approve)
		reimbursements.POST("/:id/reject", rbac.Authorize(enforcer, "reimbursement", "process"), handler.Reject)
		reimbursements.POST("/:id/clear", rbac.Authorize(enforcer, "reimbursement", "process"), handler.Clear)
		reimbursements.DELETE("/:id", rbac.Authorize(enforcer, "reimbursement", "delete"), handler.Delete)
	}
}
