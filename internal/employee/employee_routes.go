package employee

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
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", rbac.Authorize(enforcer, "employee", "read_all"), handler.GetAll)
		employees.GET("/:id", rbac.Authorize(enforcer, "employee", "read"), handler.GetById)
		employees.POST("", rbac.Authorize(enforcer, "employee", "create"), handler.Create)
		employees.PUT("/:id", rbac.Authorize(enforcer, "employee", "update"), handler.Update)
		employees.POST("/:id/photo", rbac.Authorize(enforcer, "employee", "update"), handler.UploadPhoto)
		employees.DELETE("/:id", rbac.Authorize(enforcer, "employee", "delete"), handler.Delete)
	}
}
