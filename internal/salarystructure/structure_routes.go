package salarystructure

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
	structures := r.Group("/salary-structures")
	structures.Use(middleware.AuthMiddleware())
	{
		structures.PUT("", rbac.Authorize(enforcer, "salarystructure", "write"), handler.Save)
		structures.GET("/employees/:id", rbac.Authorize(enforcer, "salarystructure", "read"), handler.GetByEmployee)
	}

	template := r.Group("/salary-template")
	template.Use(middleware.AuthMiddleware())
	{
		template.GET("", rbac.Authorize(enforcer, "salarystructure", "read"), handler.GetTemplate)
		template.PUT("", rbac.Authorize(enforcer, "salarystructure", "write"), handler.SaveTemplate)
	}
}
