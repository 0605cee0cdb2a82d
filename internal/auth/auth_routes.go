package auth

import (
	"go-hrm/internal/middleware"
	"go-hrm/internal/rbac"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	authGroup := r.Group("/auth")
	{
		// brute-force guard untuk endpoint kredensial
		loginLimit := middleware.RateLimitByIP(rate.Limit(1), 5)

		authGroup.POST("/login", loginLimit, handler.Login)
		authGroup.POST("/refresh", handler.Refresh)
		authGroup.POST("/logout", handler.Logout)
		authGroup.GET("/me", middleware.AuthMiddleware(), handler.Me)
		authGroup.POST("/register",
			middleware.AuthMiddleware(),
			middleware.RoleMiddleware(rbac.RoleAdmin),
			handler.Register,
		)

		resetLimit := middleware.RateLimitByIP(rate.Limit(0.5), 3)
		authGroup.POST("/password-reset/request", resetLimit, handler.RequestPasswordReset)
		authGroup.GET("/password-reset/validate", handler.ValidateResetToken)
		authGroup.POST("/password-reset/confirm", resetLimit, handler.ResetPassword)
	}
}
