package routes

import (
	"github.com/gin-gonic/gin"

	"cleanup-be/controllers"
	"cleanup-be/middlewares"
)

// AuthRoutes sets up the authentication routes
func AuthRoutes(api *gin.RouterGroup, ctl *controllers.Controller, secret []byte) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", ctl.RegisterUser)
		auth.POST("/login", ctl.LoginUser)
		auth.POST("/logout", ctl.LogoutUser)
		auth.POST("/forgot-password", ctl.ForgotPassword)
		auth.POST("/reset-password", ctl.ResetPassword)
		auth.GET("/me", middlewares.AuthMiddleware(secret), ctl.GetMe)
	}
}
