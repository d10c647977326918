package routes

import (
	"github.com/gin-gonic/gin"

	"cleanup-be/controllers"
	"cleanup-be/middlewares"
)

// UserRoutes sets up the profile and user administration routes
func UserRoutes(api *gin.RouterGroup, ctl *controllers.Controller, secret []byte) {
	users := api.Group("/users")
	users.Use(middlewares.AuthMiddleware(secret))
	{
		users.PATCH("/me", ctl.UpdateProfile)
		users.PUT("/me/password", ctl.ChangePassword)
		users.GET("/me/requests", ctl.MyRequests)
		users.GET("/me/stats", ctl.MyStats)
	}

	admin := users.Group("")
	admin.Use(middlewares.AdminOnly())
	{
		admin.GET("", ctl.ListUsers)
		admin.GET("/stats", ctl.UserStats)
		admin.GET("/:id", ctl.GetUser)
		admin.PATCH("/:id/status", ctl.UpdateUserStatus)
		admin.DELETE("/:id", ctl.DeleteUser)
	}
}
