package routes

import (
	"github.com/gin-gonic/gin"

	"cleanup-be/controllers"
	"cleanup-be/middlewares"
)

// RequestRoutes sets up the cleanup request routes
func RequestRoutes(api *gin.RouterGroup, ctl *controllers.Controller, secret []byte, limiter gin.HandlerFunc) {
	requests := api.Group("/requests")
	{
		requests.POST("", middlewares.OptionalAuth(secret), limiter, ctl.CreateRequest)
		requests.GET("/:id", ctl.GetRequest)
	}

	admin := requests.Group("")
	admin.Use(middlewares.AuthMiddleware(secret), middlewares.AdminOnly())
	{
		admin.GET("", ctl.SearchRequests)
		admin.GET("/stats", ctl.RequestStats)
		admin.PATCH("/:id", ctl.UpdateRequest)
		admin.PATCH("/:id/status", ctl.UpdateRequestStatus)
		admin.PATCH("/:id/assign", ctl.AssignRequest)
		admin.DELETE("/:id", ctl.DeleteRequest)
	}
}
