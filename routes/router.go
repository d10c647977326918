package routes

import (
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cleanup-be/controllers"
	"cleanup-be/middlewares"
)

// RouterOptions configures NewRouter
type RouterOptions struct {
	JWTSecret   []byte
	CORSOrigins []string
	// RequestLimiter guards request submission; nil disables it
	RequestLimiter gin.HandlerFunc
}

// NewRouter wires every route of the API
func NewRouter(ctl *controllers.Controller, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))
	r.Use(middlewares.MetricsMiddleware())
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/healthz", ctl.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limiter := opts.RequestLimiter
	if limiter == nil {
		limiter = func(c *gin.Context) { c.Next() }
	}

	api := r.Group("/api")
	api.Use(middlewares.Logger("gin"))
	AuthRoutes(api, ctl, opts.JWTSecret)
	UserRoutes(api, ctl, opts.JWTSecret)
	RequestRoutes(api, ctl, opts.JWTSecret, limiter)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		// credentials cannot be combined with a literal wildcard origin
		cfg.AllowOriginFunc = func(string) bool { return true }
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
