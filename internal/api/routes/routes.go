// Package routes defines the HTTP routes for the honeypot service.
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scamhive/honeypot-service/internal/api/handlers"
	"github.com/scamhive/honeypot-service/internal/api/middleware"
)

// Config holds the dependencies for setting up routes.
type Config struct {
	HoneypotHandler    *handlers.HoneypotHandler
	HealthHandler      *handlers.HealthHandler
	MaintenanceHandler *handlers.MaintenanceHandler
	AuthMiddleware     *middleware.AuthMiddleware
	MetricsHandler     http.Handler
}

// Setup configures all routes on the Gin engine.
func Setup(r *gin.Engine, cfg *Config) {
	// Prometheus scrape endpoint (no auth).
	if cfg.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	api := r.Group("/api")
	{
		// Health endpoints (no auth required)
		api.GET("/v1/health", cfg.HealthHandler.Health)
		api.GET("/v1/ready", cfg.HealthHandler.Ready)

		// Apply auth middleware to protected routes
		protected := api.Group("")
		protected.Use(cfg.AuthMiddleware.Authenticate())

		// Primary honeypot endpoint: GET/HEAD tester pings, POST messages
		protected.GET("/honeypot", cfg.HoneypotHandler.Ping)
		protected.HEAD("/honeypot", cfg.HoneypotHandler.Ping)
		protected.POST("/honeypot", cfg.HoneypotHandler.Process)

		// Debug and maintenance endpoints
		protected.POST("/v1/message", cfg.HoneypotHandler.ProcessDebug)
		protected.POST("/v1/cleanup", cfg.MaintenanceHandler.Cleanup)
	}

	r.NoRoute(middleware.NotFound())
}

// SetupWithMiddleware sets up routes with common middleware.
func SetupWithMiddleware(r *gin.Engine, cfg *Config, loggingMw *middleware.LoggingMiddleware, errorMw *middleware.ErrorMiddleware) {
	r.Use(loggingMw.Logger())
	r.Use(errorMw.Recovery())
	r.Use(gin.Recovery())

	Setup(r, cfg)
}
