package api

import (
	"github.com/Conceptual-Machines/promptarchitect-api/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/promptarchitect-api/internal/api/middleware"
	"github.com/Conceptual-Machines/promptarchitect-api/internal/metrics"
	"github.com/Conceptual-Machines/promptarchitect-api/internal/services"
	webhandlers "github.com/Conceptual-Machines/promptarchitect-api/internal/web/handlers"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

// Dependencies are the services the router wires into handlers
type Dependencies struct {
	Generator    *services.PromptGenerator
	SessionStore sessions.Store
	Counters     *metrics.Counters
	APIRecorders []metrics.APIRecorder
}

func SetupRouter(deps Dependencies, version string) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(deps.APIRecorders...))

	// CORS middleware
	router.Use(apimiddleware.CORS())

	// Health check
	healthHandler := handlers.NewHealthHandler(deps.Generator)
	router.GET("/health", healthHandler.HealthCheck)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version, deps.Counters)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	// Web pages
	webHandler := webhandlers.NewWebHandler(deps.Generator, deps.SessionStore, deps.Generator.Model())
	router.GET("/", webHandler.Home)
	router.POST("/generate", webHandler.Generate)

	// JSON API v1
	v1 := router.Group("/api/v1")
	{
		promptHandler := handlers.NewPromptHandler(deps.Generator)
		v1.POST("/prompts/generate", promptHandler.Generate)
		v1.GET("/prompts/options", promptHandler.Options)
	}

	return router
}
