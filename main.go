package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/Conceptual-Machines/promptarchitect-api/internal/api"
	"github.com/Conceptual-Machines/promptarchitect-api/internal/config"
	"github.com/Conceptual-Machines/promptarchitect-api/internal/metrics"
	"github.com/Conceptual-Machines/promptarchitect-api/internal/observability"
	"github.com/Conceptual-Machines/promptarchitect-api/internal/services"
	webhandlers "github.com/Conceptual-Machines/promptarchitect-api/internal/web/handlers"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	sentryFlushTimeout = 2 * time.Second
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

// GetVersion returns the current release version
func GetVersion() string {
	return releaseVersion
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()
	ctx := context.Background()

	// Initialize Sentry
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "promptarchitect-api@" + releaseVersion, // Use embedded release version
			EnableTracing:    true,                                    // Enable tracing for spans
			TracesSampleRate: 1.0,                                     // 100% sampling for now, adjust based on volume
			EnableLogs:       true,                                    // Enable Sentry Logs feature
			Debug:            !cfg.IsProduction(),                     // Enable debug in non-prod
			BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
				// Filter out sensitive data
				if event.Request != nil {
					event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
				}
				return event
			},
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
			// Flush on shutdown
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		log.Println("⚠️  Sentry not configured (SENTRY_DSN not set)")
	}

	if strings.TrimSpace(cfg.APIKey()) == "" {
		log.Printf("⚠️  No API key for provider %q; generation requests will fail until one is set", cfg.LLMProvider)
	}

	if cfg.InsecureSessionSecret() {
		log.Println("⚠️  SESSION_SECRET not set in production; form cookies are signed with the public default key")
	}

	// Metrics sinks
	counters := metrics.NewCounters()
	sentryMetrics := metrics.NewSentryMetrics()
	cloudwatchMetrics := metrics.NewClient(ctx, cfg.Environment, cfg.CloudWatchEnabled)

	generator, err := services.NewPromptGenerator(ctx, services.Options{
		APIKey:       cfg.APIKey(),
		Model:        cfg.Model(),
		ProviderName: cfg.LLMProvider,
		Tracer:       observability.NewLangfuseClient(ctx, cfg),
		Recorder:     metrics.Fanout{counters, sentryMetrics, cloudwatchMetrics},
	})
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to create prompt generator:", err)
	}

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := api.SetupRouter(api.Dependencies{
		Generator:    generator,
		SessionStore: webhandlers.NewSessionStore(cfg),
		Counters:     counters,
		APIRecorders: []metrics.APIRecorder{sentryMetrics, cloudwatchMetrics},
	}, GetVersion())

	log.Printf("🚀 Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to start server:", err)
	}
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string)
	sensitiveKeys := map[string]bool{
		"authorization":  true,
		"cookie":         true,
		"x-api-key":      true,
		"x-goog-api-key": true,
	}

	for k, v := range headers {
		if sensitiveKeys[strings.ToLower(k)] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
