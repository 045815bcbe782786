// Package main is the entry point for the scam-honeypot conversation service.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/scamhive/honeypot-service/internal/api/handlers"
	"github.com/scamhive/honeypot-service/internal/api/middleware"
	"github.com/scamhive/honeypot-service/internal/api/routes"
	"github.com/scamhive/honeypot-service/internal/config"
	"github.com/scamhive/honeypot-service/internal/core/collector"
	"github.com/scamhive/honeypot-service/internal/infrastructure/collector/logsink"
	"github.com/scamhive/honeypot-service/internal/infrastructure/collector/mongodb"
	"github.com/scamhive/honeypot-service/internal/infrastructure/collector/redisqueue"
	"github.com/scamhive/honeypot-service/internal/infrastructure/collector/webhook"
	"github.com/scamhive/honeypot-service/internal/pkg/metrics"
	"github.com/scamhive/honeypot-service/internal/pkg/retry"
	"github.com/scamhive/honeypot-service/internal/services/detector"
	"github.com/scamhive/honeypot-service/internal/services/engine"
	"github.com/scamhive/honeypot-service/internal/services/intel"
	"github.com/scamhive/honeypot-service/internal/services/notifier"
	"github.com/scamhive/honeypot-service/internal/services/reply"
	"github.com/scamhive/honeypot-service/internal/services/session"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	setupLogging(cfg.Log)

	ctx := context.Background()

	// Session store with background expiry sweeping
	store := session.NewStore(cfg.Engine.SessionTTL, log.Logger)

	m := metrics.New(func() float64 {
		return float64(store.Count())
	})

	// Collector sink using factory pattern
	sink, err := createCollectorSink(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize collector sink")
	}
	defer sink.Close()

	// Fire-and-forget report dispatch
	dispatcher := notifier.NewDispatcher(notifier.Config{
		Sink:        sink,
		Workers:     cfg.Notifier.Workers,
		BufferSize:  cfg.Notifier.BufferSize,
		MinMessages: cfg.Engine.MinMessagesForCallback,
		Recorder:    m,
		Logger:      log.Logger,
	})
	dispatcher.Start()

	// Conversation engine
	eng := engine.New(engine.Config{
		Store:      store,
		Detector:   detector.NewKeywordDetector(cfg.Engine.ConfidenceThreshold),
		Extractor:  intel.NewExtractor(),
		Replies:    reply.NewGenerator(),
		Dispatcher: dispatcher,
		Policy: session.Policy{
			MaxMessages:           cfg.Engine.MaxMessagesPerSession,
			TTL:                   cfg.Engine.SessionTTL,
			MinEngagementMessages: cfg.Engine.MinEngagementMessages,
			ConfidenceThreshold:   cfg.Engine.ConfidenceThreshold,
			MinIntelItems:         cfg.Engine.MinIntelItems,
		},
		Recorder: m,
		Logger:   log.Logger,
	})

	// Background expiry sweeper
	sweepCtx, stopSweeper := context.WithCancel(ctx)
	go store.RunSweeper(sweepCtx, cfg.Engine.SweepInterval)

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Setup router
	router := setupRouter(cfg, eng, store, sink, m)

	// Create HTTP server
	srv := &http.Server{
		Addr:    cfg.Server.Address(),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", cfg.Server.Address()).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	stopSweeper()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	// Drain pending report deliveries before exit
	dispatcher.Stop()

	log.Info().Msg("server exited")
}

// setupLogging configures the global zerolog logger.
func setupLogging(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// createCollectorSink creates a collector sink based on the configuration.
func createCollectorSink(ctx context.Context, cfg *config.Config) (collector.Sink, error) {
	sinkType := collector.Type(cfg.Collector.Type)

	// Without a callback URL the webhook sink degrades to log-only.
	if sinkType == collector.TypeWebhook && cfg.Collector.CallbackURL == "" {
		log.Warn().Msg("CALLBACK_URL not set, falling back to log collector")
		sinkType = collector.TypeLog
	}

	switch sinkType {
	case collector.TypeLog:
		return logsink.NewSink(log.Logger), nil
	case collector.TypeWebhook:
		return webhook.NewSink(webhook.Config{
			URL:     cfg.Collector.CallbackURL,
			Timeout: cfg.Collector.CallbackTimeout,
			Retry:   retry.DefaultConfig(),
		})
	case collector.TypeRedis:
		return redisqueue.NewSink(redisqueue.Config{
			Host:      cfg.Redis.Host,
			Port:      cfg.Redis.Port,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			QueueKey:  cfg.Redis.QueueKey,
			MaxLength: cfg.Redis.QueueMax,
		})
	case collector.TypeMongoDB:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return mongodb.NewSink(connectCtx, mongodb.Config{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
	default:
		log.Fatal().Str("type", cfg.Collector.Type).Msg("unsupported collector type")
		return nil, nil
	}
}

// setupRouter creates and configures the Gin router.
func setupRouter(cfg *config.Config, eng *engine.Engine, store *session.Store, sink collector.Sink, m *metrics.Metrics) *gin.Engine {
	router := gin.New()

	loggingMw := middleware.NewLoggingMiddleware()
	errorMw := middleware.NewErrorMiddleware()
	authMw := middleware.NewAuthMiddleware(cfg.Auth.APIKey, cfg.Auth.APIKeyHeader)

	routesCfg := &routes.Config{
		HoneypotHandler:    handlers.NewHoneypotHandler(eng),
		HealthHandler:      handlers.NewHealthHandler(store, sink),
		MaintenanceHandler: handlers.NewMaintenanceHandler(store),
		AuthMiddleware:     authMw,
		MetricsHandler:     m.Handler(),
	}

	routes.SetupWithMiddleware(router, routesCfg, loggingMw, errorMw)

	return router
}
