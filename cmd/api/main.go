package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/medvoice/scribe-backend/internal/adapters/cache"
	"github.com/medvoice/scribe-backend/internal/adapters/database"
	"github.com/medvoice/scribe-backend/internal/adapters/events"
	"github.com/medvoice/scribe-backend/internal/adapters/providers/summarization"
	"github.com/medvoice/scribe-backend/internal/adapters/providers/transcription"
	"github.com/medvoice/scribe-backend/internal/adapters/search"
	"github.com/medvoice/scribe-backend/internal/adapters/storage"
	"github.com/medvoice/scribe-backend/internal/api/handlers"
	"github.com/medvoice/scribe-backend/internal/api/routes"
	"github.com/medvoice/scribe-backend/internal/application/services"
	"github.com/medvoice/scribe-backend/internal/domain/entities"
	"github.com/medvoice/scribe-backend/internal/domain/providers"
	"github.com/medvoice/scribe-backend/internal/domain/repositories"
	"github.com/medvoice/scribe-backend/internal/infrastructure/clients/firestore"
	"github.com/medvoice/scribe-backend/internal/infrastructure/clients/postgres"
	"github.com/medvoice/scribe-backend/internal/infrastructure/clients/redis"
	"github.com/medvoice/scribe-backend/internal/infrastructure/clients/typesense"
	"github.com/medvoice/scribe-backend/internal/infrastructure/observability"
	"github.com/medvoice/scribe-backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize Firestore client (primary document store)
	fsClient, err := firestore.NewClient(ctx, &cfg.Firestore)
	if err != nil {
		log.Fatalf("Failed to initialize Firestore client: %v", err)
	}
	defer fsClient.Close()
	log.Println("Firestore client initialized successfully")

	// Initialize PostgreSQL client for the webhook delivery journal
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Printf("Warning: Failed to initialize PostgreSQL client: %v", err)
		// Continue without the journal - ingestion works without it
	} else {
		defer pgClient.Close()
		log.Println("PostgreSQL client initialized successfully")
	}

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		// Continue without Redis - the application can work without caching
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	// Initialize Typesense client
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Printf("Warning: Failed to initialize Typesense client: %v", err)
	} else {
		log.Println("Typesense client initialized successfully")
	}

	// Initialize adapters

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Create base visit adapter, wrapped with caching if Redis is available
	baseVisitAdapter := database.NewVisitAdapter(fsClient)
	var visitRepo repositories.VisitRepository
	if cacheProvider != nil {
		visitRepo = database.NewCachedVisitAdapter(baseVisitAdapter, cacheProvider, metrics)
		log.Println("Visit adapter wrapped with caching layer")
	} else {
		visitRepo = baseVisitAdapter
		log.Println("Visit adapter running without cache (Redis unavailable)")
	}

	reminderRepo := database.NewReminderAdapter(fsClient)
	retentionRepo := database.NewRetentionAdapter(fsClient)

	var journal repositories.WebhookJournal
	if pgClient != nil {
		journal = database.NewWebhookJournalAdapter(pgClient)
	}

	var searchRepo repositories.VisitSearchRepository
	if typesenseClient != nil {
		adapter := search.NewTypesenseAdapter(typesenseClient)
		// Ensure schema exists
		if err := adapter.EnsureCollection(ctx); err != nil {
			log.Printf("Warning: Failed to init Typesense schema: %v", err)
		}
		searchRepo = adapter
	}

	var blobStore providers.BlobStore
	if cfg.Storage.Bucket != "" {
		blobStore, err = storage.NewGCSAdapter(ctx, cfg.Storage.Bucket)
		if err != nil {
			log.Printf("Warning: Failed to initialize storage client: %v", err)
			blobStore = nil
		}
	} else {
		log.Println("Warning: AUDIO_BUCKET is not set; upload URLs and blob reclaim disabled")
	}

	// Initialize event bus for lifecycle notifications
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Println("Event bus initialized successfully")
	} else {
		log.Println("Event bus disabled (Redis not available)")
	}

	// Initialize external providers
	transcriptionProvider := transcription.NewTranscriptionProvider(&cfg.Transcription)
	summarizationProvider := summarization.NewSummarizationProvider(&cfg.OpenAI)

	// Initialize services
	summaryService := services.NewSummaryService(visitRepo, summarizationProvider, searchRepo, eventBus)
	webhookService := services.NewWebhookService(visitRepo, journal, summaryService, eventBus, metrics)
	retryService := services.NewRetryService(
		visitRepo,
		transcriptionProvider,
		summaryService,
		eventBus,
		metrics,
		cfg.Processing.RetryThrottle,
	)
	visitService := services.NewVisitService(visitRepo, blobStore, searchRepo, cfg.Storage.UploadURLExpiry)
	reminderService := services.NewReminderService(reminderRepo)
	retentionService := services.NewRetentionService(retentionRepo, blobStore, searchRepo, metrics)

	// Initialize handlers
	if len(cfg.Processing.PurgeCollections) == 0 {
		cfg.Processing.PurgeCollections = entities.SoftDeletableCollections()
	}

	visitHandler := handlers.NewVisitHandler(visitService, retryService)
	reminderHandler := handlers.NewReminderHandler(reminderService)
	webhookHandler := handlers.NewTranscriptionWebhookHandler(webhookService)
	purgeHandler := handlers.NewPurgeHandler(retentionService, cfg.Processing)

	// Set up router
	router := routes.NewRouter(
		visitHandler,
		reminderHandler,
		webhookHandler,
		purgeHandler,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	// Close event bus
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Printf("Error closing event bus: %v", err)
		}
	}

	log.Println("Server stopped")
}
