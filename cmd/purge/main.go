package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/medvoice/scribe-backend/internal/adapters/database"
	"github.com/medvoice/scribe-backend/internal/adapters/search"
	"github.com/medvoice/scribe-backend/internal/adapters/storage"
	"github.com/medvoice/scribe-backend/internal/application/services"
	"github.com/medvoice/scribe-backend/internal/domain/entities"
	"github.com/medvoice/scribe-backend/internal/domain/providers"
	"github.com/medvoice/scribe-backend/internal/domain/repositories"
	"github.com/medvoice/scribe-backend/internal/infrastructure/clients/firestore"
	"github.com/medvoice/scribe-backend/internal/infrastructure/clients/typesense"
	"github.com/medvoice/scribe-backend/internal/infrastructure/observability"
	"github.com/medvoice/scribe-backend/pkg/config"
)

func main() {
	var retentionDays int
	var pageSize int
	var collections string
	var dryRun bool

	flag.IntVar(&retentionDays, "retention-days", 0, "Retention window in days (0 uses configuration)")
	flag.IntVar(&pageSize, "page-size", 0, "Records per pass per collection (0 uses configuration)")
	flag.StringVar(&collections, "collections", "", "Comma-separated collections to purge (empty uses configuration)")
	flag.BoolVar(&dryRun, "dry-run", false, "Report expired counts without deleting")
	flag.Parse()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	observability.InitLogger("scribe-purge", cfg.Env)

	if retentionDays == 0 {
		retentionDays = cfg.Processing.RetentionDays
	}
	if pageSize == 0 {
		pageSize = cfg.Processing.PurgePageSize
	}
	targets := cfg.Processing.PurgeCollections
	if collections != "" {
		targets = strings.Split(collections, ",")
	}
	if len(targets) == 0 {
		targets = entities.SoftDeletableCollections()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Setup Firestore
	fsClient, err := firestore.NewClient(ctx, &cfg.Firestore)
	if err != nil {
		log.Fatalf("Failed to connect to Firestore: %v", err)
	}
	defer fsClient.Close()

	retentionRepo := database.NewRetentionAdapter(fsClient)

	var blobStore providers.BlobStore
	if cfg.Storage.Bucket != "" {
		blobStore, err = storage.NewGCSAdapter(ctx, cfg.Storage.Bucket)
		if err != nil {
			log.Printf("Warning: Failed to initialize storage client: %v", err)
			blobStore = nil
		}
	}

	var searchRepo repositories.VisitSearchRepository
	if typesenseClient, err := typesense.NewClient(&cfg.Typesense); err != nil {
		log.Printf("Warning: Failed to initialize Typesense client: %v", err)
	} else {
		searchRepo = search.NewTypesenseAdapter(typesenseClient)
	}

	if dryRun {
		report(ctx, retentionRepo, retentionDays, pageSize, targets)
		return
	}

	service := services.NewRetentionService(retentionRepo, blobStore, searchRepo, nil)

	totalPurged := 0
	passes := 0
	start := time.Now()
	for {
		result, err := service.Purge(ctx, services.PurgeOptions{
			RetentionDays: retentionDays,
			PageSize:      pageSize,
			Collections:   targets,
		})
		if err != nil {
			log.Fatalf("Purge pass failed: %v", err)
		}

		totalPurged += result.TotalPurged
		passes++
		log.Printf("Pass %d: purged %d records (has more: %v)", passes, result.TotalPurged, result.HasMore)

		if !result.HasMore {
			break
		}
		if result.TotalPurged == 0 {
			log.Println("Pass made no progress; stopping")
			break
		}
		if ctx.Err() != nil {
			log.Println("Interrupted; stopping between passes")
			break
		}
	}

	log.Printf("Done: purged %d records in %d passes (%s)", totalPurged, passes, time.Since(start).Round(time.Millisecond))
}

// report counts expired records per collection without deleting them
func report(ctx context.Context, repo repositories.RetentionRepository, retentionDays, pageSize int, targets []string) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	for _, collection := range targets {
		expired, err := repo.QueryExpired(ctx, collection, cutoff, pageSize)
		if err != nil {
			log.Printf("%s: query failed: %v", collection, err)
			continue
		}
		suffix := ""
		if len(expired) == pageSize {
			suffix = "+"
		}
		log.Printf("%s: %d%s expired records", collection, len(expired), suffix)
	}
}
