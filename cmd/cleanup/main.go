package main

import (
	"context"
	"log"
	"time"

	"github.com/WatchBeam/clock"
	"github.com/crmsuite/crm-service/internal/customer"
	"github.com/crmsuite/crm-service/internal/db"
	"github.com/crmsuite/crm-service/internal/joblog"
	"github.com/crmsuite/crm-service/internal/messaging"
	"github.com/crmsuite/crm-service/internal/telemetry"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	log.Println("Customer Cleanup Job - Starting")
	log.Println("Retention Policy: 365 days without orders")

	// Telemetry is best-effort for this job
	otelCfg := telemetry.LoadConfig()
	provider, err := telemetry.InitProvider(context.Background(), otelCfg)
	if err != nil {
		log.Printf("Warning: telemetry disabled: %v", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := provider.Shutdown(shutdownCtx); err != nil {
				log.Printf("Warning: telemetry shutdown: %v", err)
			}
		}()
	}

	var metrics customer.CleanupMetricsRecorder
	if m, err := telemetry.InitMetrics(); err != nil {
		log.Printf("Warning: metrics disabled: %v", err)
	} else {
		metrics = m
	}

	// Connect to database
	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Event publishing is best-effort for this job
	var publisher messaging.PublisherInterface
	if pub, err := messaging.NewPublisher(); err != nil {
		log.Printf("Warning: event publishing disabled: %v", err)
	} else {
		publisher = pub
		defer pub.Close()
	}

	repo := customer.NewRepository(database, publisher)
	cleanupService := customer.NewCleanupService(
		repo,
		joblog.NewAppender(joblog.CleanupLogPath),
		clock.C,
		publisher,
		metrics,
	)

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// Check how many customers are eligible for cleanup
	count, err := cleanupService.CountEligible(ctx)
	if err != nil {
		log.Fatalf("Failed to count inactive customers: %v", err)
	}

	log.Printf("Found %d customers eligible for deletion", count)

	// A zero count still runs so the log records the outcome
	deletedCount, err := cleanupService.Run(ctx)
	if err != nil {
		log.Fatalf("Cleanup failed: %v", err)
	}

	log.Printf("✓ Cleanup completed successfully: %d inactive customers deleted", deletedCount)
	log.Println("Cleanup Job - Finished")
}
