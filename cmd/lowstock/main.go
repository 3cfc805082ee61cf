package main

import (
	"context"
	"log"
	"time"

	"github.com/WatchBeam/clock"
	"github.com/crmsuite/crm-service/internal/db"
	"github.com/crmsuite/crm-service/internal/joblog"
	"github.com/crmsuite/crm-service/internal/messaging"
	"github.com/crmsuite/crm-service/internal/product"
	"github.com/crmsuite/crm-service/internal/telemetry"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	log.Println("Low Stock Restock Job - Starting")

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

	var metrics product.RestockMetricsRecorder
	if m, err := telemetry.InitMetrics(); err != nil {
		log.Printf("Warning: metrics disabled: %v", err)
	} else {
		metrics = m
	}

	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	var publisher messaging.PublisherInterface
	if pub, err := messaging.NewPublisher(); err != nil {
		log.Printf("Warning: event publishing disabled: %v", err)
	} else {
		publisher = pub
		defer pub.Close()
	}

	repo := product.NewRepository(database)
	restockService := product.NewRestockService(
		repo,
		joblog.NewAppender(joblog.LowStockLogPath),
		clock.C,
		publisher,
		metrics,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	count, err := restockService.Run(ctx)
	if err != nil {
		log.Fatalf("Restock failed: %v", err)
	}

	log.Printf("✓ Restock completed successfully: %d products updated", count)
	log.Println("Low Stock Restock Job - Finished")
}
