package main

import (
	"context"
	"log"
	"time"

	"github.com/WatchBeam/clock"
	"github.com/crmsuite/crm-service/internal/db"
	"github.com/crmsuite/crm-service/internal/joblog"
	"github.com/crmsuite/crm-service/internal/report"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	log.Println("CRM Report Job - Starting")

	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	reportService := report.NewService(
		report.NewRepository(database),
		joblog.NewAppender(joblog.ReportLogPath),
		clock.C,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	totals, err := reportService.Run(ctx)
	if err != nil {
		log.Fatalf("Report failed: %v", err)
	}

	log.Printf("✓ Report written: %d customers, %d orders, %s revenue",
		totals.Customers, totals.Orders, totals.TotalRevenue.String())
	log.Println("CRM Report Job - Finished")
}
