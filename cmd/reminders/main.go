package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/WatchBeam/clock"
	"github.com/crmsuite/crm-service/internal/db"
	"github.com/crmsuite/crm-service/internal/joblog"
	"github.com/crmsuite/crm-service/internal/order"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	log.Println("Order Reminders Job - Starting")

	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	repo := order.NewRepository(database, nil)
	reminderService := order.NewReminderService(
		repo,
		joblog.NewAppender(joblog.RemindersLogPath),
		clock.C,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	count, err := reminderService.Run(ctx)
	if err != nil {
		log.Fatalf("Reminders failed: %v", err)
	}

	log.Printf("✓ Recorded %d reminders", count)
	fmt.Println("Order reminders processed!")
}
