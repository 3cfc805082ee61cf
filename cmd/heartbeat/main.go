package main

import (
	"context"
	"log"
	"time"

	"github.com/WatchBeam/clock"
	"github.com/crmsuite/crm-service/internal/db"
	"github.com/crmsuite/crm-service/internal/heartbeat"
	"github.com/crmsuite/crm-service/internal/joblog"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	// The heartbeat must land even when the database is down, so a failed
	// connect only drops the data store check.
	var svc *heartbeat.Service
	appender := joblog.NewAppender(joblog.HeartbeatLogPath)

	database, err := db.Connect()
	if err != nil {
		log.Printf("Warning: data store check skipped: %v", err)
		svc = heartbeat.NewService(nil, appender, clock.C)
	} else {
		defer database.Close()
		svc = heartbeat.NewService(database, appender, clock.C)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := svc.Run(ctx); err != nil {
		log.Fatalf("Heartbeat failed: %v", err)
	}
}
