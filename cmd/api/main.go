package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/crmsuite/crm-service/internal/auth"
	"github.com/crmsuite/crm-service/internal/db"
	crmhttp "github.com/crmsuite/crm-service/internal/http"
	"github.com/crmsuite/crm-service/internal/messaging"
	"github.com/crmsuite/crm-service/internal/telemetry"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	if err := godotenv.Load(); err == nil {
		log.Println("✓ Loaded environment from .env")
	}

	ctx := context.Background()

	// OpenTelemetry
	otelCfg := telemetry.LoadConfig()
	provider, err := telemetry.InitProvider(ctx, otelCfg)
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

	metrics, err := telemetry.InitMetrics()
	if err != nil {
		log.Printf("Warning: metrics disabled: %v", err)
		metrics = nil
	}

	// Database
	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// RabbitMQ publisher, optional
	var publisher messaging.PublisherInterface
	if pub, err := messaging.NewPublisher(); err != nil {
		log.Printf("Warning: event publishing disabled: %v", err)
	} else {
		publisher = pub
		defer pub.Close()
	}

	// Authentication, optional
	var verifier *auth.Verifier
	authCfg := auth.LoadConfig()
	if authCfg.Enabled() {
		jwks, err := auth.NewJWKS(authCfg.JWKSURL, 0)
		if err != nil {
			log.Fatalf("Failed to load JWKS: %v", err)
		}
		defer jwks.Close()
		verifier = auth.NewVerifier(authCfg, jwks)
		log.Println("✓ Token verification enabled")
	} else {
		log.Println("Token verification disabled (AUTH_JWKS_URL not set)")
	}

	permsPath := os.Getenv("PERMISSIONS_FILE")
	if permsPath == "" {
		permsPath = "permissions.yml"
	}
	perms, err := auth.LoadPermissions(permsPath)
	if err != nil {
		log.Fatalf("Failed to load permissions from %s: %v", permsPath, err)
	}

	router := crmhttp.SetupRouter(database, verifier, perms, publisher, metrics)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      crmhttp.CORSMiddleware(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("crm-service listening on :%s", port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server failed: %v", err)
	}
}
