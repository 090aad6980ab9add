package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/ckd-predict/portal-service/internal/db"
	"github.com/ckd-predict/portal-service/internal/session"
)

func main() {
	log.Println("Session Cleanup Job - Starting")

	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	store := session.NewPostgresStore(database)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	count, err := store.CountExpired(ctx)
	if err != nil {
		log.Fatalf("Failed to count expired sessions: %v", err)
	}

	log.Printf("Found %d expired sessions eligible for deletion", count)

	if count == 0 {
		log.Println("No cleanup needed. Exiting.")
		os.Exit(0)
	}

	deleted, err := store.PurgeExpired(ctx)
	if err != nil {
		log.Fatalf("Cleanup failed: %v", err)
	}

	log.Printf("✓ Cleanup completed successfully: %d sessions deleted", deleted)
	log.Println("Cleanup Job - Finished")
}
