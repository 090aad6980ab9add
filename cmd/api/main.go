package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ckd-predict/portal-service/internal/catalog"
	"github.com/ckd-predict/portal-service/internal/db"
	httpserver "github.com/ckd-predict/portal-service/internal/http"
	"github.com/ckd-predict/portal-service/internal/messaging"
	"github.com/ckd-predict/portal-service/internal/session"
	"github.com/ckd-predict/portal-service/internal/telemetry"
	"github.com/ckd-predict/portal-service/internal/upstream"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	ctx := context.Background()

	// OpenTelemetry; the service runs fine without a collector
	provider, err := telemetry.InitProvider(ctx, telemetry.LoadConfig())
	if err != nil {
		log.Printf("Warning: failed to initialize telemetry: %v", err)
	}

	metrics, err := telemetry.InitMetrics()
	if err != nil {
		log.Printf("Warning: failed to initialize metrics: %v", err)
		metrics = nil
	}

	// Session store: Postgres when configured, in-memory otherwise
	var store session.Store
	database, err := db.Connect()
	if err != nil {
		log.Printf("Database unavailable (%v), using in-memory session store", err)
		store = session.NewMemoryStore()
	} else {
		defer database.Close()
		if err := db.EnsureSchema(database); err != nil {
			log.Fatalf("Failed to ensure database schema: %v", err)
		}
		store = session.NewPostgresStore(database)
	}

	issuer := session.NewIssuer(session.LoadConfig())

	// Event publishing is optional; the nil publisher skips events
	publisher, err := messaging.NewPublisher()
	if err != nil {
		log.Printf("Warning: RabbitMQ unavailable, events disabled: %v", err)
	} else {
		defer publisher.Close()
	}

	cat := catalog.Default()
	if path := os.Getenv("CLINICAL_CATALOG_PATH"); path != "" {
		cat, err = catalog.Load(path)
		if err != nil {
			log.Fatalf("Failed to load clinical catalog from %s: %v", path, err)
		}
		log.Printf("Loaded clinical catalog from %s", path)
	}

	var upstreamMetrics upstream.MetricsRecorder
	if metrics != nil {
		upstreamMetrics = metrics
	}
	api := upstream.NewInstrumentedClient(upstream.NewClient(upstream.LoadConfig()), upstreamMetrics)

	router := httpserver.SetupRouter(api, store, issuer, publisher, metrics, cat)
	handler := httpserver.CORSMiddleware(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: handler,
	}

	go func() {
		log.Printf("ckd-portal-service listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}
	if provider != nil {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during telemetry shutdown: %v", err)
		}
	}

	log.Println("Server stopped")
}
