/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the reorder schedule server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env and parse flags
  2. Initialize SQLite catalog
  3. Seed the built-in datasets when absent
  4. Create engine and API handler
  5. Configure HTTP router
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS (environment variable in brackets):
  -port             HTTP server port (default: 8080) [REORDER_PORT]
  -db               SQLite database path (default: reorder.db) [REORDER_DB]
                    Use ":memory:" for in-memory database
  -periods          Planning horizon of generated data (default: 12) [REORDER_PERIODS]
  -samples          Scenarios per generated dataset (default: 20) [REORDER_SAMPLES]
  -workers          Concurrent computations per request (default: 4) [REORDER_WORKERS]
  -seed             Base seed of built-in datasets (default: 1) [REORDER_SEED]
  -reseed-interval  Check interval for missing datasets (default: 1h) [REORDER_RESEED_INTERVAL]

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the seeder
  4. Close database connection

EXAMPLES:
  # Run with file database
  ./server -db="./data/reorder.db"

  # Run with in-memory database and a 26 week horizon
  ./server -db=":memory:" -periods=26

SEE ALSO:
  - config.go: Flag and environment parsing
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/reorder-engine/api"
	"github.com/warp/reorder-engine/reorder"
	"github.com/warp/reorder-engine/store/sqlite"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize store
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Built-in datasets
	seeder := api.NewDatasetSeeder(store, cfg.Periods, cfg.Samples, cfg.Seed)
	seeder.CheckInterval = cfg.ReseedInterval
	if _, err := seeder.Seed(context.Background()); err != nil {
		log.Fatalf("Failed to seed datasets: %v", err)
	}
	seeder.Start()
	defer seeder.Stop()

	// Initialize handler
	engine := reorder.NewEngine(cfg.Periods)
	handler := api.NewHandler(store, engine)
	handler.Seeder = seeder
	handler.Samples = cfg.Samples
	handler.Workers = cfg.Workers

	// Create router
	router := api.NewRouter(handler)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("[Server] Starting on http://localhost:%d (horizon %d, %d workers)", cfg.Port, cfg.Periods, cfg.Workers)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[Server] Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[Server] Forced to shutdown: %v", err)
	}

	log.Println("[Server] Stopped")
}
