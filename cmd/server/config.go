package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the server configuration. Flags win over environment
// variables, which win over the defaults.
type Config struct {
	Port           int
	DBPath         string
	Periods        int
	Samples        int
	Workers        int
	Seed           uint64
	ReseedInterval time.Duration
}

// loadConfig reads .env (if any), the environment, and then args.
func loadConfig(args []string) (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[Config] No .env file found (using environment variables)")
	}

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	var cfg Config
	fs.IntVar(&cfg.Port, "port", envInt("REORDER_PORT", 8080), "HTTP server port")
	fs.StringVar(&cfg.DBPath, "db", envString("REORDER_DB", "reorder.db"), "SQLite database path (\":memory:\" for in-memory)")
	fs.IntVar(&cfg.Periods, "periods", envInt("REORDER_PERIODS", 12), "Planning horizon for generated scenarios")
	fs.IntVar(&cfg.Samples, "samples", envInt("REORDER_SAMPLES", 20), "Scenarios per generated dataset")
	fs.IntVar(&cfg.Workers, "workers", envInt("REORDER_WORKERS", 4), "Concurrent scenario computations per request")
	fs.Uint64Var(&cfg.Seed, "seed", envUint("REORDER_SEED", 1), "Base seed of the built-in datasets")
	fs.DurationVar(&cfg.ReseedInterval, "reseed-interval", envDuration("REORDER_RESEED_INTERVAL", time.Hour), "How often missing built-in datasets are recreated (0 disables)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch {
	case c.Port < 1 || c.Port > 65535:
		return fmt.Errorf("port out of range: %d", c.Port)
	case c.Periods < 1:
		return fmt.Errorf("periods must be at least 1, got %d", c.Periods)
	case c.Samples < 1:
		return fmt.Errorf("samples must be at least 1, got %d", c.Samples)
	case c.Workers < 1:
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[Config] Ignoring %s=%q: %v", key, v, err)
		return fallback
	}
	return n
}

func envUint(key string, fallback uint64) uint64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		log.Printf("[Config] Ignoring %s=%q: %v", key, v, err)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("[Config] Ignoring %s=%q: %v", key, v, err)
		return fallback
	}
	return d
}
