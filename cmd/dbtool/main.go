package main

import (
	"context"
	"directions-route-service/internal/adapters/cache"
	"directions-route-service/internal/config"
	"directions-route-service/internal/platform/db"
	"directions-route-service/internal/platform/obs"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// dbtool prepares the Postgres directions cache and optionally drops
// entries older than CACHE_TTL.
func main() {
	purge := flag.Bool("purge", false, "delete cache entries older than CACHE_TTL after initializing the schema")
	flag.Parse()

	if !config.LoadDotenv() {
		fmt.Fprintln(os.Stderr, "No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := obs.NewLogger(cfg.AppEnv, "dbtool")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()

	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer conn.Close()

	log.Info("initializing database schema...")
	if err := db.InitSchema(conn); err != nil {
		log.Fatal("schema initialization failed", zap.Error(err))
	}
	log.Info("schema ready")

	if !*purge {
		return
	}

	removed, err := cache.NewSQLDirectionsCache(conn, cfg.CacheTTL, log).Purge(ctx)
	if err != nil {
		log.Fatal("purge failed", zap.Error(err))
	}
	log.Info("purge complete", zap.Int64("removed", removed), zap.Duration("ttl", cfg.CacheTTL))
}
