package main

import (
	"context"
	"directions-route-service/internal/adapters/cache"
	"directions-route-service/internal/adapters/directions"
	"directions-route-service/internal/adapters/events"
	"directions-route-service/internal/api"
	"directions-route-service/internal/config"
	"directions-route-service/internal/platform/db"
	"directions-route-service/internal/platform/obs"
	"directions-route-service/internal/ports"
	"directions-route-service/internal/services"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (Google, Postgres/Redis, Kafka) behind ports and starts the HTTP server.
func main() {
	dotenv := config.LoadDotenv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := obs.NewLogger(cfg.AppEnv, "directions-route-service")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if !dotenv {
		log.Info("no .env file found (using environment variables)")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		log.Fatal("GOOGLE_MAPS_API_KEY is required")
	}

	client := directions.NewGoogleDirectionsClient(log,
		directions.WithBaseURL(cfg.DirectionsBaseURL),
		directions.WithTimeout(cfg.DirectionsTimeout),
	)

	directionsCache, closeCache, err := openCache(cfg, log)
	if err != nil {
		log.Fatal("failed to open directions cache", zap.Error(err))
	}
	defer closeCache()

	var renderer ports.PathRenderer
	if len(cfg.KafkaBrokers) > 0 {
		kafkaRenderer := events.NewKafkaPathRenderer(cfg.KafkaBrokers, cfg.KafkaPathTopic, log)
		defer func() { _ = kafkaRenderer.Close() }()
		renderer = kafkaRenderer
		log.Info("publishing paths to kafka",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.KafkaPathTopic),
		)
	}

	repo := services.NewDirectionsRepository(client, directionsCache, log)
	builder := services.NewPathBuilder(renderer, log)
	facade := services.NewRouteFacade(repo, builder, services.FacadeConfig{
		APIKey:      cfg.APIKey,
		MaxInFlight: cfg.MaxInFlight,
	}, log)

	if cfg.AppEnv != config.DefaultAppEnv {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(facade, cfg.DefaultTravelMode, log)

	// Write timeout leaves room for one provider call at the configured timeout.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.DirectionsTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("HTTP server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down directions-route-service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}
	facade.Close()

	log.Info("directions-route-service stopped")
}

// openCache picks Postgres when DATABASE_URL is set, Redis when REDIS_ADDR
// is set, and no cache otherwise.
func openCache(cfg *config.Config, log *zap.Logger) (ports.DirectionsCache, func(), error) {
	switch {
	case cfg.DatabaseURL != "":
		conn, err := db.Open(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.InitSchema(conn); err != nil {
			_ = conn.Close()
			return nil, nil, err
		}
		log.Info("directions cache: postgres", zap.Duration("ttl", cfg.CacheTTL))
		return cache.NewSQLDirectionsCache(conn, cfg.CacheTTL, log), func() { _ = conn.Close() }, nil

	case cfg.RedisAddr != "":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("ping redis %q: %w", cfg.RedisAddr, err)
		}
		log.Info("directions cache: redis", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.CacheTTL))
		return cache.NewRedisDirectionsCache(rdb, cfg.CacheTTL, log), func() { _ = rdb.Close() }, nil

	default:
		log.Info("directions cache: disabled")
		return nil, func() {}, nil
	}
}
