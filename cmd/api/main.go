package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/pawspoint/clinic-assistant/internal/api/router"
	"github.com/pawspoint/clinic-assistant/internal/assistant"
	"github.com/pawspoint/clinic-assistant/internal/catalog"
	appconfig "github.com/pawspoint/clinic-assistant/internal/config"
	"github.com/pawspoint/clinic-assistant/internal/observability/metrics"
	"github.com/pawspoint/clinic-assistant/internal/store"
	"github.com/pawspoint/clinic-assistant/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting clinic-assistant",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	redisOpts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	clinicStore := store.NewPostgres(pool, cfg.StoreTimeout)
	catalogClient := catalog.NewClient(cfg.CatalogBaseURL, logger, catalog.WithTimeout(cfg.CatalogTimeout))
	slotStore := assistant.NewRedisSlotStore(redisClient, cfg.SlotTTL)
	turnMetrics := metrics.NewTurnMetrics(prometheus.DefaultRegisterer)

	engine := assistant.NewEngine(clinicStore, catalogClient, logger,
		assistant.WithLinkBase(cfg.LinkBaseURL),
		assistant.WithMetrics(turnMetrics),
	)
	assistantHandler := assistant.NewHandler(engine, slotStore, logger)

	r := router.New(&router.Config{
		Logger:           logger,
		AssistantHandler: assistantHandler,
		MetricsHandler:   promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
	logger.Info("server stopped")
}
