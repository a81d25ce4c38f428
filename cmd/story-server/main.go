// Command story-server exposes the aggregation engine over a thin HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/Sternrassler/hn-aggregator/internal/config"
	"github.com/Sternrassler/hn-aggregator/pkg/aggregator"
	"github.com/Sternrassler/hn-aggregator/pkg/hnclient"
	"github.com/Sternrassler/hn-aggregator/pkg/idcache"
	"github.com/Sternrassler/hn-aggregator/pkg/logging"
)

func main() {
	cfg := config.MustLoad("")

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Pretty,
		Output: os.Stderr,
	})

	upstream, err := hnclient.New(hnclient.Config{
		BaseURL:   cfg.Upstream.BaseURL,
		UserAgent: cfg.Upstream.UserAgent,
		Timeout:   cfg.Upstream.Timeout,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create upstream client")
	}

	var store idcache.Store = idcache.NewMemoryStore()
	if cfg.Cache.Backend == "redis" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Fatal().Err(err).Str("addr", cfg.Cache.RedisAddr).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()
		store = idcache.NewRedisStore(redisClient, cfg.Cache.TTL)
		logger.Info().Str("addr", cfg.Cache.RedisAddr).Msg("Using Redis ID cache store")
	}

	cache := idcache.New(store, upstream, cfg.Cache.TTL)

	engine := aggregator.New(cache, upstream, aggregator.Config{
		SearchScanLimit: cfg.Engine.SearchScanLimit,
		MaxConcurrency:  cfg.Engine.MaxConcurrency,
	})

	api := &storyAPI{
		engine:          engine,
		defaultPageSize: cfg.Engine.DefaultPageSize,
		logger:          logging.NewLogger("http"),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/health", healthHandler)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/api/stories", api.handleStories)
	r.Get("/api/stories/search", api.handleSearch)

	srv := &http.Server{
		Addr:    cfg.HTTP.Addr(),
		Handler: r,
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTP.Addr()).Str("env", cfg.Env).Msg("Starting story server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info().Msg("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
