// @title        Crossborder Pricing API
// @version      1.0
// @description  Shipping rates from Japan to the US and the UK, and sell-price calculation for cross-border sellers.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	_ "github.com/99minutos/crossborder-pricing/docs"
	"github.com/99minutos/crossborder-pricing/internal/api"
	"github.com/99minutos/crossborder-pricing/internal/api/handler"
	"github.com/99minutos/crossborder-pricing/internal/core/ports"
	"github.com/99minutos/crossborder-pricing/internal/core/service"
	"github.com/99minutos/crossborder-pricing/internal/infrastructure/cache"
	"github.com/99minutos/crossborder-pricing/internal/infrastructure/db/redis"
	"github.com/99minutos/crossborder-pricing/internal/infrastructure/exchangerate"
	"github.com/99minutos/crossborder-pricing/internal/infrastructure/ratelimit"
	"github.com/99minutos/crossborder-pricing/internal/infrastructure/shipandco"
	"github.com/99minutos/crossborder-pricing/internal/pkg/config"
	"github.com/99minutos/crossborder-pricing/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "crossborder-pricing",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.ShippingAPI.Token == "" {
		log.Warn().Msg("SHIPPING_API_TOKEN is not set; shipping lookups will report a configuration error")
	}

	checks := map[string]handler.DependencyCheck{}
	limiter, rdb := newRateLimiter(ctx, cfg, log)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
		checks["redis"] = redis.PingCheck(rdb)
	}

	ratesClient := shipandco.NewClient(shipandco.Config{
		URL:     cfg.ShippingAPI.URL,
		Token:   cfg.ShippingAPI.Token,
		Timeout: cfg.ShippingAPI.Timeout,
		RPS:     cfg.ShippingAPI.RPS,
		Burst:   cfg.ShippingAPI.Burst,
	}, log)
	fetcher := service.NewRateFetcher(ratesClient, cache.NewRatesCache(), log)
	shipping := service.NewShippingService(fetcher, log)

	fx := exchangerate.NewClient(cfg.ExchangeRate.URL, cfg.ExchangeRate.Timeout, log)
	pricing := service.NewPricingService(fx, cfg.ExchangeRate.Fallback, log)

	e := api.NewRouter(api.Deps{
		Shipping:                shipping,
		Pricing:                 pricing,
		RateLimiter:             limiter,
		HealthChecks:            checks,
		ShippingTokenConfigured: cfg.ShippingAPI.Token != "",
		CORSAllowedOrigins:      cfg.CORSAllowedOrigins,
		Log:                     log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", srv.Addr).Msg("listen failed")
	}

	log.Info().
		Str("port", cfg.Port).
		Str("env", cfg.Env).
		Bool("redis_rate_limit", rdb != nil).
		Msg("server starting")

	if err := serve(ctx, srv, ln, log); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
	log.Info().Msg("server stopped")
}

// serve runs srv on ln until ctx is cancelled, then shuts srv down and waits
// for in-flight requests up to shutdownTimeout. A clean shutdown returns nil.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, log zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newRateLimiter prefers Redis when configured and reachable, otherwise falls
// back to the in-process limiter. The returned client is nil in that case.
func newRateLimiter(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.RateLimiter, *goredis.Client) {
	requests, window := cfg.RateLimit.Requests, cfg.RateLimit.Window

	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err == nil {
			return ratelimit.NewRedisLimiter(rdb, requests, window), rdb
		}
		log.Error().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, using in-memory rate limiter")
	}

	mem := ratelimit.NewMemoryLimiter(requests, window)
	mem.StartJanitor(ctx)
	return mem, nil
}
