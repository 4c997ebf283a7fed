package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port               string   `env:"PORT,                 default=8080"`
	Env                string   `env:"ENV,                  default=development"`
	LogLevel           string   `env:"LOG_LEVEL,            default=info"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS, default=*"`

	ShippingAPI  ShippingAPIConfig
	ExchangeRate ExchangeRateConfig
	RateLimit    RateLimitConfig
	Redis        RedisConfig
}

// ShippingAPIConfig configures the outbound rates API. Token is optional at
// load time: without it the service still starts and every shipping lookup
// reports a configuration error instead.
type ShippingAPIConfig struct {
	URL     string        `env:"SHIPPING_API_URL,     default=https://app.shipandco.com/api/v1/rates"`
	Token   string        `env:"SHIPPING_API_TOKEN"`
	Timeout time.Duration `env:"SHIPPING_API_TIMEOUT, default=10s"`
	RPS     float64       `env:"SHIPPING_API_RPS,     default=5"`
	Burst   int           `env:"SHIPPING_API_BURST,   default=10"`
}

type ExchangeRateConfig struct {
	URL      string        `env:"EXCHANGE_RATE_URL,      default=https://open.er-api.com/v6/latest/USD"`
	Timeout  time.Duration `env:"EXCHANGE_RATE_TIMEOUT,  default=5s"`
	Fallback float64       `env:"EXCHANGE_RATE_FALLBACK, default=145"`
}

type RateLimitConfig struct {
	Requests int           `env:"RATE_LIMIT_REQUESTS, default=60"`
	Window   time.Duration `env:"RATE_LIMIT_WINDOW,   default=1m"`
}

// RedisConfig is optional; an empty Addr selects the in-memory rate limiter.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// IsDevelopment reports whether the service runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from an arbitrary lookuper.
func LoadWith(l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
