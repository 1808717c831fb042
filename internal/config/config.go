// Package config loads the service configuration once at process start.
// Nothing outside this package reads the environment; components receive
// the sections they need as plain values.
package config

import (
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the booking service.
type Config struct {
	Environment string
	LogLevel    string
	HTTP        HTTPConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	RateLimit   RateLimitConfig
	AMQP        AMQPConfig
}

// HTTPConfig configures the HTTP server and the request layer.
type HTTPConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration
	AllowedOrigins []string
}

// DatabaseConfig holds PostgreSQL connection and pool settings.
// URL, when set, takes precedence over the individual fields.
type DatabaseConfig struct {
	URL             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	AutoMigrate     bool
}

// DSN builds a libpq-compatible connection string.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// RedisConfig points at the Redis instance backing the rate limiter.
// An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RateLimitConfig defines the token bucket applied to write routes.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	Prefix         string
}

// AMQPConfig points at the broker receiving booking notifications.
// An empty URL disables publishing.
type AMQPConfig struct {
	URL   string
	Queue string
}

// Load reads configuration from environment variables.
// Outside production it first tries to load a .env file.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// A missing .env is fine: in containers everything comes from the environment.
	if env != "production" {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("warning: .env file could not be loaded: %v", err)
		}
	}

	l := loader{}
	cfg := &Config{
		Environment: env,
		LogLevel:    l.str("LOG_LEVEL", "info"),
		HTTP: HTTPConfig{
			Port:           l.str("PORT", "8080"),
			ReadTimeout:    l.dur("HTTP_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   l.dur("HTTP_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:    l.dur("HTTP_IDLE_TIMEOUT", 60*time.Second),
			RequestTimeout: l.dur("HTTP_REQUEST_TIMEOUT", 5*time.Second),
			AllowedOrigins: l.list("CORS_ALLOWED_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			Host:            l.str("DB_HOST", "localhost"),
			Port:            l.str("DB_PORT", "5432"),
			User:            l.str("DB_USER", "postgres"),
			Password:        l.str("DB_PASSWORD", "postgres"),
			Name:            l.str("DB_NAME", "ticket_booking"),
			SSLMode:         l.str("DB_SSLMODE", "disable"),
			MaxConns:        int32(l.intRange("DB_MAX_CONNS", 20, 1, math.MaxInt32)),
			MinConns:        int32(l.intRange("DB_MIN_CONNS", 2, 0, math.MaxInt32)),
			MaxConnLifetime: l.dur("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime: l.dur("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			AutoMigrate:     l.bool("DB_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       l.intRange("REDIS_DB", 0, 0, math.MaxInt32),
		},
		RateLimit: RateLimitConfig{
			Enabled:        l.bool("RATE_LIMIT_ENABLED", true),
			Capacity:       l.int("RATE_LIMIT_CAPACITY", 30),
			RefillTokens:   l.int("RATE_LIMIT_REFILL_TOKENS", 1),
			RefillInterval: l.dur("RATE_LIMIT_REFILL_INTERVAL", time.Second),
			TTL:            l.dur("RATE_LIMIT_TTL", 10*time.Minute),
			Prefix:         l.str("RATE_LIMIT_PREFIX", "rl"),
		},
		AMQP: AMQPConfig{
			URL:   os.Getenv("RABBITMQ_URL"),
			Queue: l.str("RABBITMQ_QUEUE", "booking.created"),
		},
	}
	if cfg.Database.MinConns > cfg.Database.MaxConns {
		l.errs = append(l.errs, fmt.Sprintf("DB_MIN_CONNS: %d exceeds DB_MAX_CONNS %d",
			cfg.Database.MinConns, cfg.Database.MaxConns))
	}
	if len(l.errs) > 0 {
		return nil, fmt.Errorf("load config: %s", strings.Join(l.errs, "; "))
	}

	if cfg.RateLimit.Capacity < 1 {
		cfg.RateLimit.Capacity = 1
	}
	if cfg.RateLimit.RefillTokens < 1 {
		cfg.RateLimit.RefillTokens = 1
	}
	if cfg.RateLimit.RefillInterval <= 0 {
		cfg.RateLimit.RefillInterval = time.Second
	}
	if minTTL := 5 * cfg.RateLimit.RefillInterval; cfg.RateLimit.TTL < minTTL {
		cfg.RateLimit.TTL = minTTL
	}
	return cfg, nil
}

// loader collects parse errors so Load can report every bad variable at once.
type loader struct {
	errs []string
}

func (l *loader) str(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (l *loader) int(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		l.errs = append(l.errs, fmt.Sprintf("%s: invalid integer %q", key, v))
		return fallback
	}
	return n
}

// intRange is int restricted to [lo, hi].
func (l *loader) intRange(key string, fallback, lo, hi int) int {
	n := l.int(key, fallback)
	if n < lo || n > hi {
		l.errs = append(l.errs, fmt.Sprintf("%s: %d out of range [%d, %d]", key, n, lo, hi))
		return fallback
	}
	return n
}

func (l *loader) dur(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		l.errs = append(l.errs, fmt.Sprintf("%s: invalid duration %q", key, v))
		return fallback
	}
	return d
}

func (l *loader) bool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		l.errs = append(l.errs, fmt.Sprintf("%s: invalid boolean %q", key, v))
		return fallback
	}
	return b
}

func (l *loader) list(key, fallback string) []string {
	var out []string
	for _, p := range strings.Split(l.str(key, fallback), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
