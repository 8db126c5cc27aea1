package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"donormatch/internal/donor/models"
	"donormatch/internal/shortage"
	platformstrings "donormatch/pkg/platform/strings"
)

// Config is everything the binaries read from the environment.
type Config struct {
	Server   Server
	Log      Log
	Shortage Shortage
	Refresh  Refresh
	Postgres Postgres
	Redis    RedisConfig
	Kafka    Kafka
	SQLite   SQLite
}

type Server struct {
	Addr string
}

type Log struct {
	Level  string // debug, info, warn, error
	Format string // json or text
}

type Shortage struct {
	Threshold int
	Overrides map[models.BloodGroup]int
}

// Thresholds converts the settings for the engine.
func (s Shortage) Thresholds() shortage.Thresholds {
	return shortage.Thresholds{Default: s.Threshold, Overrides: s.Overrides}
}

type Refresh struct {
	Interval time.Duration
}

type Postgres struct {
	URL string
}

// RedisConfig configures the active-booking store. An empty URL disables it.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BookingsKey  string
}

// Kafka configures shortage publishing. No brokers means log-only publishing.
type Kafka struct {
	Brokers []string
	Topic   string
}

type SQLite struct {
	Path string
}

// FromEnv builds a Config from DONORMATCH_* variables so main stays lean.
func FromEnv() (Config, error) {
	var errs []error
	cfg := Config{
		Server: Server{Addr: envOr("DONORMATCH_ADDR", ":8080")},
		Log: Log{
			Level:  strings.ToLower(envOr("DONORMATCH_LOG_LEVEL", "info")),
			Format: strings.ToLower(envOr("DONORMATCH_LOG_FORMAT", "json")),
		},
		Shortage: Shortage{
			Threshold: envInt("DONORMATCH_SHORTAGE_THRESHOLD", shortage.DefaultThreshold, &errs),
		},
		Refresh: Refresh{
			Interval: envDuration("DONORMATCH_REFRESH_INTERVAL", 5*time.Minute, &errs),
		},
		Postgres: Postgres{URL: os.Getenv("DONORMATCH_POSTGRES_URL")},
		Redis: RedisConfig{
			URL:          os.Getenv("DONORMATCH_REDIS_URL"),
			PoolSize:     envInt("DONORMATCH_REDIS_POOL_SIZE", 10, &errs),
			MinIdleConns: envInt("DONORMATCH_REDIS_MIN_IDLE_CONNS", 2, &errs),
			DialTimeout:  envDuration("DONORMATCH_REDIS_DIAL_TIMEOUT", 5*time.Second, &errs),
			ReadTimeout:  envDuration("DONORMATCH_REDIS_READ_TIMEOUT", 3*time.Second, &errs),
			WriteTimeout: envDuration("DONORMATCH_REDIS_WRITE_TIMEOUT", 3*time.Second, &errs),
			BookingsKey:  envOr("DONORMATCH_REDIS_BOOKINGS_KEY", "donormatch:bookings"),
		},
		Kafka: Kafka{
			Brokers: platformstrings.SplitList(os.Getenv("DONORMATCH_KAFKA_BROKERS")),
			Topic:   envOr("DONORMATCH_KAFKA_TOPIC", "donormatch.shortages"),
		},
		SQLite: SQLite{Path: envOr("DONORMATCH_SQLITE_PATH", "donormatch.db")},
	}

	if raw := os.Getenv("DONORMATCH_SHORTAGE_OVERRIDES"); raw != "" {
		overrides, err := shortage.ParseOverrides(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("DONORMATCH_SHORTAGE_OVERRIDES: %w", err))
		}
		cfg.Shortage.Overrides = overrides
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	var errs []error
	if err := c.Shortage.Thresholds().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Refresh.Interval <= 0 {
		errs = append(errs, fmt.Errorf("refresh interval must be positive, got %s", c.Refresh.Interval))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}
	if c.Redis.URL != "" && c.Redis.PoolSize <= 0 {
		errs = append(errs, fmt.Errorf("redis pool size must be positive, got %d", c.Redis.PoolSize))
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.Topic == "" {
		errs = append(errs, errors.New("kafka topic is required when brokers are set"))
	}
	return errors.Join(errs...)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int, errs *[]error) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}
