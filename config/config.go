package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverMySQL  = "mysql"
	DriverMemory = "memory"
)

// Config holds runtime settings read from the environment (after an
// optional .env has been loaded by main).
type Config struct {
	Port string

	StoreDriver  string
	MySQLDSN     string
	SeedDemoData bool

	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	RoomTypeCacheTTL time.Duration

	AMQPURL         string
	EventQueue      string
	AMQPDialTimeout time.Duration

	CORSOrigins []string
	LogLevel    string
	LogFormat   string
}

func Load() (Config, error) {
	cfg := Config{
		Port:          envOrDefault("PORT", "8080"),
		StoreDriver:   strings.ToLower(envOrDefault("STORE_DRIVER", DriverMySQL)),
		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		AMQPURL:       firstEnv("RABBITMQ_URL", "AMQP_URL"),
		EventQueue:    envOrDefault("EVENT_QUEUE", "reservation.events"),
		CORSOrigins:   parseCorsOrigins(os.Getenv("CORS_ORIGINS")),
		LogLevel:      envOrDefault("LOG_LEVEL", "info"),
		LogFormat:     envOrDefault("LOG_FORMAT", "json"),
	}

	switch cfg.StoreDriver {
	case DriverMySQL:
		dsn, err := resolveMySQLDSN()
		if err != nil {
			return Config{}, fmt.Errorf("mysql dsn: %w", err)
		}
		cfg.MySQLDSN = dsn
	case DriverMemory:
	default:
		return Config{}, fmt.Errorf("STORE_DRIVER: unknown driver %q", cfg.StoreDriver)
	}

	var err error
	if cfg.SeedDemoData, err = strconv.ParseBool(envOrDefault("SEED_DEMO_DATA", "true")); err != nil {
		return Config{}, fmt.Errorf("SEED_DEMO_DATA: %w", err)
	}
	if cfg.RedisDB, err = strconv.Atoi(envOrDefault("REDIS_DB", "0")); err != nil {
		return Config{}, fmt.Errorf("REDIS_DB: %w", err)
	}
	if cfg.RoomTypeCacheTTL, err = time.ParseDuration(envOrDefault("ROOM_TYPE_CACHE_TTL", "5m")); err != nil {
		return Config{}, fmt.Errorf("ROOM_TYPE_CACHE_TTL: %w", err)
	}
	if cfg.AMQPDialTimeout, err = time.ParseDuration(envOrDefault("AMQP_DIAL_TIMEOUT", "2s")); err != nil {
		return Config{}, fmt.Errorf("AMQP_DIAL_TIMEOUT: %w", err)
	}
	return cfg, nil
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func parseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
