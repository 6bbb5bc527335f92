// Package config builds runtime configuration from environment variables so
// main stays lean. All variables are prefixed PIDKIT_.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config is the full runtime configuration.
type Config struct {
	Server   Server
	Classify Classify
	Postgres Postgres
	Redis    Redis
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	OpsAddr         string
	AdminToken      string
	ShutdownTimeout time.Duration
}

// Classify tunes the classification service.
type Classify struct {
	BatchLimit int
	CacheTTL   time.Duration
}

// Postgres configures the optional classification history store. History is
// disabled when the DSN is empty.
type Postgres struct {
	DSN string
}

// Redis configures the optional classification cache. The cache is disabled
// when the URL is empty.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr:            getEnv("PIDKIT_ADDR", ":8080"),
			OpsAddr:         getEnv("PIDKIT_OPS_ADDR", ":9090"),
			AdminToken:      os.Getenv("PIDKIT_ADMIN_TOKEN"),
			ShutdownTimeout: getEnvDuration("PIDKIT_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Classify: Classify{
			BatchLimit: getEnvInt("PIDKIT_BATCH_LIMIT", 500),
			CacheTTL:   getEnvDuration("PIDKIT_CACHE_TTL", 15*time.Minute),
		},
		Postgres: Postgres{
			DSN: os.Getenv("PIDKIT_POSTGRES_DSN"),
		},
		Redis: Redis{
			URL:          os.Getenv("PIDKIT_REDIS_URL"),
			PoolSize:     getEnvInt("PIDKIT_REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvInt("PIDKIT_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getEnvDuration("PIDKIT_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getEnvDuration("PIDKIT_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getEnvDuration("PIDKIT_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
