package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const devJWTSecret = "darshan-development-secret"

// Config holds environment-based settings
type Config struct {
	Environment   string
	ServerAddress string
	LogLevel      zerolog.Level
	JWTSecret     string

	SessionTTL    time.Duration
	SweepSchedule string

	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string

	LoginDelay    time.Duration
	StatusDelay   time.Duration
	AlertDelay    time.Duration
	SearchDelay   time.Duration
	ToastDuration time.Duration

	// DirectoryDriver is empty for the builtin dataset, otherwise
	// "postgres" or "sqlite3".
	DirectoryDriver string
	DirectoryDSN    string
	MigrationsPath  string
	DirectorySeed   bool

	RedisAddress  string
	RedisUsername string
	RedisPassword string

	MQTTBrokerURL string
}

func (c *Config) Development() bool { return c.Environment == EnvDevelopment }

// DemoAdmin reports whether the fixed demo credentials are in use.
func (c *Config) DemoAdmin() bool {
	return c.AdminPassword == "" && c.AdminPasswordHash == ""
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Environment:       getenv("APP_ENV", EnvProduction),
		ServerAddress:     getenv("SERVER_ADDRESS", ":8080"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		SweepSchedule:     getenv("SWEEP_SCHEDULE", "@every 1m"),
		AdminUsername:     getenv("ADMIN_USERNAME", "admin"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		DirectoryDriver:   os.Getenv("DIRECTORY_DRIVER"),
		DirectoryDSN:      os.Getenv("DIRECTORY_DSN"),
		MigrationsPath:    getenv("MIGRATIONS_PATH", "./migrations"),
		RedisAddress:      os.Getenv("REDIS_ADDRESS"),
		RedisUsername:     os.Getenv("REDIS_USERNAME"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		MQTTBrokerURL:     os.Getenv("MQTT_BROKER_URL"),
	}

	level, err := zerolog.ParseLevel(getenv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	durations := []struct {
		key  string
		def  time.Duration
		dest *time.Duration
	}{
		{"SESSION_TTL", 30 * time.Minute, &cfg.SessionTTL},
		{"LOGIN_DELAY", time.Second, &cfg.LoginDelay},
		{"STATUS_DELAY", 800 * time.Millisecond, &cfg.StatusDelay},
		{"ALERT_DELAY", time.Second, &cfg.AlertDelay},
		{"SEARCH_DELAY", 150 * time.Millisecond, &cfg.SearchDelay},
		{"TOAST_DURATION", 5 * time.Second, &cfg.ToastDuration},
	}
	for _, d := range durations {
		v, err := duration(d.key, d.def)
		if err != nil {
			return nil, err
		}
		*d.dest = v
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive")
	}
	if cfg.ToastDuration <= 0 {
		return nil, fmt.Errorf("TOAST_DURATION must be positive")
	}

	seed, err := strconv.ParseBool(getenv("DIRECTORY_SEED", "true"))
	if err != nil {
		return nil, fmt.Errorf("DIRECTORY_SEED: %w", err)
	}
	cfg.DirectorySeed = seed

	switch cfg.DirectoryDriver {
	case "":
	case "postgres", "sqlite3":
		if cfg.DirectoryDSN == "" {
			return nil, fmt.Errorf("DIRECTORY_DSN is required when DIRECTORY_DRIVER is %q", cfg.DirectoryDriver)
		}
	default:
		return nil, fmt.Errorf("DIRECTORY_DRIVER must be postgres or sqlite3, got %q", cfg.DirectoryDriver)
	}

	if cfg.JWTSecret == "" {
		if !cfg.Development() {
			return nil, fmt.Errorf("JWT_SECRET is required")
		}
		cfg.JWTSecret = devJWTSecret
	}
	if cfg.AdminPassword != "" && cfg.AdminPasswordHash != "" {
		return nil, fmt.Errorf("set only one of ADMIN_PASSWORD and ADMIN_PASSWORD_HASH")
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func duration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return d, nil
}
