package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	Tracker   TrackerConfig
	Dashboard DashboardConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// TrackerConfig points at the upstream Mantis REST API. The custom
// field IDs identify the status, GMUD and squad fields in the remote
// project; they vary per installation.
type TrackerConfig struct {
	BaseURL        string
	Token          string
	TimeoutSeconds int
	StatusFieldID  int
	GmudFieldID    int
	SquadFieldID   int
}

// DashboardConfig tunes the dashboard dataset behavior.
type DashboardConfig struct {
	PageSize                int
	RefreshSeconds          int
	APIKey                  string
	SnapshotCacheTTLSeconds int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "ticket-dashboard"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Tracker: TrackerConfig{
			BaseURL:        getEnv("TRACKER_BASE_URL", "http://gestaodetickets.intranet.bb.com.br"),
			Token:          os.Getenv("TRACKER_API_TOKEN"),
			TimeoutSeconds: getEnvAsInt("TRACKER_TIMEOUT_SECONDS", 15),
			StatusFieldID:  getEnvAsInt("TRACKER_STATUS_FIELD_ID", 70),
			GmudFieldID:    getEnvAsInt("TRACKER_GMUD_FIELD_ID", 71),
			SquadFieldID:   getEnvAsInt("TRACKER_SQUAD_FIELD_ID", 49),
		},
		Dashboard: DashboardConfig{
			PageSize:                getEnvAsInt("DASHBOARD_PAGE_SIZE", 20),
			RefreshSeconds:          getEnvAsInt("DASHBOARD_REFRESH_SECONDS", 60),
			APIKey:                  os.Getenv("DASHBOARD_API_KEY"),
			SnapshotCacheTTLSeconds: getEnvAsInt("SNAPSHOT_CACHE_TTL_SECONDS", 300),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the HTTP client timeout for tracker calls.
func (t TrackerConfig) Timeout() time.Duration {
	if t.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(t.TimeoutSeconds) * time.Second
}

// CacheTTL returns how long the latest snapshot stays cached.
func (d DashboardConfig) CacheTTL() time.Duration {
	if d.SnapshotCacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(d.SnapshotCacheTTLSeconds) * time.Second
}

// RefreshInterval returns the background refresh cadence.
func (d DashboardConfig) RefreshInterval() time.Duration {
	if d.RefreshSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(d.RefreshSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
