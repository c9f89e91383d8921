package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Snapshot SnapshotConfig
	Session  SessionConfig
	Redis    RedisConfig
	Planner  PlannerConfig
	Log      LogConfig
	Metrics  MetricsConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Driver   string // sqlite | postgres
	Path     string
	URL      string
	SeedPath string
}

type SnapshotConfig struct {
	Backend string // db | redis
	TTL     time.Duration
}

type SessionConfig struct {
	IdleTimeout   time.Duration
	SweepInterval time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PlannerConfig struct {
	DistanceMetric string
	Buckets        string
	RandomSeed     int64
}

type LogConfig struct {
	Level string
}

type MetricsConfig struct {
	Enabled   bool
	Namespace string
}

const (
	DriverSqlite   = "sqlite"
	DriverPostgres = "postgres"

	BackendDB    = "db"
	BackendRedis = "redis"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", DriverSqlite)
	v.SetDefault("DB_PATH", "data/app.db")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("SEED_PATH", "data/seeds/catalog.json")
	v.SetDefault("SNAPSHOT_BACKEND", BackendDB)
	v.SetDefault("SNAPSHOT_TTL", "0s")
	v.SetDefault("SESSION_IDLE_TIMEOUT", "30m")
	v.SetDefault("SESSION_SWEEP_INTERVAL", "1m")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("DISTANCE_METRIC", "planar")
	v.SetDefault("AUTOPOPULATE_BUCKETS", "stale")
	v.SetDefault("RANDOM_SEED", 0)
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("METRICS_NAMESPACE", "trip_planner")
}

// Load reads the optional .env file and the process environment.
// Environment variables win over .env entries.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("PORT"),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(strings.TrimSpace(v.GetString("DB_DRIVER"))),
			Path:     v.GetString("DB_PATH"),
			URL:      v.GetString("DATABASE_URL"),
			SeedPath: v.GetString("SEED_PATH"),
		},
		Snapshot: SnapshotConfig{
			Backend: strings.ToLower(strings.TrimSpace(v.GetString("SNAPSHOT_BACKEND"))),
			TTL:     v.GetDuration("SNAPSHOT_TTL"),
		},
		Session: SessionConfig{
			IdleTimeout:   v.GetDuration("SESSION_IDLE_TIMEOUT"),
			SweepInterval: v.GetDuration("SESSION_SWEEP_INTERVAL"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Planner: PlannerConfig{
			DistanceMetric: v.GetString("DISTANCE_METRIC"),
			Buckets:        v.GetString("AUTOPOPULATE_BUCKETS"),
			RandomSeed:     v.GetInt64("RANDOM_SEED"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Metrics: MetricsConfig{
			Enabled:   v.GetBool("METRICS_ENABLED"),
			Namespace: v.GetString("METRICS_NAMESPACE"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverSqlite:
		if strings.TrimSpace(c.Database.Path) == "" {
			return fmt.Errorf("config: DB_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if strings.TrimSpace(c.Database.URL) == "" {
			return fmt.Errorf("config: DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("config: unknown DB_DRIVER %q", c.Database.Driver)
	}

	switch c.Snapshot.Backend {
	case BackendDB, BackendRedis:
	default:
		return fmt.Errorf("config: unknown SNAPSHOT_BACKEND %q", c.Snapshot.Backend)
	}

	if c.Snapshot.TTL < 0 {
		return fmt.Errorf("config: SNAPSHOT_TTL must not be negative")
	}
	if c.Session.IdleTimeout <= 0 {
		return fmt.Errorf("config: SESSION_IDLE_TIMEOUT must be positive")
	}
	if c.Session.SweepInterval <= 0 {
		return fmt.Errorf("config: SESSION_SWEEP_INTERVAL must be positive")
	}
	return nil
}

// SessionIdle is how long an unused trip stays in memory. It never exceeds
// the snapshot TTL, so a trip expired in the store is not served from memory.
func (c *Config) SessionIdle() time.Duration {
	if c.Snapshot.TTL > 0 && c.Snapshot.TTL < c.Session.IdleTimeout {
		return c.Snapshot.TTL
	}
	return c.Session.IdleTimeout
}

func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

// Get returns the environment value of key, or fallback when unset or empty.
func Get(key, fallback string) string {
	v := viper.New()
	v.AutomaticEnv()
	if s := v.GetString(key); s != "" {
		return s
	}
	return fallback
}
