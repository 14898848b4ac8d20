package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates all runtime settings required by the engine.
type Config struct {
	AppName string
	HTTP    HTTPConfig
	Store   StoreConfig
	Engine  EngineConfig
	Context ContextConfig
	Logger  LoggerConfig
}

type HTTPConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type StoreConfig struct {
	// Path of the bbolt file holding all persisted state.
	Path string
	// MonitorInterval is how often store health is sampled.
	MonitorInterval time.Duration
	// SnapshotSpec is the cron expression for the daily safety snapshot.
	SnapshotSpec string
	// SchemaVersion is the running schema version marker.
	SchemaVersion string
}

type EngineConfig struct {
	// LookaheadDays is how many days before its due date a protocol may
	// appear in the deck.
	LookaheadDays int
	// ExchangeRate is the initial display-units-per-stored-unit rate,
	// used until the user configures one.
	ExchangeRate float64
}

type ContextConfig struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// SchemaVersion is bumped whenever the persisted layout changes shape.
const SchemaVersion = "2"

// Load reads configuration from environment variables (optionally .env)
// and applies defaults so the engine can boot with no configuration at all.
func Load() (*Config, error) {
	// Do not overwrite already-set environment variables.
	if envMap, err := godotenv.Read(); err == nil {
		for k, v := range envMap {
			if os.Getenv(k) == "" {
				os.Setenv(k, v)
			}
		}
	}

	storePath := getEnv("QD_STORE_PATH", "")
	if storePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		storePath = filepath.Join(home, ".questdeck", "state.db")
	}

	cfg := &Config{
		AppName: getEnv("QD_APP_NAME", "questdeck"),
		HTTP: HTTPConfig{
			Host:         getEnv("QD_HTTP_HOST", "127.0.0.1"),
			Port:         getEnv("QD_HTTP_PORT", "8710"),
			ReadTimeout:  getDuration("QD_HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("QD_HTTP_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("QD_HTTP_IDLE_TIMEOUT", time.Minute),
		},
		Store: StoreConfig{
			Path:            storePath,
			MonitorInterval: getDuration("QD_STORE_MONITOR_INTERVAL", 30*time.Second),
			SnapshotSpec:    getEnv("QD_SNAPSHOT_SPEC", "@daily"),
			SchemaVersion:   getEnv("QD_SCHEMA_VERSION", SchemaVersion),
		},
		Engine: EngineConfig{
			LookaheadDays: getInt("QD_LOOKAHEAD_DAYS", 0),
			ExchangeRate:  getFloat("QD_EXCHANGE_RATE", 1.0),
		},
		Context: ContextConfig{
			RequestTimeout:  getDuration("QD_REQUEST_TIMEOUT", 5*time.Second),
			ShutdownTimeout: getDuration("QD_SHUTDOWN_TIMEOUT", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getEnv("QD_LOG_LEVEL", "info"),
			Encoding: getEnv("QD_LOG_ENCODING", "console"),
		},
	}

	if cfg.Engine.ExchangeRate <= 0 {
		return nil, fmt.Errorf("QD_EXCHANGE_RATE must be positive")
	}
	if cfg.Engine.LookaheadDays < 0 {
		cfg.Engine.LookaheadDays = 0
	}
	return cfg, nil
}

// Address joins host and port for the HTTP listener.
func (c *Config) Address() string {
	return c.HTTP.Host + ":" + c.HTTP.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
