package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	Env      string `env:"ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DatabaseDriver  string `env:"DATABASE_DRIVER" envDefault:"postgres"`
	PostgresConnStr string `env:"POSTGRES_CONN_STR"`
	SQLitePath      string `env:"SQLITE_PATH" envDefault:"socially.db"`

	// Optional view invalidation sinks.
	MongoURI      string `env:"MONGO_URI"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"socially"`
	RedisURL      string `env:"REDIS_URL"`

	FirebaseCredentialsPath string `env:"FIREBASE_CREDENTIALS_PATH"`
	JWTSecret               string `env:"JWT_SECRET"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`
}

// Load reads an optional .env file, then the process environment.
// It reports whether a .env file was found.
func Load() (*Config, bool, error) {
	loadedDotenv := godotenv.Load() == nil

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, loadedDotenv, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, loadedDotenv, err
	}
	return cfg, loadedDotenv, nil
}

func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverPostgres:
		if c.PostgresConnStr == "" {
			return errors.New("POSTGRES_CONN_STR is required when DATABASE_DRIVER=postgres")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required when DATABASE_DRIVER=sqlite")
		}
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.FirebaseCredentialsPath == "" && c.JWTSecret == "" {
		return errors.New("either FIREBASE_CREDENTIALS_PATH or JWT_SECRET must be set")
	}
	return nil
}
