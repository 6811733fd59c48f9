package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything the API reads from the environment.
type Config struct {
	Addr    string `env:"HTTP_ADDR" envDefault:":8080"`
	RunMode string `env:"RUN_MODE" envDefault:"local"` // local | lambda

	DBDriver        string        `env:"DB_DRIVER" envDefault:"mysql"` // mysql | sqlite
	PrimaryDSN      string        `env:"DB_DSN_PRIMARY"`
	ReadOnlyDSN     string        `env:"DB_DSN_READONLY"` // Falls back to PrimaryDSN
	AutoMigrate     bool          `env:"DB_AUTO_MIGRATE" envDefault:"false"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"25"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`

	PageLimitMax    int    `env:"ORDERS_PAGE_LIMIT_MAX" envDefault:"100"`
	DefaultStrategy string `env:"ORDERS_DEFAULT_STRATEGY" envDefault:"paged"`

	CORSAllowOrigin string `env:"CORS_ALLOW_ORIGIN" envDefault:"http://localhost:5173"`

	OTelEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `env:"OTEL_SERVICE_NAME" envDefault:"orderquery"`
}

// Load reads an optional .env file and parses the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}
	return Parse()
}

// Parse parses the current environment without touching .env files.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.ReadOnlyDSN == "" {
		cfg.ReadOnlyDSN = cfg.PrimaryDSN
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values env parsing cannot.
func (c Config) Validate() error {
	var errs []error
	switch c.DBDriver {
	case "mysql", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be mysql or sqlite, got %q", c.DBDriver))
	}
	if c.PrimaryDSN == "" {
		errs = append(errs, errors.New("DB_DSN_PRIMARY is required"))
	}
	switch c.RunMode {
	case "local", "lambda":
	default:
		errs = append(errs, fmt.Errorf("RUN_MODE must be local or lambda, got %q", c.RunMode))
	}
	if c.PageLimitMax <= 0 {
		errs = append(errs, fmt.Errorf("ORDERS_PAGE_LIMIT_MAX must be positive, got %d", c.PageLimitMax))
	}
	return errors.Join(errs...)
}
