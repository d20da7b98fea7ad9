// Package config provides unified configuration loading for the pipeline.
// Supports YAML files, environment variables, and programmatic overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the extraction pipeline.
type Config struct {
	Database      DatabaseConfig      `yaml:"database"`
	Raster        RasterConfig        `yaml:"raster"`
	OCR           OCRConfig           `yaml:"ocr"`
	Grid          GridConfig          `yaml:"grid"`
	Pipeline      PipelineConfig      `yaml:"pipeline"`
	Cache         CacheConfig         `yaml:"cache"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver   string         `yaml:"driver"` // sqlite or postgres
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// SQLiteConfig holds SQLite-specific settings.
type SQLiteConfig struct {
	Path         string `yaml:"path"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

// PostgresConfig holds Postgres-specific settings.
type PostgresConfig struct {
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// RasterConfig holds PDF rasterization settings.
type RasterConfig struct {
	DPI     int `yaml:"dpi"`
	Workers int `yaml:"workers"`
}

// OCRConfig holds text recognition settings.
type OCRConfig struct {
	Language    string        `yaml:"language"`
	PageTimeout time.Duration `yaml:"page_timeout"`
}

// GridConfig holds the card grid geometry for content pages.
type GridConfig struct {
	Rows         int `yaml:"rows"`
	Cols         int `yaml:"cols"`
	HeaderPx     int `yaml:"header_px"`
	FooterPx     int `yaml:"footer_px"`
	MinCardRunes int `yaml:"min_card_runes"`
}

// PipelineConfig holds orchestration settings.
type PipelineConfig struct {
	TempRoot  string `yaml:"temp_root"`
	BatchSize int    `yaml:"batch_size"`
}

// CacheConfig holds processed-document cache settings.
type CacheConfig struct {
	Driver string        `yaml:"driver"` // memory or redis
	TTL    time.Duration `yaml:"ttl"`
	Redis  RedisConfig   `yaml:"redis"`
}

// RedisConfig holds Redis-specific settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Load reads configuration from a YAML file and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a configuration with sensible defaults. The grid
// geometry matches the standard Kerala roll layout: 10 rows by 3 columns of
// cards per content page, with fixed header and footer bands at 300 DPI.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver: "sqlite",
			SQLite: SQLiteConfig{
				Path:         "/tmp/rollscan.db",
				MaxOpenConns: 1,
			},
			Postgres: PostgresConfig{
				MaxOpenConns:    25,
				MaxIdleConns:    5,
				ConnMaxLifetime: 5 * time.Minute,
			},
		},
		Raster: RasterConfig{
			DPI:     300,
			Workers: 4,
		},
		OCR: OCRConfig{
			Language:    "mal",
			PageTimeout: 2 * time.Minute,
		},
		Grid: GridConfig{
			Rows:         10,
			Cols:         3,
			HeaderPx:     250,
			FooterPx:     150,
			MinCardRunes: 15,
		},
		Pipeline: PipelineConfig{
			TempRoot:  os.TempDir(),
			BatchSize: 100,
		},
		Cache: CacheConfig{
			Driver: "memory",
			TTL:    0, // no expiry: a processed document stays processed
			Redis: RedisConfig{
				Addr:     "localhost:6379",
				DB:       0,
				PoolSize: 10,
			},
		},
		Observability: ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "json",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		return fmt.Errorf("invalid database driver: %s", c.Database.Driver)
	}

	if c.Cache.Driver != "memory" && c.Cache.Driver != "redis" {
		return fmt.Errorf("invalid cache driver: %s", c.Cache.Driver)
	}

	if c.Raster.DPI < 72 || c.Raster.DPI > 1200 {
		return fmt.Errorf("raster dpi out of range: %d", c.Raster.DPI)
	}

	if c.Raster.Workers < 1 {
		return fmt.Errorf("raster workers must be positive: %d", c.Raster.Workers)
	}

	if c.Grid.Rows < 1 || c.Grid.Cols < 1 {
		return fmt.Errorf("grid must have at least one row and column")
	}

	if c.Grid.HeaderPx < 0 || c.Grid.FooterPx < 0 {
		return fmt.Errorf("grid margins must be non-negative")
	}

	if c.Pipeline.BatchSize < 1 {
		return fmt.Errorf("batch size must be positive: %d", c.Pipeline.BatchSize)
	}

	return nil
}

// DatabaseDSN returns the appropriate database connection string.
func (c *Config) DatabaseDSN() string {
	if c.Database.Driver == "sqlite" {
		return c.Database.SQLite.Path
	}
	return c.Database.Postgres.DSN
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		if strings.HasPrefix(v, "sqlite:") {
			cfg.Database.Driver = "sqlite"
			cfg.Database.SQLite.Path = strings.TrimPrefix(v, "sqlite:")
		} else if strings.HasPrefix(v, "postgres") {
			cfg.Database.Driver = "postgres"
			cfg.Database.Postgres.DSN = v
		}
	}

	if v := os.Getenv("POSTGRES_URL"); v != "" {
		cfg.Database.Driver = "postgres"
		cfg.Database.Postgres.DSN = v
	}

	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Cache.Driver = "redis"
		cfg.Cache.Redis.Addr = strings.TrimPrefix(v, "redis://")
	}

	if v := os.Getenv("OCR_LANGUAGE"); v != "" {
		cfg.OCR.Language = v
	}

	if v := os.Getenv("RASTER_DPI"); v != "" {
		if dpi, err := strconv.Atoi(v); err == nil {
			cfg.Raster.DPI = dpi
		}
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
}
