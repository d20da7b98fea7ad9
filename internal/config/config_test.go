package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 300, cfg.Raster.DPI)
	assert.Equal(t, "mal", cfg.OCR.Language)
	assert.Equal(t, 2*time.Minute, cfg.OCR.PageTimeout)
	assert.Equal(t, 10, cfg.Grid.Rows)
	assert.Equal(t, 3, cfg.Grid.Cols)
	assert.Equal(t, 250, cfg.Grid.HeaderPx)
	assert.Equal(t, 150, cfg.Grid.FooterPx)
	assert.Equal(t, 15, cfg.Grid.MinCardRunes)
	assert.Equal(t, 100, cfg.Pipeline.BatchSize)
	assert.Equal(t, "memory", cfg.Cache.Driver)
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
database:
  driver: postgres
  postgres:
    dsn: postgres://localhost/rollscan?sslmode=disable
raster:
  dpi: 150
grid:
  rows: 8
ocr:
  language: mal+eng
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/rollscan?sslmode=disable", cfg.Database.Postgres.DSN)
	assert.Equal(t, 150, cfg.Raster.DPI)
	assert.Equal(t, 8, cfg.Grid.Rows)
	assert.Equal(t, "mal+eng", cfg.OCR.Language)
	// Unmentioned sections keep their defaults.
	assert.Equal(t, 3, cfg.Grid.Cols)
	assert.Equal(t, 100, cfg.Pipeline.BatchSize)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: [not a map"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite:/tmp/override.db")
	t.Setenv("OCR_LANGUAGE", "mal+eng")
	t.Setenv("RASTER_DPI", "200")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/override.db", cfg.Database.SQLite.Path)
	assert.Equal(t, "mal+eng", cfg.OCR.Language)
	assert.Equal(t, 200, cfg.Raster.DPI)
	assert.Equal(t, "debug", cfg.Observability.LogLevel)
}

func TestLoad_PostgresURLEnv(t *testing.T) {
	t.Setenv("POSTGRES_URL", "postgres://user:pass@db:5432/rollscan")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://user:pass@db:5432/rollscan", cfg.Database.Postgres.DSN)
}

func TestLoad_RedisURLEnv(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://cache:6379")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.Equal(t, "cache:6379", cfg.Cache.Redis.Addr)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad database driver", func(c *Config) { c.Database.Driver = "oracle" }, "invalid database driver"},
		{"bad cache driver", func(c *Config) { c.Cache.Driver = "memcached" }, "invalid cache driver"},
		{"dpi too low", func(c *Config) { c.Raster.DPI = 50 }, "dpi out of range"},
		{"dpi too high", func(c *Config) { c.Raster.DPI = 2400 }, "dpi out of range"},
		{"no workers", func(c *Config) { c.Raster.Workers = 0 }, "workers must be positive"},
		{"zero grid rows", func(c *Config) { c.Grid.Rows = 0 }, "at least one row"},
		{"negative margin", func(c *Config) { c.Grid.HeaderPx = -1 }, "margins must be non-negative"},
		{"zero batch size", func(c *Config) { c.Pipeline.BatchSize = 0 }, "batch size must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, cfg.Database.SQLite.Path, cfg.DatabaseDSN())

	cfg.Database.Driver = "postgres"
	cfg.Database.Postgres.DSN = "postgres://localhost/rollscan"
	assert.Equal(t, "postgres://localhost/rollscan", cfg.DatabaseDSN())
}
