package commands

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/AzadNikarthil/rollscan/internal/cache"
	"github.com/AzadNikarthil/rollscan/internal/config"
	"github.com/AzadNikarthil/rollscan/internal/observability"
)

// loadConfig loads configuration honoring the persistent flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Observability.LogLevel = "debug"
		cfg.Observability.LogFormat = "console"
	}
	return cfg, nil
}

// newLogger builds the run logger from configuration.
func newLogger(cfg *config.Config) *observability.Logger {
	return observability.NewLogger(observability.LogConfig{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: "rollscan",
	})
}

// newCache builds the processed-document cache from configuration.
func newCache(cfg *config.Config) (cache.Client, error) {
	if cfg.Cache.Driver == "redis" {
		return cache.NewRedisClient(cfg.Cache.Redis)
	}
	return cache.NewMemoryClient(), nil
}

// discoverPDFs recursively collects .pdf files under root.
func discoverPDFs(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".pdf") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
