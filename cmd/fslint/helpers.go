package main

import (
	"fmt"
	"os"
	"path/filepath"

	"fslint/internal/config"
	"fslint/internal/logging"
	"fslint/internal/source"
	"fslint/internal/storage"
)

// newLogger creates a logger honoring the loaded logging configuration.
func newLogger(cfg *config.Config) *logging.Logger {
	format := logging.HumanFormat
	if cfg.Logging.Format == "json" {
		format = logging.JSONFormat
	}
	return logging.NewLogger(logging.Config{
		Format: format,
		Level:  logging.ParseLevel(cfg.Logging.Level),
	})
}

// loadConfig loads configuration for root, falling back to defaults
// with a warning when the config file is broken.
func loadConfig(root string, logger *logging.Logger) *config.Config {
	cfg, err := config.LoadConfig(root)
	if err != nil {
		logger.Warn("Failed to load config, using defaults", map[string]interface{}{
			"error": err.Error(),
		})
		return config.DefaultConfig()
	}
	return cfg
}

// resolveRoot turns the optional positional argument into a cleaned
// root path, defaulting to the current directory.
func resolveRoot(args []string) string {
	if len(args) > 0 {
		return filepath.Clean(args[0])
	}
	return "."
}

// buildAnalyzer constructs the source analyzer, wrapping it with the
// facts cache when enabled. The returned closer is a no-op without a
// cache.
func buildAnalyzer(cfg *config.Config, root string, logger *logging.Logger) (source.Analyzer, func(), error) {
	analyzer := source.NewAnalyzer()
	if !cfg.Cache.Enabled {
		return analyzer, func() {}, nil
	}

	cache, err := storage.Open(root, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open cache: %w", err)
	}
	closer := func() {
		if err := cache.Close(); err != nil {
			logger.Warn("Failed to close cache", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	return storage.NewCachingAnalyzer(cache, analyzer, logger), closer, nil
}

// fail prints an error to stderr and exits non-zero.
func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
