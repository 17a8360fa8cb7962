// Package config loads and validates fslint configuration.
//
// The primary configuration file is .fslint/config.json under the
// scanned root. A project may additionally place an fslint.toml at the
// root to override rule severities; the TOML overrides win.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// ConfigVersion is the only supported config schema version.
const ConfigVersion = 1

// Severity levels accepted for rule overrides.
const (
	SeverityError = "error"
	SeverityWarn  = "warn"
	SeverityOff   = "off"
)

// Config represents the complete fslint configuration
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Scan    ScanConfig        `json:"scan" mapstructure:"scan"`
	Cache   CacheConfig       `json:"cache" mapstructure:"cache"`
	Rules   map[string]string `json:"rules" mapstructure:"rules"`
	Logging LoggingConfig     `json:"logging" mapstructure:"logging"`
}

// ScanConfig contains traversal configuration
type ScanConfig struct {
	// Ignore lists directory names skipped during traversal.
	Ignore []string `json:"ignore" mapstructure:"ignore"`
	// MaxDepth bounds traversal depth below the root.
	MaxDepth int `json:"maxDepth" mapstructure:"maxDepth"`
}

// CacheConfig contains the source-facts cache configuration
type CacheConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: ConfigVersion,
		Scan: ScanConfig{
			Ignore:   []string{"node_modules", "dist", "build", "coverage", ".git"},
			MaxDepth: 32,
		},
		Cache: CacheConfig{
			Enabled: false,
		},
		Rules: map[string]string{},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration for the given root directory.
// Missing files are not an error: defaults are returned, with any
// fslint.toml rule overrides applied on top.
func LoadConfig(root string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, ".fslint"))

	cfg := DefaultConfig()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	} else {
		if err := v.Unmarshal(cfg); err != nil {
			return nil, err
		}
	}

	if err := applyTOMLOverrides(cfg, root); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// tomlOverrides is the shape of fslint.toml. Only rule severities can
// be overridden there.
type tomlOverrides struct {
	Rules map[string]string `toml:"rules"`
}

func applyTOMLOverrides(cfg *Config, root string) error {
	data, err := os.ReadFile(filepath.Join(root, "fslint.toml"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var overrides tomlOverrides
	if err := toml.Unmarshal(data, &overrides); err != nil {
		return &ConfigError{Field: "fslint.toml", Message: err.Error()}
	}

	if cfg.Rules == nil {
		cfg.Rules = map[string]string{}
	}
	for rule, severity := range overrides.Rules {
		cfg.Rules[rule] = severity
	}
	return nil
}

// Save writes the configuration to .fslint/config.json
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ".fslint")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != ConfigVersion {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Scan.MaxDepth <= 0 {
		return &ConfigError{Field: "scan.maxDepth", Message: "must be positive"}
	}
	for rule, severity := range c.Rules {
		switch severity {
		case SeverityError, SeverityWarn, SeverityOff:
		default:
			return &ConfigError{Field: "rules." + rule, Message: "severity must be error, warn, or off"}
		}
	}
	return nil
}

// RuleSeverity returns the effective severity for a rule ID.
// Rules without an override report at error severity.
func (c *Config) RuleSeverity(rule string) string {
	if s, ok := c.Rules[rule]; ok {
		return s
	}
	return SeverityError
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
