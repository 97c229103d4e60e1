package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/harrison/sourcelink/internal/association"
	"github.com/harrison/sourcelink/internal/copier"
	"github.com/harrison/sourcelink/internal/models"
	"github.com/harrison/sourcelink/internal/registry"
	"gopkg.in/yaml.v3"
)

// AssociationConfig selects how files are linked
type AssociationConfig struct {
	// Deriver names the key strategy: stem, split or constant
	Deriver string `yaml:"deriver"`

	// SplitSymbols are the delimiters used by the split deriver, applied in order
	SplitSymbols []string `yaml:"split_symbols"`

	// ExactMatch requires equal keys instead of substring matches
	ExactMatch bool `yaml:"exact_match"`
}

// CopyConfig controls file transfer retries
type CopyConfig struct {
	// MaxRetries is the number of retries after a failed copy attempt
	MaxRetries int `yaml:"max_retries"`

	// RetryInterval is the wait between attempts
	RetryInterval time.Duration `yaml:"retry_interval"`
}

// ExtensionConfig declares suffixes of a file type
type ExtensionConfig struct {
	Suffixes      []string `yaml:"suffixes"`
	FolderCoupled bool     `yaml:"folder_coupled"`
}

// TypeConfig declares a file type
type TypeConfig struct {
	ID         string            `yaml:"id"`
	Extensions []ExtensionConfig `yaml:"extensions"`
}

// Config represents sourcelink configuration options
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where run logs are written
	LogDir string `yaml:"log_dir"`

	Association AssociationConfig `yaml:"association"`
	Copy        CopyConfig        `yaml:"copy"`

	// Types replaces the built-in file types when non-empty
	Types []TypeConfig `yaml:"types"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	retry := copier.DefaultRetryPolicy()
	return &Config{
		LogLevel: "info",
		LogDir:   filepath.Join(".sourcelink", "logs"),
		Association: AssociationConfig{
			Deriver:    association.DeriverStem,
			ExactMatch: false,
		},
		Copy: CopyConfig{
			MaxRetries:    retry.MaxRetries,
			RetryInterval: retry.Interval,
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Durations are parsed by hand so "500ms" style strings work
	type yamlCopy struct {
		MaxRetries    int    `yaml:"max_retries"`
		RetryInterval string `yaml:"retry_interval"`
	}
	type yamlConfig struct {
		LogLevel    string            `yaml:"log_level"`
		LogDir      string            `yaml:"log_dir"`
		Association AssociationConfig `yaml:"association"`
		Copy        yamlCopy          `yaml:"copy"`
		Types       []TypeConfig      `yaml:"types"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.LogDir != "" {
		cfg.LogDir = yamlCfg.LogDir
	}
	if yamlCfg.Association.Deriver != "" {
		cfg.Association.Deriver = yamlCfg.Association.Deriver
	}
	if len(yamlCfg.Association.SplitSymbols) > 0 {
		cfg.Association.SplitSymbols = yamlCfg.Association.SplitSymbols
	}
	if yamlCfg.Association.ExactMatch {
		cfg.Association.ExactMatch = true
	}
	if yamlCfg.Copy.RetryInterval != "" {
		interval, err := time.ParseDuration(yamlCfg.Copy.RetryInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid copy.retry_interval %q: %w", yamlCfg.Copy.RetryInterval, err)
		}
		cfg.Copy.RetryInterval = interval
	}
	if len(yamlCfg.Types) > 0 {
		cfg.Types = yamlCfg.Types
	}

	// max_retries: 0 is meaningful, so check presence rather than value
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err == nil {
		if copySection, ok := rawMap["copy"].(map[string]interface{}); ok {
			if _, exists := copySection["max_retries"]; exists {
				cfg.Copy.MaxRetries = yamlCfg.Copy.MaxRetries
			}
		}
	}

	return cfg, nil
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(logLevel *string, deriver *string, splitSymbols []string, exactMatch *bool) {
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if deriver != nil {
		c.Association.Deriver = *deriver
	}
	if len(splitSymbols) > 0 {
		c.Association.SplitSymbols = splitSymbols
	}
	if exactMatch != nil {
		c.Association.ExactMatch = *exactMatch
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if _, err := c.Deriver(); err != nil {
		return fmt.Errorf("invalid association config: %w", err)
	}

	if c.Copy.MaxRetries < 0 {
		return fmt.Errorf("copy.max_retries must be >= 0, got %d", c.Copy.MaxRetries)
	}
	if c.Copy.RetryInterval < 0 {
		return fmt.Errorf("copy.retry_interval must be >= 0, got %v", c.Copy.RetryInterval)
	}

	if _, err := c.Registry(); err != nil {
		return fmt.Errorf("invalid types: %w", err)
	}

	return nil
}

// Deriver builds the configured key deriver
func (c *Config) Deriver() (association.KeyDeriver, error) {
	return association.NewDeriver(c.Association.Deriver, c.Association.SplitSymbols)
}

// RetryPolicy returns the copy retry policy
func (c *Config) RetryPolicy() copier.RetryPolicy {
	return copier.RetryPolicy{MaxRetries: c.Copy.MaxRetries, Interval: c.Copy.RetryInterval}
}

// Registry builds the file type registry: the configured types, or the
// built-in ones when none are configured
func (c *Config) Registry() (*registry.Registry, error) {
	if len(c.Types) == 0 {
		return registry.Default(), nil
	}

	reg := registry.New()
	for _, tc := range c.Types {
		ft := registry.FileType{ID: tc.ID}
		for _, ec := range tc.Extensions {
			ft.Extensions = append(ft.Extensions, models.Extension{
				Suffixes:      ec.Suffixes,
				FolderCoupled: ec.FolderCoupled,
			})
		}
		if err := reg.Register(ft); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
