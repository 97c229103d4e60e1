package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harrison/sourcelink/internal/association"
)

// TestDefaultConfig verifies default configuration values
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.LogDir != filepath.Join(".sourcelink", "logs") {
		t.Errorf("LogDir = %q", cfg.LogDir)
	}
	if cfg.Association.Deriver != "stem" {
		t.Errorf("Deriver = %q, want stem", cfg.Association.Deriver)
	}
	if cfg.Association.ExactMatch {
		t.Error("ExactMatch should default to false")
	}
	if cfg.Copy.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.Copy.MaxRetries)
	}
	if cfg.Copy.RetryInterval != 500*time.Millisecond {
		t.Errorf("RetryInterval = %v, want 500ms", cfg.Copy.RetryInterval)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

// TestLoadConfigValidFile tests loading a valid YAML config file
func TestLoadConfigValidFile(t *testing.T) {
	path := writeConfig(t, `log_level: debug
log_dir: /tmp/logs
association:
  deriver: split
  split_symbols: ["-", "_"]
  exact_match: true
copy:
  max_retries: 0
  retry_interval: 2s
types:
  - id: scan
    extensions:
      - suffixes: [".tif"]
      - suffixes: [".mrxs"]
        folder_coupled: true
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.LogDir != "/tmp/logs" {
		t.Errorf("LogDir = %q", cfg.LogDir)
	}
	if cfg.Association.Deriver != "split" || strings.Join(cfg.Association.SplitSymbols, "") != "-_" {
		t.Errorf("Association = %+v", cfg.Association)
	}
	if !cfg.Association.ExactMatch {
		t.Error("ExactMatch should be true")
	}
	if cfg.Copy.MaxRetries != 0 {
		t.Errorf("MaxRetries = %d, want explicit 0", cfg.Copy.MaxRetries)
	}
	if cfg.Copy.RetryInterval != 2*time.Second {
		t.Errorf("RetryInterval = %v, want 2s", cfg.Copy.RetryInterval)
	}

	reg, err := cfg.Registry()
	if err != nil {
		t.Fatalf("Registry() error = %v", err)
	}
	if got := strings.Join(reg.Types(), ","); got != "scan" {
		t.Errorf("types = %s, want scan", got)
	}
	ext, err := reg.Lookup("scan", ".mrxs")
	if err != nil || !ext.FolderCoupled {
		t.Errorf("expected folder coupled .mrxs, got %+v err=%v", ext, err)
	}

	d, err := cfg.Deriver()
	if err != nil {
		t.Fatalf("Deriver() error = %v", err)
	}
	if _, ok := d.(*association.SplitDeriver); !ok {
		t.Errorf("Deriver() = %T, want *SplitDeriver", d)
	}
}

// TestLoadConfigPartial keeps defaults for keys absent from the file
func TestLoadConfigPartial(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "log_level: warn\n"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.Copy.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want default 3", cfg.Copy.MaxRetries)
	}
	if cfg.Association.Deriver != "stem" {
		t.Errorf("Deriver = %q, want default stem", cfg.Association.Deriver)
	}
	if len(cfg.Types) != 0 {
		t.Errorf("Types = %v, want none", cfg.Types)
	}
}

// TestLoadConfigFileNotExists tests fallback to defaults when file doesn't exist
func TestLoadConfigFileNotExists(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() should not error on missing file, got: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want default", cfg.LogLevel)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "malformed yaml", content: "log_level: [unclosed", wantErr: "failed to parse"},
		{name: "bad duration", content: "copy:\n  retry_interval: soon\n", wantErr: "invalid copy.retry_interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadConfig() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestMergeWithFlags(t *testing.T) {
	cfg := DefaultConfig()
	level := "debug"
	deriver := "constant"
	exact := true

	cfg.MergeWithFlags(&level, &deriver, []string{"_"}, &exact)

	if cfg.LogLevel != "debug" || cfg.Association.Deriver != "constant" || !cfg.Association.ExactMatch {
		t.Errorf("flags not merged: %+v", cfg)
	}
	if len(cfg.Association.SplitSymbols) != 1 {
		t.Errorf("SplitSymbols = %v", cfg.Association.SplitSymbols)
	}

	// nil flags leave values untouched
	cfg.MergeWithFlags(nil, nil, nil, nil)
	if cfg.LogLevel != "debug" || cfg.Association.Deriver != "constant" {
		t.Errorf("nil flags changed config: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: "invalid log_level"},
		{name: "unknown deriver", mutate: func(c *Config) { c.Association.Deriver = "fuzzy" }, wantErr: "unknown deriver"},
		{name: "split without symbols", mutate: func(c *Config) { c.Association.Deriver = "split" }, wantErr: "at least one symbol"},
		{name: "negative retries", mutate: func(c *Config) { c.Copy.MaxRetries = -1 }, wantErr: "max_retries"},
		{name: "negative interval", mutate: func(c *Config) { c.Copy.RetryInterval = -time.Second }, wantErr: "retry_interval"},
		{
			name: "duplicate suffix",
			mutate: func(c *Config) {
				c.Types = []TypeConfig{{ID: "doc", Extensions: []ExtensionConfig{{Suffixes: []string{".txt"}}, {Suffixes: []string{".txt"}}}}}
			},
			wantErr: "duplicate extension",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestRetryPolicy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Copy.MaxRetries = 7
	cfg.Copy.RetryInterval = time.Second

	policy := cfg.RetryPolicy()
	if policy.MaxRetries != 7 || policy.Interval != time.Second {
		t.Errorf("RetryPolicy() = %+v", policy)
	}
}
