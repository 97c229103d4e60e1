package cmd

import (
	"fmt"

	"github.com/harrison/sourcelink/internal/collect"
	"github.com/harrison/sourcelink/internal/config"
	"github.com/harrison/sourcelink/internal/logger"
	"github.com/harrison/sourcelink/internal/models"
	"github.com/harrison/sourcelink/internal/registry"
	"github.com/spf13/cobra"
)

// runtime bundles what every subcommand needs once flags are parsed.
type runtime struct {
	cfg     *config.Config
	reg     *registry.Registry
	log     logger.Logger
	fileLog *logger.FileLogger
}

// runID identifies this invocation in logs and reports.
func (rt *runtime) runID() string {
	return rt.fileLog.RunID()
}

func (rt *runtime) close() error {
	return rt.fileLog.Close()
}

// associationFlags carries flag overrides for the association section.
// Nil fields leave the config value untouched.
type associationFlags struct {
	deriver      *string
	splitSymbols []string
	exactMatch   *bool
}

// loadRuntime loads configuration, applies flag overrides, and opens the
// console and run file loggers. Callers must close the returned runtime.
func loadRuntime(cmd *cobra.Command, af associationFlags) (*runtime, error) {
	configFlag, _ := cmd.Flags().GetString("config")
	configPath, err := config.ConfigPath(configFlag)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}

	var logLevelPtr *string
	if cmd.Flags().Changed("log-level") {
		logLevel, _ := cmd.Flags().GetString("log-level")
		logLevelPtr = &logLevel
	}
	cfg.MergeWithFlags(logLevelPtr, af.deriver, af.splitSymbols, af.exactMatch)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	reg, err := cfg.Registry()
	if err != nil {
		return nil, err
	}

	fileLog, err := logger.NewFileLoggerWithDirAndLevel(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create file logger: %w", err)
	}
	console := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)

	return &runtime{
		cfg:     cfg,
		reg:     reg,
		log:     logger.NewMultiLogger(console, fileLog),
		fileLog: fileLog,
	}, nil
}

// filterFlags registers the path filter flags shared by collect and associate.
func filterFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("filter", nil, "Keep only paths containing one of these substrings")
	cmd.Flags().StringSlice("exclude", nil, "Drop paths containing any of these substrings")
	cmd.Flags().String("regex", "", "Keep only paths matching this regular expression")
}

func readFilter(cmd *cobra.Command) collect.Filter {
	filters, _ := cmd.Flags().GetStringSlice("filter")
	excludes, _ := cmd.Flags().GetStringSlice("exclude")
	regex, _ := cmd.Flags().GetString("regex")
	return collect.Filter{Filters: filters, Excludes: excludes, Regex: regex}
}

func readMode(cmd *cobra.Command) (models.Mode, error) {
	name, _ := cmd.Flags().GetString("mode")
	mode, err := models.ParseMode(name)
	if err != nil {
		return "", fmt.Errorf("invalid --mode: %w", err)
	}
	return mode, nil
}
