package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for sourcelink
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sourcelink",
		Short: "Discover, associate and copy dataset files",
		Long: `Sourcelink pairs related files of a dataset, such as slide images and
their annotations, by deriving a key from each file name.

Files are collected from folders, glob patterns or YAML manifests, grouped
into clusters per key and mode, and clusters that found no counterpart are
reported and dropped. Manifest entries can be copied to a working folder.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: .sourcelink/config.yaml)")
	cmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error (overrides config)")

	cmd.AddCommand(NewCollectCommand())
	cmd.AddCommand(NewAssociateCommand())
	cmd.AddCommand(NewCopyCommand())

	return cmd
}
