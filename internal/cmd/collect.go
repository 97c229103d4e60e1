package cmd

import (
	"fmt"

	"github.com/harrison/sourcelink/internal/collect"
	"github.com/spf13/cobra"
)

// NewCollectCommand creates the collect subcommand
func NewCollectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collect <source>...",
		Short: "List the files of one type found in the given sources",
		Long: `Collect files of a registered type from one or more sources and print
one line per file.

A source is a directory, a glob pattern (** supported), a YAML manifest
(.yaml/.yml) or a single file path.

Examples:
  sourcelink collect ./slides --type image
  sourcelink collect "data/**/*.xml" --type annotation --mode training
  sourcelink collect dataset.yaml --type image --mode test --exclude _old`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCollect,
	}

	cmd.Flags().String("type", "", "Registered file type to collect (required)")
	cmd.Flags().String("mode", "default", "Mode assigned to collected files")
	cmd.Flags().Bool("recursive", false, "Descend into subdirectories of folder sources")
	filterFlags(cmd)
	cmd.MarkFlagRequired("type")

	return cmd
}

func runCollect(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime(cmd, associationFlags{})
	if err != nil {
		return err
	}
	defer rt.close()

	mode, err := readMode(cmd)
	if err != nil {
		return err
	}
	typeID, _ := cmd.Flags().GetString("type")
	recursive, _ := cmd.Flags().GetBool("recursive")

	files, err := collect.FromSources(rt.reg, args, collect.Options{
		TypeID:    typeID,
		Mode:      mode,
		Filter:    readFilter(cmd),
		Recursive: recursive,
		Logger:    rt.log,
	})
	if err != nil {
		rt.log.LogError(err.Error())
		return err
	}
	rt.log.LogCollected(typeID, files)

	out := cmd.OutOrStdout()
	for _, f := range files {
		fmt.Fprintln(out, f)
	}
	return nil
}
