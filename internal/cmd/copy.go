package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/harrison/sourcelink/internal/collect"
	"github.com/harrison/sourcelink/internal/copier"
	"github.com/harrison/sourcelink/internal/models"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
)

// NewCopyCommand creates the copy subcommand
func NewCopyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy <manifest>",
		Short: "Copy the files of a manifest into a destination folder",
		Long: `Copy the entries of one file type listed in a YAML manifest into a
destination folder.

Existing destination files are kept. Folder-coupled formats (such as .mrxs)
bring their sibling data folder along. Failed transfers are retried as
configured under copy.max_retries and copy.retry_interval.

Examples:
  sourcelink copy dataset.yaml --type image --dest /scratch/slides
  sourcelink copy dataset.yaml --type annotation --dest ./work --modes training,validation`,
		Args: cobra.ExactArgs(1),
		RunE: runCopy,
	}

	cmd.Flags().String("type", "", "Registered file type to copy (required)")
	cmd.Flags().String("dest", "", "Destination folder (required)")
	cmd.Flags().StringSlice("modes", nil, "Modes to copy (default: every mode in the manifest)")
	filterFlags(cmd)
	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("dest")

	return cmd
}

func runCopy(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime(cmd, associationFlags{})
	if err != nil {
		return err
	}
	defer rt.close()

	m, err := collect.LoadManifest(args[0])
	if err != nil {
		return err
	}

	modes := m.Modes()
	if cmd.Flags().Changed("modes") {
		names, _ := cmd.Flags().GetStringSlice("modes")
		if modes, err = models.ParseModes(names); err != nil {
			return fmt.Errorf("invalid --modes: %w", err)
		}
	}

	typeID, _ := cmd.Flags().GetString("type")
	dest, _ := cmd.Flags().GetString("dest")

	c := copier.New(rt.cfg.RetryPolicy(), rt.log)
	start := time.Now()
	copied, err := c.CopyFromManifest(cmd.Context(), rt.reg, m, dest, modes, collect.Options{
		TypeID: typeID,
		Filter: readFilter(cmd),
		Logger: rt.log,
	})
	rt.log.LogCopySummary(len(copied), failedCount(err), time.Since(start))

	out := cmd.OutOrStdout()
	for _, f := range copied {
		fmt.Fprintln(out, f)
	}
	if err != nil {
		rt.log.LogError(err.Error())
		return err
	}
	return nil
}

// failedCount returns how many transfers an error returned by the copier covers.
func failedCount(err error) int {
	if err == nil {
		return 0
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		return len(merr.Errors)
	}
	return 1
}
