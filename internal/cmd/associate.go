package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/harrison/sourcelink/internal/association"
	"github.com/harrison/sourcelink/internal/collect"
	"github.com/harrison/sourcelink/internal/config"
	"github.com/harrison/sourcelink/internal/display"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewAssociateCommand creates the associate subcommand
func NewAssociateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "associate",
		Short: "Pair the files of two sources by a derived key",
		Long: `Associate collects two file sets and links every file of the second set
to the file of the first set whose key it matches.

Keys come from the configured deriver:
  stem      file name without extension (default)
  split     file name cut at the first split symbol, applied in order
  constant  every file shares one key

Without --exact a key from --b matches the first --a key it contains.
Keys that end up with a single file are dropped and reported.

Examples:
  sourcelink associate --a ./slides --a-type image --b ./labels --b-type annotation
  sourcelink associate --a ./slides --a-type image --b ./labels --b-type annotation \
      --deriver split --split _ --output report.yaml`,
		Args: cobra.NoArgs,
		RunE: runAssociate,
	}

	cmd.Flags().StringSlice("a", nil, "Sources of the first file set (required)")
	cmd.Flags().String("a-type", "", "File type of the first set (required)")
	cmd.Flags().StringSlice("b", nil, "Sources of the second file set (required)")
	cmd.Flags().String("b-type", "", "File type of the second set (required)")
	cmd.Flags().String("mode", "default", "Mode assigned to collected files")
	cmd.Flags().String("deriver", "", "Key deriver: stem, split, constant (overrides config)")
	cmd.Flags().StringSlice("split", nil, "Split symbols for the split deriver (overrides config)")
	cmd.Flags().Bool("exact", false, "Require exact key matches (overrides config)")
	cmd.Flags().Bool("recursive", false, "Descend into subdirectories of folder sources")
	cmd.Flags().String("output", "", "Write a YAML report to this path")
	filterFlags(cmd)
	for _, name := range []string{"a", "a-type", "b", "b-type"} {
		cmd.MarkFlagRequired(name)
	}

	return cmd
}

func runAssociate(cmd *cobra.Command, args []string) error {
	var af associationFlags
	if cmd.Flags().Changed("deriver") {
		deriver, _ := cmd.Flags().GetString("deriver")
		af.deriver = &deriver
	}
	if cmd.Flags().Changed("split") {
		af.splitSymbols, _ = cmd.Flags().GetStringSlice("split")
	}
	if cmd.Flags().Changed("exact") {
		exact, _ := cmd.Flags().GetBool("exact")
		af.exactMatch = &exact
	}

	rt, err := loadRuntime(cmd, af)
	if err != nil {
		return err
	}
	defer rt.close()

	mode, err := readMode(cmd)
	if err != nil {
		return err
	}
	recursive, _ := cmd.Flags().GetBool("recursive")
	opts := collect.Options{
		Mode:      mode,
		Filter:    readFilter(cmd),
		Recursive: recursive,
		Logger:    rt.log,
	}

	sourcesA, _ := cmd.Flags().GetStringSlice("a")
	typeA, _ := cmd.Flags().GetString("a-type")
	opts.TypeID = typeA
	setA, err := collect.FromSources(rt.reg, sourcesA, opts)
	if err != nil {
		rt.log.LogError(err.Error())
		return err
	}
	rt.log.LogCollected(typeA, setA)

	sourcesB, _ := cmd.Flags().GetStringSlice("b")
	typeB, _ := cmd.Flags().GetString("b-type")
	opts.TypeID = typeB
	setB, err := collect.FromSources(rt.reg, sourcesB, opts)
	if err != nil {
		rt.log.LogError(err.Error())
		return err
	}
	rt.log.LogCollected(typeB, setB)

	deriver, err := rt.cfg.Deriver()
	if err != nil {
		return err
	}
	// Unpaired keys reach the console once, as the warning block below;
	// the run log keeps one WARN line per key.
	table, err := association.Associate(setA, setB, association.Options{
		Deriver:    deriver,
		ExactMatch: rt.cfg.Association.ExactMatch,
		Logger:     rt.fileLog,
	})
	if err != nil {
		rt.log.LogError(err.Error())
		return fmt.Errorf("association failed: %w", err)
	}
	rt.log.LogAssociations(table)

	if err := display.PrintAssociations(cmd.OutOrStdout(), table); err != nil {
		return err
	}
	if w, ok := display.WarnUnpaired(table.Warnings()); ok {
		w.Display(cmd.ErrOrStderr())
	}

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		rep := newReport(rt.runID(), rt.cfg.Association, table)
		if err := writeReport(output, rep); err != nil {
			return err
		}
		rt.log.LogInfo(fmt.Sprintf("Report written to %s", output))
	}
	return nil
}

// report is the YAML document written by associate --output.
type report struct {
	RunID        string           `yaml:"run_id"`
	CreatedAt    string           `yaml:"created_at"`
	Deriver      string           `yaml:"deriver"`
	SplitSymbols []string         `yaml:"split_symbols,omitempty"`
	ExactMatch   bool             `yaml:"exact_match"`
	Associations []reportCluster  `yaml:"associations"`
	Unpaired     []reportUnpaired `yaml:"unpaired,omitempty"`
}

type reportCluster struct {
	Key   string              `yaml:"key"`
	Mode  string              `yaml:"mode"`
	Files map[string][]string `yaml:"files"`
}

type reportUnpaired struct {
	Key   string   `yaml:"key"`
	Paths []string `yaml:"paths,omitempty"`
}

func newReport(runID string, ac config.AssociationConfig, table *association.Table) report {
	rep := report{
		RunID:        runID,
		CreatedAt:    time.Now().Format(time.RFC3339),
		Deriver:      ac.Deriver,
		SplitSymbols: ac.SplitSymbols,
		ExactMatch:   ac.ExactMatch,
		Associations: []reportCluster{},
	}
	for key, c := range table.All() {
		rc := reportCluster{Key: key, Mode: c.Mode().String(), Files: map[string][]string{}}
		for _, typeID := range c.TypeIDs() {
			for _, f := range c.Files(typeID) {
				rc.Files[typeID] = append(rc.Files[typeID], f.Path)
			}
		}
		rep.Associations = append(rep.Associations, rc)
	}
	for _, w := range table.Warnings() {
		rep.Unpaired = append(rep.Unpaired, reportUnpaired{Key: w.Key, Paths: w.Paths})
	}
	return rep
}

func writeReport(path string, rep report) error {
	data, err := yaml.Marshal(rep)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
