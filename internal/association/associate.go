package association

import (
	"github.com/harrison/sourcelink/internal/models"
)

// Logger receives non-fatal diagnostics from Associate.
type Logger interface {
	LogWarn(message string)
}

// Options configures Associate.
type Options struct {
	// Deriver computes association keys (default: StemDeriver)
	Deriver KeyDeriver
	// ExactMatch requires keys to be equal instead of substring matches
	ExactMatch bool
	// Table is filled instead of a fresh table when set
	Table *Table
	// Logger receives one warning per pruned cluster (optional)
	Logger Logger
}

// Associate links the files of setA with the files of setB.
//
// Every file of setA seeds a key and is inserted as a required member; files
// of setB are only matched into existing keys and dropped when nothing
// matches. Clusters left with a single member are pruned afterwards and
// reported through Table.Warnings and opts.Logger.
//
// On error the partially built table is discarded and nil is returned.
func Associate(setA, setB []*models.File, opts Options) (*Table, error) {
	deriver := opts.Deriver
	if deriver == nil {
		deriver = NewStemDeriver()
	}
	table := opts.Table
	if table == nil {
		table = NewTable()
	}

	for _, f := range setA {
		table.EnsureKey(deriver.Derive(f), f.Mode)
		if _, _, err := table.Insert(f, deriver, opts.ExactMatch, true); err != nil {
			return nil, err
		}
	}

	for _, f := range setB {
		if _, _, err := table.Insert(f, deriver, opts.ExactMatch, false); err != nil {
			return nil, err
		}
	}

	for _, w := range table.PruneUnpaired() {
		if opts.Logger != nil {
			opts.Logger.LogWarn(w.Detail())
		}
	}

	return table, nil
}
