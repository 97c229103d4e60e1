package association

import (
	"iter"
	"strings"

	"github.com/harrison/sourcelink/internal/models"
)

// Table maps association keys to clusters. Keys keep their insertion order,
// which decides matching precedence for substring matches.
type Table struct {
	keys     []string
	clusters map[string]*Cluster
	warnings []UnpairedWarning
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		clusters: make(map[string]*Cluster),
	}
}

// EnsureKey creates an empty cluster for key with the given mode if none exists.
// An existing cluster is left untouched.
func (t *Table) EnsureKey(key string, mode models.Mode) {
	if _, ok := t.clusters[key]; ok {
		return
	}
	t.keys = append(t.keys, key)
	t.clusters[key] = newCluster(key, mode)
}

// Resolve finds the table key a candidate key matches. With exactMatch the key
// must be equal; otherwise the first key (in insertion order) contained in
// candidate wins.
func (t *Table) Resolve(candidate string, exactMatch bool) (string, bool) {
	if exactMatch {
		_, ok := t.clusters[candidate]
		return candidate, ok
	}
	for _, key := range t.keys {
		if strings.Contains(candidate, key) {
			return key, true
		}
	}
	return "", false
}

// Insert derives the key of f, resolves it against the table and adds f to
// the matching cluster. When nothing matches, a required file produces a
// *MissingRequiredKeyError and an optional file is dropped (ok is false).
func (t *Table) Insert(f *models.File, deriver KeyDeriver, exactMatch, required bool) (key string, ok bool, err error) {
	candidate := deriver.Derive(f)

	key, ok = t.Resolve(candidate, exactMatch)
	if !ok {
		if required {
			return "", false, &MissingRequiredKeyError{Candidate: candidate, Path: f.Path}
		}
		return "", false, nil
	}

	if err := t.clusters[key].Add(f); err != nil {
		return "", false, err
	}
	return key, true, nil
}

// PruneUnpaired removes every cluster that holds a single type id with at
// most one file and returns one warning per removed key, in table order.
func (t *Table) PruneUnpaired() []UnpairedWarning {
	var warnings []UnpairedWarning
	kept := t.keys[:0]
	for _, key := range t.keys {
		cluster := t.clusters[key]
		if cluster.unpaired() {
			warnings = append(warnings, UnpairedWarning{Key: key, Paths: cluster.paths()})
			delete(t.clusters, key)
			continue
		}
		kept = append(kept, key)
	}
	t.keys = kept
	t.warnings = warnings
	return append([]UnpairedWarning(nil), warnings...)
}

// Warnings returns the warnings produced by the last PruneUnpaired call.
func (t *Table) Warnings() []UnpairedWarning {
	return append([]UnpairedWarning(nil), t.warnings...)
}

// Len returns the number of clusters.
func (t *Table) Len() int {
	return len(t.keys)
}

// Keys returns the keys in insertion order.
func (t *Table) Keys() []string {
	return append([]string(nil), t.keys...)
}

// Get returns the cluster stored under key.
func (t *Table) Get(key string) (*Cluster, bool) {
	c, ok := t.clusters[key]
	return c, ok
}

// Clusters returns the clusters in insertion order.
func (t *Table) Clusters() []*Cluster {
	out := make([]*Cluster, 0, len(t.keys))
	for _, key := range t.keys {
		out = append(out, t.clusters[key])
	}
	return out
}

// All iterates over key/cluster pairs in insertion order.
func (t *Table) All() iter.Seq2[string, *Cluster] {
	return func(yield func(string, *Cluster) bool) {
		for _, key := range t.keys {
			if !yield(key, t.clusters[key]) {
				return
			}
		}
	}
}

// Flatten returns one slice of members per cluster, in insertion order.
func (t *Table) Flatten() [][]*models.File {
	out := make([][]*models.File, 0, len(t.keys))
	for _, key := range t.keys {
		out = append(out, t.clusters[key].Flatten())
	}
	return out
}
