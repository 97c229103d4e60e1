package association

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harrison/sourcelink/internal/models"
)

var (
	// ErrModeConflict is returned when a file's mode disagrees with its cluster.
	ErrModeConflict = errors.New("mode conflict")
	// ErrMissingRequiredKey is returned when a required file has no matching key.
	ErrMissingRequiredKey = errors.New("missing required key")
)

// ModeConflictError reports a file whose mode differs from the mode of the
// cluster it resolved to.
type ModeConflictError struct {
	Key      string      // Cluster key
	Path     string      // Offending file
	Expected models.Mode // Mode of the cluster
	Got      models.Mode // Mode of the file
}

func (e *ModeConflictError) Error() string {
	return fmt.Sprintf("mode conflict for key %q: file %s has mode %q, cluster has mode %q",
		e.Key, e.Path, e.Got, e.Expected)
}

// Unwrap allows errors.Is(err, ErrModeConflict).
func (e *ModeConflictError) Unwrap() error {
	return ErrModeConflict
}

// MissingRequiredKeyError reports a required file whose derived key was never seeded.
type MissingRequiredKeyError struct {
	Candidate string // Key derived from the file
	Path      string
}

func (e *MissingRequiredKeyError) Error() string {
	return fmt.Sprintf("no association key found for %s (derived key %q)", e.Path, e.Candidate)
}

// Unwrap allows errors.Is(err, ErrMissingRequiredKey).
func (e *MissingRequiredKeyError) Unwrap() error {
	return ErrMissingRequiredKey
}

// UnpairedWarning describes a cluster that was discarded because it only
// ever held a single file. It is not fatal.
type UnpairedWarning struct {
	Key   string
	Paths []string // Members of the discarded cluster (zero or one)
}

// String returns the warning message.
func (w UnpairedWarning) String() string {
	return fmt.Sprintf("could not find matching files for key: %s", w.Key)
}

// Detail returns the warning message followed by the discarded paths.
func (w UnpairedWarning) Detail() string {
	if len(w.Paths) == 0 {
		return w.String()
	}
	return fmt.Sprintf("%s (%s)", w.String(), strings.Join(w.Paths, ", "))
}
