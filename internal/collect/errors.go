package collect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harrison/sourcelink/internal/models"
)

// ErrNoSourceFiles is returned when a folder or glob yields no files.
var ErrNoSourceFiles = errors.New("no source files found")

// NoSourceFilesError reports a location that produced no files for a type.
type NoSourceFilesError struct {
	TypeID   string
	Location string // Folder or glob pattern
	Filter   Filter
}

func (e *NoSourceFilesError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("no %q files found in %s", e.TypeID, e.Location))
	if len(e.Filter.Filters) > 0 {
		sb.WriteString(fmt.Sprintf(" (filters: %s)", strings.Join(e.Filter.Filters, ", ")))
	}
	if len(e.Filter.Excludes) > 0 {
		sb.WriteString(fmt.Sprintf(" (excludes: %s)", strings.Join(e.Filter.Excludes, ", ")))
	}
	if e.Filter.Regex != "" {
		sb.WriteString(fmt.Sprintf(" (regex: %s)", e.Filter.Regex))
	}
	return sb.String()
}

// Unwrap allows errors.Is(err, ErrNoSourceFiles).
func (e *NoSourceFilesError) Unwrap() error {
	return ErrNoSourceFiles
}

// MissingModeError reports a manifest without a section for the requested mode.
type MissingModeError struct {
	Mode      models.Mode
	Source    string
	Available []models.Mode
}

func (e *MissingModeError) Error() string {
	names := make([]string, 0, len(e.Available))
	for _, m := range e.Available {
		names = append(names, string(m))
	}
	return fmt.Sprintf("mode %q not in manifest %s (available: %s)", e.Mode, e.Source, strings.Join(names, ", "))
}

// ManifestEntryError reports a malformed manifest entry.
type ManifestEntryError struct {
	Source string
	Mode   models.Mode
	Index  int
	TypeID string
	Reason string
}

func (e *ManifestEntryError) Error() string {
	return fmt.Sprintf("manifest %s: %s entry %d (%s): %s", e.Source, e.Mode, e.Index, e.TypeID, e.Reason)
}
