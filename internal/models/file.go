package models

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Extension describes a group of file suffixes that belong to one kind of file.
type Extension struct {
	Suffixes []string // Suffixes including the leading dot (e.g. ".tif")
	// FolderCoupled marks files that own a sibling folder with the same stem
	// (e.g. "slide.mrxs" and "slide/"). Both are copied together.
	FolderCoupled bool
}

// File is a lightweight, immutable reference to a file on disk.
// It is created by the discovery layer and only held by association clusters.
type File struct {
	Path         string         // Current location of the file
	OriginalPath string         // Path as it was first discovered
	Mode         Mode           // Run context the file belongs to
	TypeID       string         // Registered file type (e.g. "image", "annotation")
	Extension    Extension      // Extension the file was classified with
	Attributes   map[string]any // Extra descriptor keys (from manifests)
}

// NewFile creates a handle for path with the given mode and type identifier.
func NewFile(path string, mode Mode, typeID string) *File {
	return &File{
		Path:         path,
		OriginalPath: path,
		Mode:         mode,
		TypeID:       typeID,
	}
}

// Name returns the base name of the file.
func (f *File) Name() string {
	return filepath.Base(f.Path)
}

// Suffix returns the last extension of the file, including the dot.
func (f *File) Suffix() string {
	return filepath.Ext(f.Path)
}

// Stem returns the base name without its last extension.
// "report_2023.pdf" -> "report_2023", "archive.tar.gz" -> "archive.tar".
func (f *File) Stem() string {
	return Stem(f.Path)
}

// CoupledFolder returns the sibling folder owned by a folder-coupled file.
func (f *File) CoupledFolder() string {
	return strings.TrimSuffix(f.Path, filepath.Ext(f.Path))
}

// WithPath returns a copy of the handle pointing at a new location.
// OriginalPath is preserved.
func (f *File) WithPath(path string) *File {
	clone := *f
	clone.Path = path
	if f.Attributes != nil {
		clone.Attributes = make(map[string]any, len(f.Attributes))
		for k, v := range f.Attributes {
			clone.Attributes[k] = v
		}
	}
	return &clone
}

func (f *File) String() string {
	return fmt.Sprintf("Mode: %s | Path: %s", f.Mode, f.Path)
}

// Stem returns the base name of path without its last extension.
// Dot files without a further extension (".env") are returned unchanged.
func Stem(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == base {
		return base
	}
	return strings.TrimSuffix(base, ext)
}
