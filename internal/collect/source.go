package collect

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/sourcelink/internal/models"
	"github.com/harrison/sourcelink/internal/registry"
)

// FromSource collects files from a location given on the command line:
// a glob pattern, a directory, a YAML manifest (.yaml/.yml) or a single file.
func FromSource(reg *registry.Registry, source string, opts Options) ([]*models.File, error) {
	if IsGlob(source) {
		return FromGlob(reg, source, opts)
	}

	path := expandUser(source)
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access source: %w", err)
	}
	if info.IsDir() {
		return FromFolder(reg, path, opts)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		m, err := LoadManifest(path)
		if err != nil {
			return nil, err
		}
		return FromManifest(reg, m, opts)
	default:
		return FromPaths(reg, []string{path}, opts)
	}
}

// FromSources collects from several sources and concatenates the results in order.
func FromSources(reg *registry.Registry, sources []string, opts Options) ([]*models.File, error) {
	var all []*models.File
	for _, source := range sources {
		files, err := FromSource(reg, source, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, files...)
	}
	return all, nil
}
