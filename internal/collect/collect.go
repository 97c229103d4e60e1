// Package collect discovers files on disk and turns them into typed handles.
//
// Files can be collected from explicit paths, a folder scan, a glob pattern
// or a YAML manifest. Every path is classified through a registry.Registry,
// so only suffixes registered for the requested type are accepted.
package collect

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/harrison/sourcelink/internal/fileutil"
	"github.com/harrison/sourcelink/internal/models"
	"github.com/harrison/sourcelink/internal/registry"
)

// Logger receives non-fatal discovery problems.
type Logger interface {
	LogWarn(message string)
}

// Options controls what is collected.
type Options struct {
	TypeID    string      // Registered file type to classify paths as
	Mode      models.Mode // Mode assigned to every handle (default: models.ModeDefault)
	Filter    Filter
	Recursive bool   // Descend into subdirectories when scanning folders
	Logger    Logger // Optional
}

func (o Options) mode() models.Mode {
	if o.Mode == "" {
		return models.ModeDefault
	}
	return o.Mode
}

func (o Options) warn(message string) {
	if o.Logger != nil {
		o.Logger.LogWarn(message)
	}
}

// FromPaths classifies explicit paths. Duplicates are removed, "~" is
// expanded and the filter applied. The result is sorted by path.
func FromPaths(reg *registry.Registry, paths []string, opts Options) ([]*models.File, error) {
	return fromPaths(reg, paths, nil, opts)
}

func fromPaths(reg *registry.Registry, paths []string, attrs map[string]map[string]any, opts Options) ([]*models.File, error) {
	filter, err := opts.Filter.compile()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(paths))
	files := make([]*models.File, 0, len(paths))
	for _, raw := range paths {
		path := expandUser(raw)
		if seen[path] {
			continue
		}
		seen[path] = true

		if !filter.match(path) {
			continue
		}

		f, err := reg.NewFile(opts.TypeID, path, opts.mode())
		if err != nil {
			return nil, err
		}
		if a, ok := attrs[raw]; ok && len(a) > 0 {
			f.Attributes = a
		}
		files = append(files, f)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, nil
}

// FromFolder scans folder once per suffix registered for opts.TypeID.
// Results are grouped by suffix in registration order and sorted within each
// group. A folder without matching files returns a *NoSourceFilesError.
func FromFolder(reg *registry.Registry, folder string, opts Options) ([]*models.File, error) {
	suffixes, err := reg.Suffixes(opts.TypeID)
	if err != nil {
		return nil, err
	}

	folder = expandUser(folder)
	var all []*models.File
	for _, suffix := range suffixes {
		result, err := fileutil.ScanDirectory(folder, fileutil.ScanOptions{
			Extensions:    []string{suffix},
			Recursive:     opts.Recursive,
			IncludeHidden: true,
		})
		if err != nil {
			return nil, err
		}
		if scanErr := result.Err(); scanErr != nil {
			opts.warn(scanErr.Error())
		}

		files, err := FromPaths(reg, result.Files, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, files...)
	}

	if len(all) == 0 {
		return nil, &NoSourceFilesError{TypeID: opts.TypeID, Location: folder, Filter: opts.Filter}
	}
	return all, nil
}

func expandUser(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
