package collect

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar"
	"github.com/harrison/sourcelink/internal/models"
	"github.com/harrison/sourcelink/internal/registry"
)

// IsGlob reports whether s contains glob meta characters.
func IsGlob(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

// FromGlob collects the regular files matching pattern ("**" matches any
// number of directories). Matches whose suffix is not registered for
// opts.TypeID are skipped. No match returns a *NoSourceFilesError.
func FromGlob(reg *registry.Registry, pattern string, opts Options) ([]*models.File, error) {
	suffixes, err := reg.Suffixes(opts.TypeID)
	if err != nil {
		return nil, err
	}
	accepted := make(map[string]bool, len(suffixes))
	for _, s := range suffixes {
		accepted[s] = true
	}

	matches, err := doublestar.Glob(expandUser(pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
	}

	paths := make([]string, 0, len(matches))
	for _, match := range matches {
		if !accepted[registry.NormalizeSuffix(filepath.Ext(match))] {
			continue
		}
		info, err := os.Stat(match)
		if err != nil {
			opts.warn(fmt.Sprintf("skipping %s: %v", match, err))
			continue
		}
		if info.IsDir() {
			continue
		}
		paths = append(paths, match)
	}

	files, err := FromPaths(reg, paths, opts)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, &NoSourceFilesError{TypeID: opts.TypeID, Location: pattern, Filter: opts.Filter}
	}
	return files, nil
}
