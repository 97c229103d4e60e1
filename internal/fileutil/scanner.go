package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// ScanOptions configures the directory scanning behavior
type ScanOptions struct {
	// Pattern is a regex pattern matched against the file stem
	Pattern string
	// Extensions is a list of suffixes to include (e.g., ".tif", "xml"); case-insensitive
	Extensions []string
	// Recursive enables recursive directory scanning
	Recursive bool
	// ExcludeDirs is a list of directory names to skip
	ExcludeDirs []string
	// MaxDepth limits recursion depth (0 = unlimited, 1 = current dir only)
	MaxDepth int
	// IncludeHidden descends into directories starting with "."
	IncludeHidden bool
}

// ScanResult contains the results of a directory scan
type ScanResult struct {
	// Files contains the absolute paths of all matched files, sorted
	Files []string
	// Errors contains non-fatal errors encountered during scanning
	Errors []error
}

// Err combines the non-fatal scan errors into one error, or returns nil.
func (r *ScanResult) Err() error {
	var merr *multierror.Error
	for _, err := range r.Errors {
		merr = multierror.Append(merr, err)
	}
	return merr.ErrorOrNil()
}

// ScanDirectory scans a directory for files matching the provided options
func ScanDirectory(dir string, opts ScanOptions) (*ScanResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	result := &ScanResult{
		Files:  make([]string, 0),
		Errors: make([]error, 0),
	}

	var patternRegex *regexp.Regexp
	if opts.Pattern != "" {
		patternRegex, err = regexp.Compile(opts.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern: %w", err)
		}
	}

	extMap := make(map[string]bool)
	for _, ext := range opts.Extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extMap[strings.ToLower(ext)] = true
	}

	excludeMap := make(map[string]bool)
	for _, name := range opts.ExcludeDirs {
		excludeMap[name] = true
	}

	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			return nil
		}

		if path == dir {
			return nil
		}

		if d.IsDir() {
			if excludeMap[d.Name()] || (!opts.IncludeHidden && strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			if !opts.Recursive {
				return filepath.SkipDir
			}
			if opts.MaxDepth > 0 {
				relPath, _ := filepath.Rel(dir, path)
				depth := strings.Count(relPath, string(filepath.Separator)) + 1
				if depth >= opts.MaxDepth {
					return filepath.SkipDir
				}
			}
			return nil
		}

		filename := d.Name()
		if len(extMap) > 0 && !extMap[strings.ToLower(filepath.Ext(filename))] {
			return nil
		}

		if patternRegex != nil {
			stem := strings.TrimSuffix(filename, filepath.Ext(filename))
			if !patternRegex.MatchString(stem) {
				return nil
			}
		}

		absPath, err := filepath.Abs(path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("failed to resolve path %s: %w", path, err))
			return nil
		}

		result.Files = append(result.Files, absPath)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	sort.Strings(result.Files)

	return result, nil
}
