package collect

import (
	"fmt"
	"regexp"
	"strings"
)

// Filter selects discovered paths by substring and regular expression.
type Filter struct {
	// Filters keeps a path only if it contains at least one of these substrings (when non-empty)
	Filters []string
	// Excludes drops a path containing any of these substrings
	Excludes []string
	// Regex keeps a path only if the expression matches somewhere in it
	Regex string
}

type compiledFilter struct {
	Filter
	regex *regexp.Regexp
}

func (f Filter) compile() (*compiledFilter, error) {
	cf := &compiledFilter{Filter: f}
	if f.Regex != "" {
		re, err := regexp.Compile(f.Regex)
		if err != nil {
			return nil, fmt.Errorf("invalid regex %q: %w", f.Regex, err)
		}
		cf.regex = re
	}
	return cf, nil
}

func (cf *compiledFilter) match(path string) bool {
	for _, exclude := range cf.Excludes {
		if strings.Contains(path, exclude) {
			return false
		}
	}
	if len(cf.Filters) > 0 {
		found := false
		for _, filter := range cf.Filters {
			if strings.Contains(path, filter) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if cf.regex != nil && !cf.regex.MatchString(path) {
		return false
	}
	return true
}
