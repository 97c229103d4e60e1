package registry

import (
	"strings"

	"github.com/harrison/sourcelink/internal/models"
)

// NormalizeSuffix lowercases a suffix and makes sure it starts with a dot.
func NormalizeSuffix(suffix string) string {
	suffix = strings.ToLower(strings.TrimSpace(suffix))
	if suffix != "" && !strings.HasPrefix(suffix, ".") {
		suffix = "." + suffix
	}
	return suffix
}

// ExtensionMapping maps every suffix of exts to the extension declaring it.
// Declaring the same suffix twice is an error.
func ExtensionMapping(exts []models.Extension) (map[string]models.Extension, error) {
	mapping := make(map[string]models.Extension)
	for _, ext := range exts {
		for _, suffix := range ext.Suffixes {
			suffix = NormalizeSuffix(suffix)
			if _, exists := mapping[suffix]; exists {
				return nil, &DuplicateExtensionError{Suffix: suffix}
			}
			mapping[suffix] = ext
		}
	}
	return mapping, nil
}
