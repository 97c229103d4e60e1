package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeEnv overrides the directory holding config.yaml and logs.
const HomeEnv = "SOURCELINK_HOME"

// ConfigPath returns the config file to load. Priority order:
//  1. explicit path (from --config)
//  2. $SOURCELINK_HOME/config.yaml
//  3. nearest .sourcelink/config.yaml walking up from the working directory
//  4. .sourcelink/config.yaml in the working directory (may not exist)
func ConfigPath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if home := os.Getenv(HomeEnv); home != "" {
		return filepath.Join(home, "config.yaml"), nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	current := cwd
	for {
		candidate := filepath.Join(current, ".sourcelink", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}

	return filepath.Join(cwd, ".sourcelink", "config.yaml"), nil
}
