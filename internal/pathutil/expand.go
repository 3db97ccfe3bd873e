// Package pathutil resolves user-supplied paths.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Expand trims path, expands a leading ~ and environment variables, and
// returns an absolute path.
func Expand(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	trimmed = os.ExpandEnv(trimmed)
	return filepath.Abs(trimmed)
}

// MustExpand is Expand that returns path unchanged on failure.
func MustExpand(path string) string {
	expanded, err := Expand(path)
	if err != nil {
		return path
	}
	return expanded
}
