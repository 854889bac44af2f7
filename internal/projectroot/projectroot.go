// Package projectroot locates the repository a command runs in.
package projectroot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when no enclosing repository exists.
var ErrNotFound = errors.New("projectroot: no .git found in any parent directory")

// Find walks up from start until it finds a directory containing .git
// (a directory, or a file for worktrees and submodules).
func Find(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", start, err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}
