package gitlog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bartekus/commitlint/internal/lint"
)

// CleanMessage strips comment lines and surrounding blank lines the way git
// does before recording a message, so a commit-msg hook sees what will be
// committed. Runs of blank lines collapse into one.
func CleanMessage(msg string) string {
	lines := strings.Split(strings.ReplaceAll(msg, "\r\n", "\n"), "\n")
	kept := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		if strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blank = len(kept) > 0
			continue
		}
		if blank {
			kept = append(kept, "")
			blank = false
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// ReadMessage reads a single commit message and returns it as a one-commit
// source identified by name.
func ReadMessage(r io.Reader, name string) (lint.StaticSource, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading commit message %s: %w", name, err)
	}
	return lint.StaticSource{{SHA: name, Message: CleanMessage(string(data))}}, nil
}

// ReadMessageFile reads the commit message stored at path, as passed to a commit-msg hook.
func ReadMessageFile(path string) (lint.StaticSource, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is supplied by git or the user
	if err != nil {
		return nil, fmt.Errorf("opening commit message: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadMessage(f, path)
}
