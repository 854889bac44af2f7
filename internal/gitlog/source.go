// Package gitlog reads commit messages from a local git repository.
package gitlog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/bartekus/commitlint/internal/lint"
)

// ErrNotRepository is returned when the source directory is not inside a git work tree.
var ErrNotRepository = errors.New("gitlog: not a git repository")

const (
	// DefaultBase is the branch a pull request is assumed to target.
	DefaultBase = "origin/main"

	// DefaultTimeout bounds a single git invocation.
	DefaultTimeout = 30 * time.Second

	shortSHALength = 7

	fieldSep  = "\x1f"
	recordSep = "\x1e"
)

// Source lists the commits of a revision range, oldest first.
type Source struct {
	repoRoot string
	revRange string
	short    bool
	timeout  time.Duration
	logger   *slog.Logger

	mu    sync.Mutex
	cache []lint.Commit
}

// Option configures a Source.
type Option func(*Source)

// WithShortSHA abbreviates commit identifiers in the results.
func WithShortSHA(short bool) Option {
	return func(s *Source) { s.short = short }
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Source) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLogger sets the logger used for git invocations.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Source) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Source for revRange in the repository at repoRoot.
func New(repoRoot, revRange string, opts ...Option) *Source {
	s := &Source{
		repoRoot: repoRoot,
		revRange: revRange,
		timeout:  DefaultTimeout,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("module", "gitlog")
	return s
}

// Range returns the revision range for commits on HEAD not reachable from base.
// An empty base selects the whole history of HEAD.
func Range(base string) string {
	if base == "" {
		return "HEAD"
	}
	return base + "..HEAD"
}

// Commits runs git log for the configured range, caching the result for the
// instance lifetime.
func (s *Source) Commits(ctx context.Context) ([]lint.Commit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cache != nil {
		return s.cache, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	args := []string{"log", "--reverse", "--format=%H%x1f%B%x1e", s.revRange, "--"}
	s.logger.Debug("listing commits", "dir", s.repoRoot, "range", s.revRange)

	out, err := execGit(ctx, s.repoRoot, args...)
	if err != nil {
		return nil, fmt.Errorf("git log %s: %w", s.revRange, err)
	}

	s.cache = Parse(out, s.short)
	s.logger.Debug("commits listed", "count", len(s.cache))
	return s.cache, nil
}

// Parse decodes the output of git log in the format Commits requests.
func Parse(out string, short bool) []lint.Commit {
	commits := []lint.Commit{}
	for _, rec := range strings.Split(out, recordSep) {
		rec = strings.TrimLeft(rec, "\n")
		if rec == "" {
			continue
		}
		sha, msg, ok := strings.Cut(rec, fieldSep)
		if !ok {
			continue
		}
		if short && len(sha) > shortSHALength {
			sha = sha[:shortSHALength]
		}
		commits = append(commits, lint.Commit{
			SHA:     sha,
			Message: strings.TrimRight(msg, "\n"),
		})
	}
	return commits
}

func execGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stderr strings.Builder
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if strings.Contains(msg, "not a git repository") {
			return "", ErrNotRepository
		}
		if msg != "" {
			return "", fmt.Errorf("%w: %s", err, msg)
		}
		return "", err
	}
	return string(out), nil
}
