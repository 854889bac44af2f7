package lint

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Result holds the commits that failed one rule.
type Result struct {
	Rule     Rule     `json:"rule"`
	Failures []string `json:"failures"`
}

// Evaluate runs every rule of the plan over records. Results follow rule
// order; failing SHAs follow record order and are not deduplicated.
func Evaluate(rules []Rule, records []Record) []Result {
	results := make([]Result, 0, len(rules))
	for _, rule := range rules {
		res := Result{Rule: rule}
		for _, rec := range records {
			if rule.Check.Fails(rec) {
				res.Failures = append(res.Failures, rec.SHA)
			}
		}
		results = append(results, res)
	}
	return results
}

// Check lints commits with cfg and returns the grouped report.
func Check(commits []Commit, cfg Configuration) *StatusReport {
	return run(NewPlan(cfg), commits).Report
}

// Outcome is the full result of a lint run.
type Outcome struct {
	Plan      Plan
	Evaluated int
	Results   []Result
	Report    *StatusReport
}

func run(plan Plan, commits []Commit) *Outcome {
	out := &Outcome{Plan: plan}
	if plan.Noop() {
		out.Report = noopReport()
		return out
	}

	window := plan.Window(commits)
	out.Evaluated = len(window)
	out.Results = Evaluate(plan.Rules, NewRecords(window))
	out.Report = Aggregate(out.Results)
	return out
}

// Linter reads commits from a source and lints them.
type Linter struct {
	source CommitSource
	logger *slog.Logger
}

// Option configures a Linter.
type Option func(*Linter)

// WithLogger sets the logger used for run diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Linter) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLinter creates a linter over source.
func NewLinter(source CommitSource, opts ...Option) *Linter {
	l := &Linter{
		source: source,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.With("module", "lint")
	return l
}

// Run lints the source's commits with cfg. The only error comes from the
// source; a completed run is always described by the returned report.
func (l *Linter) Run(ctx context.Context, cfg Configuration) (*Outcome, error) {
	plan := NewPlan(cfg)
	if plan.Noop() {
		l.logger.Debug("all checks disabled")
		return run(plan, nil), nil
	}

	commits, err := l.source.Commits(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading commits: %w", err)
	}

	out := run(plan, commits)
	l.logger.Debug("lint finished",
		"commits", len(commits),
		"evaluated", out.Evaluated,
		"rules", len(plan.Rules),
		"errors", len(out.Report.Errors),
		"warnings", len(out.Report.Warnings),
	)
	return out, nil
}
