package lint

import "strings"

// NoopMessage is the only report entry when every check is disabled.
const NoopMessage = "All checks were disabled, nothing to do."

// StatusReport is the grouped lint feedback. Messages and Markdowns are
// never filled by the linter but are always present.
type StatusReport struct {
	Errors    []string `json:"errors"`
	Warnings  []string `json:"warnings"`
	Messages  []string `json:"messages"`
	Markdowns []string `json:"markdowns"`
}

// NewStatusReport returns a report with all buckets empty.
func NewStatusReport() *StatusReport {
	return &StatusReport{
		Errors:    []string{},
		Warnings:  []string{},
		Messages:  []string{},
		Markdowns: []string{},
	}
}

// Failed reports whether any error entry was produced.
func (r *StatusReport) Failed() bool {
	return len(r.Errors) > 0
}

// Count returns the number of entries across all buckets.
func (r *StatusReport) Count() int {
	return len(r.Errors) + len(r.Warnings) + len(r.Messages) + len(r.Markdowns)
}

// Entry formats a report entry: the check message followed by one line per commit.
func Entry(id CheckID, shas []string) string {
	lines := make([]string, 0, len(shas)+1)
	lines = append(lines, id.Message())
	lines = append(lines, shas...)
	return strings.Join(lines, "\n")
}

// Aggregate builds the report from evaluation results. Results must be in
// registry order; checks without failures contribute nothing.
func Aggregate(results []Result) *StatusReport {
	report := NewStatusReport()
	for _, res := range results {
		if len(res.Failures) == 0 {
			continue
		}
		entry := Entry(res.Rule.Check, res.Failures)
		if res.Rule.Severity == SeverityWarn {
			report.Warnings = append(report.Warnings, entry)
		} else {
			report.Errors = append(report.Errors, entry)
		}
	}
	return report
}

func noopReport() *StatusReport {
	report := NewStatusReport()
	report.Warnings = append(report.Warnings, NoopMessage)
	return report
}
