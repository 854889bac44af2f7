// Package output renders lint reports for terminals, pull request comments
// and machines.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/bartekus/commitlint/internal/lint"
)

// Format selects how a report is rendered.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatMarkdown, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be 'text', 'markdown' or 'json')", s)
	}
}

// UI provides colored output.
type UI struct {
	Verbose bool
	Out     io.Writer
	ErrOut  io.Writer
}

// New creates a UI with default stdout/stderr writers.
func New() *UI {
	return &UI{
		Out:    os.Stdout,
		ErrOut: os.Stderr,
	}
}

var (
	infoPrefix    = color.New(color.FgHiBlue).Sprint("i")
	successPrefix = color.New(color.FgHiGreen).Sprint("✓")
	warningPrefix = color.New(color.FgHiYellow).Sprint("⚠")
	errorPrefix   = color.New(color.FgHiRed).Sprint("✗")
	yellow        = color.New(color.FgHiYellow).SprintFunc()
	red           = color.New(color.FgHiRed).SprintFunc()
	faint         = color.New(color.Faint).SprintFunc()
)

// SeverityColor returns the severity colored for terminals.
func SeverityColor(sev lint.Severity) string {
	switch sev {
	case lint.SeverityWarn:
		return yellow(string(sev))
	case lint.SeverityFail:
		return red(string(sev))
	default:
		return string(sev)
	}
}

func (u *UI) Info(format string, a ...any) {
	fmt.Fprintf(u.Out, "%s %s\n", infoPrefix, fmt.Sprintf(format, a...))
}

func (u *UI) Success(format string, a ...any) {
	fmt.Fprintf(u.Out, "%s %s\n", successPrefix, fmt.Sprintf(format, a...))
}

func (u *UI) Warning(format string, a ...any) {
	fmt.Fprintf(u.ErrOut, "%s %s\n", warningPrefix, fmt.Sprintf(format, a...))
}

func (u *UI) Error(format string, a ...any) {
	fmt.Fprintf(u.ErrOut, "%s %s\n", errorPrefix, fmt.Sprintf(format, a...))
}

// Table creates a new tablewriter configured with consistent styling.
func (u *UI) Table(headers []string) *tablewriter.Table {
	table := tablewriter.NewTable(u.Out,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
		tablewriter.WithPadding(tw.Padding{Left: "", Right: "  "}),
	)
	table.Header(headers)
	return table
}

// Render writes report in the given format. Text goes through the UI
// prefixes; markdown and JSON are written verbatim to Out.
func (u *UI) Render(format Format, out *lint.Outcome) error {
	switch format {
	case FormatMarkdown:
		_, err := io.WriteString(u.Out, Markdown(out.Report))
		return err
	case FormatJSON:
		return JSON(u.Out, out.Report)
	default:
		u.Text(out)
		return nil
	}
}

// Text prints every entry with its severity prefix: the check message on
// the first line, failing commits indented below.
func (u *UI) Text(out *lint.Outcome) {
	report := out.Report
	for _, entry := range report.Errors {
		msg, shas := splitEntry(entry)
		fmt.Fprintf(u.Out, "%s %s\n", errorPrefix, msg)
		for _, sha := range shas {
			fmt.Fprintf(u.Out, "    %s\n", sha)
		}
	}
	for _, entry := range report.Warnings {
		msg, shas := splitEntry(entry)
		fmt.Fprintf(u.Out, "%s %s\n", warningPrefix, msg)
		for _, sha := range shas {
			fmt.Fprintf(u.Out, "    %s\n", sha)
		}
	}

	switch {
	case out.Plan.Noop():
	case report.Count() == 0:
		u.Success("%d commit(s) checked, no problems found", out.Evaluated)
	default:
		u.Info("%d commit(s) checked: %d error(s), %d warning(s)",
			out.Evaluated, len(report.Errors), len(report.Warnings))
	}

	if u.Verbose && !out.Plan.Noop() {
		u.Summary(out.Results)
	}
}

// Summary prints one row per evaluated rule.
func (u *UI) Summary(results []lint.Result) {
	table := u.Table([]string{"Check", "Severity", "Failing"})
	for _, res := range results {
		failing := fmt.Sprintf("%d", len(res.Failures))
		if len(res.Failures) == 0 {
			failing = faint("0")
		}
		_ = table.Append([]string{
			string(res.Rule.Check),
			SeverityColor(res.Rule.Severity),
			failing,
		})
	}
	_ = table.Render()
}

// Checks prints the check registry.
func (u *UI) Checks() {
	table := u.Table([]string{"ID", "Message"})
	for _, id := range lint.Checks() {
		_ = table.Append([]string{string(id), id.Message()})
	}
	_ = table.Render()
}

// Markdown renders report as a pull request comment body.
func Markdown(report *lint.StatusReport) string {
	var b strings.Builder
	b.WriteString("### Commit lint\n\n")

	if report.Count() == 0 {
		b.WriteString("All commit messages look good.\n")
		return b.String()
	}

	writeSection(&b, ":no_entry_sign: Errors", report.Errors)
	writeSection(&b, ":warning: Warnings", report.Warnings)
	writeSection(&b, ":information_source: Messages", report.Messages)
	for _, md := range report.Markdowns {
		b.WriteString(md)
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeSection(b *strings.Builder, title string, entries []string) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintf(b, "**%s**\n\n", title)
	for _, entry := range entries {
		msg, shas := splitEntry(entry)
		fmt.Fprintf(b, "- %s\n", msg)
		for _, sha := range shas {
			fmt.Fprintf(b, "  - `%s`\n", sha)
		}
	}
	b.WriteString("\n")
}

// JSON writes report as indented JSON.
func JSON(w io.Writer, report *lint.StatusReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing JSON output: %w", err)
	}
	return nil
}

func splitEntry(entry string) (string, []string) {
	lines := strings.Split(entry, "\n")
	return lines[0], lines[1:]
}
