package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/commitlint/cmd/commitlint/internal/clierr"
	"github.com/bartekus/commitlint/internal/config"
	"github.com/bartekus/commitlint/internal/lint"
)

// isolate moves the test into an empty directory outside any repository and
// clears COMMITLINT_* overrides.
func isolate(t *testing.T) string {
	t.Helper()
	for _, key := range config.Keys {
		name := config.EnvPrefix + "_" + strings.ToUpper(key)
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
	dir := t.TempDir()
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))
	t.Chdir(dir)
	return dir
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	out, _, err := executeAll(t, stdin, args...)
	return out, err
}

// executeAll runs the root command and returns stdout and stderr separately.
func executeAll(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func decodeReport(t *testing.T, out string) lint.StatusReport {
	t.Helper()
	var report lint.StatusReport
	require.NoError(t, json.Unmarshal([]byte(out), &report), out)
	return report
}

func writeMessage(t *testing.T, dir, msg string) string {
	t.Helper()
	path := filepath.Join(dir, "COMMIT_EDITMSG")
	require.NoError(t, os.WriteFile(path, []byte(msg), 0644))
	return path
}

func TestCheck_MessageFile(t *testing.T) {
	dir := isolate(t)

	tests := []struct {
		name     string
		message  string
		args     []string
		wantCode int
		errors   []lint.CheckID
		warnings []lint.CheckID
	}{
		{
			name:    "clean message",
			message: "Add the parser\n\nDetails here.\n",
		},
		{
			name:     "lowercase subject fails",
			message:  "add the parser\n",
			wantCode: clierr.ExitLintFailed,
			errors:   []lint.CheckID{lint.SubjectCap},
		},
		{
			name:     "warned check does not fail",
			message:  "Add the parser.\n",
			args:     []string{"--warn", "subject_period"},
			warnings: []lint.CheckID{lint.SubjectPeriod},
		},
		{
			name:     "fail-on-warning",
			message:  "Add the parser.\n",
			args:     []string{"--warn", "all", "--fail-on-warning"},
			wantCode: clierr.ExitLintFailed,
			warnings: []lint.CheckID{lint.SubjectPeriod},
		},
		{
			name:     "fail beats warn",
			message:  "Add the parser.\n",
			args:     []string{"--warn", "all", "--fail", "subject_period"},
			wantCode: clierr.ExitLintFailed,
			errors:   []lint.CheckID{lint.SubjectPeriod},
		},
		{
			name:    "disabled check is skipped",
			message: "add the parser\n",
			args:    []string{"--disable", "subject_cap"},
		},
		{
			name:    "comment lines are ignored",
			message: "Add the parser\n# Please enter the commit message\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeMessage(t, dir, tt.message)
			args := append([]string{"check", "--format", "json", "--message-file", path}, tt.args...)

			out, err := execute(t, "", args...)
			if tt.wantCode == 0 {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, clierr.ExitCodeOf(err))
			}

			report := decodeReport(t, out)
			require.Len(t, report.Errors, len(tt.errors))
			for i, id := range tt.errors {
				assert.Equal(t, lint.Entry(id, []string{path}), report.Errors[i])
			}
			require.Len(t, report.Warnings, len(tt.warnings))
			for i, id := range tt.warnings {
				assert.Equal(t, lint.Entry(id, []string{path}), report.Warnings[i])
			}
		})
	}
}

func TestCheck_Stdin(t *testing.T) {
	isolate(t)

	out, err := execute(t, "fix\n", "check", "--format", "json", "--message-file", "-")
	require.Error(t, err)
	assert.Equal(t, clierr.ExitLintFailed, clierr.ExitCodeOf(err))

	report := decodeReport(t, out)
	assert.Equal(t, []string{
		lint.Entry(lint.SubjectCap, []string{"stdin"}),
		lint.Entry(lint.SubjectWords, []string{"stdin"}),
	}, report.Errors)
}

func TestCheck_Noop(t *testing.T) {
	isolate(t)

	out, err := execute(t, "", "check", "--format", "json", "--disable", "all")
	require.NoError(t, err)

	report := decodeReport(t, out)
	assert.Empty(t, report.Errors)
	assert.Equal(t, []string{lint.NoopMessage}, report.Warnings)
}

func TestCheck_ExitCodes(t *testing.T) {
	dir := isolate(t)
	path := writeMessage(t, dir, "Add the parser\n")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{name: "unknown format", args: []string{"check", "--format", "xml", "--message-file", path}, want: clierr.ExitUsage},
		{name: "negative limit", args: []string{"check", "--limit", "-1", "--message-file", path}, want: clierr.ExitUsage},
		{name: "unknown flag", args: []string{"check", "--nope"}, want: clierr.ExitUsage},
		{name: "missing config file", args: []string{"--config", filepath.Join(dir, "missing.yaml"), "check", "--message-file", path}, want: clierr.ExitUsage},
		{name: "missing message file", args: []string{"check", "--message-file", filepath.Join(dir, "missing")}, want: clierr.ExitSource},
		{name: "outside a repository", args: []string{"check"}, want: clierr.ExitSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.want, clierr.ExitCodeOf(err))
		})
	}
}

func TestCheck_Repository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := isolate(t)

	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "Test User")
	runGit(t, dir, "config", "commit.gpgsign", "false")
	commitFile(t, dir, "a.txt", "Initial commit")
	runGit(t, dir, "branch", "base")
	commitFile(t, dir, "b.txt", "Add the second file.")
	commitFile(t, dir, "c.txt", "third")

	cfgPath := filepath.Join(t.TempDir(), "lint.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("warn: [subject_period]\n"), 0644))

	out, err := execute(t, "", "--config", cfgPath, "check", "--base", "base", "--short", "--format", "json")
	require.Error(t, err)
	assert.Equal(t, clierr.ExitLintFailed, clierr.ExitCodeOf(err))

	report := decodeReport(t, out)
	require.Len(t, report.Errors, 2)
	assert.True(t, strings.HasPrefix(report.Errors[0], lint.SubjectCap.Message()+"\n"))
	assert.True(t, strings.HasPrefix(report.Errors[1], lint.SubjectWords.Message()+"\n"))
	require.Len(t, report.Warnings, 1)
	assert.True(t, strings.HasPrefix(report.Warnings[0], lint.SubjectPeriod.Message()+"\n"))

	// --limit keeps only the newest commit.
	out, err = execute(t, "", "--config", cfgPath, "check", "--base", "base", "--limit", "1", "--format", "json")
	require.Error(t, err)
	report = decodeReport(t, out)
	assert.Empty(t, report.Warnings)

	// git is stopped once --timeout expires.
	_, err = execute(t, "", "--config", cfgPath, "check", "--base", "base", "--timeout", "1ns")
	require.Error(t, err)
	assert.Equal(t, clierr.ExitSource, clierr.ExitCodeOf(err))

	// The repository file is picked up without --config.
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte("disable: all\n"), 0644))
	out, err = execute(t, "", "check", "--base", "base", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, []string{lint.NoopMessage}, decodeReport(t, out).Warnings)
}

func TestCheck_TextOutput(t *testing.T) {
	dir := isolate(t)
	path := writeMessage(t, dir, "add the parser\n")

	out, err := execute(t, "", "check", "--message-file", path)
	require.Error(t, err)
	assert.Contains(t, out, lint.SubjectCap.Message())
	assert.Contains(t, out, "    "+path+"\n")
	assert.Contains(t, out, "1 commit(s) checked: 1 error(s), 0 warning(s)")
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
}

func commitFile(t *testing.T, dir, name, message string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0644))
	runGit(t, dir, "add", name)
	runGit(t, dir, "commit", "-q", "-m", message)
}
