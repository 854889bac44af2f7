package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bartekus/commitlint/cmd/commitlint/internal/clierr"
	"github.com/bartekus/commitlint/internal/config"
)

func TestConfigInitAndShow(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0755))

	out, err := execute(t, "", "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, config.FileName)

	_, err = os.Stat(filepath.Join(dir, config.FileName))
	require.NoError(t, err)

	_, err = execute(t, "", "config", "init")
	require.Error(t, err)
	assert.Equal(t, clierr.ExitUsage, clierr.ExitCodeOf(err))

	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte("warn: all\nlimit: 3\n"), 0644))

	out, errOut, err := executeAll(t, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, errOut, config.FileName)
	assert.Equal(t, "warn: all\nlimit: 3\n", out)

	var shown map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &shown))
	assert.Equal(t, "all", shown["warn"])

	t.Setenv("COMMITLINT_LIMIT", "7")
	out, err = execute(t, "", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "limit: 7\n")

	_, errOut, err = executeAll(t, "", "config", "init", "--force")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Overwriting existing config file")
}

func TestConfigShow_Defaults(t *testing.T) {
	isolate(t)

	out, errOut, err := executeAll(t, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, errOut, "(none)")
	assert.NotContains(t, out, "Config file")
	assert.Contains(t, out, "defaults")
}

func TestConfigInit_OutsideRepository(t *testing.T) {
	isolate(t)

	_, err := execute(t, "", "config", "init")
	require.Error(t, err)
	assert.Equal(t, clierr.ExitUsage, clierr.ExitCodeOf(err))
}

func TestChecksCommand(t *testing.T) {
	out, err := execute(t, "", "checks", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"checks":[
		{"id":"subject_cap","message":"Please start commit message subject with capital letter."},
		{"id":"subject_words","message":"Please use more than one word."},
		{"id":"subject_length","message":"Please limit commit subject line to 50 characters."},
		{"id":"subject_period","message":"Please remove period from end of commit subject line."},
		{"id":"empty_line","message":"Please separate subject from body with newline."}
	]}`, out)

	out, err = execute(t, "", "checks")
	require.NoError(t, err)
	assert.Contains(t, out, "empty_line")
}
