// Package config loads lint options from the repository configuration
// file, COMMITLINT_* environment variables and command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/bartekus/commitlint/internal/lint"
)

const (
	// FileName is the configuration file looked up at the repository root.
	FileName = ".commitlint.yaml"

	// EnvPrefix prefixes environment overrides, e.g. COMMITLINT_WARN=all.
	EnvPrefix = "COMMITLINT"

	KeyDisable = "disable"
	KeyWarn    = "warn"
	KeyFail    = "fail"
	KeyLimit   = "limit"
)

// Keys lists the recognized option keys.
var Keys = []string{KeyDisable, KeyWarn, KeyFail, KeyLimit}

var (
	// ErrInvalidConfig indicates a configuration file that cannot be used.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrInvalidLimit indicates a limit that is negative or not a number.
	ErrInvalidLimit = errors.New("config: limit must be a non-negative integer")

	// ErrConfigExists is returned by Init when the target already exists.
	ErrConfigExists = errors.New("config: configuration file already exists")
)

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// File is an explicit configuration file. It must exist.
	File string
	// RepoRoot is searched for FileName when File is empty.
	RepoRoot string
	// Flags, when set, override file and environment values for flags the user changed.
	Flags *pflag.FlagSet
}

// Loaded is the effective configuration and the file it came from, if any.
type Loaded struct {
	Config lint.Configuration
	File   string
}

// Load layers defaults, the configuration file, the environment and flags,
// in increasing order of precedence.
func Load(opts LoadOptions) (*Loaded, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetDefault(KeyLimit, 0)

	file, err := resolveFile(opts)
	if err != nil {
		return nil, err
	}
	if file != "" {
		if err := Validate(file); err != nil {
			return nil, err
		}
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}
	}

	if opts.Flags != nil {
		for _, key := range Keys {
			f := opts.Flags.Lookup(key)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag %s: %w", key, err)
			}
		}
	}

	limit, err := cast.ToIntE(v.Get(KeyLimit))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLimit, err)
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
	}

	cfg := lint.Configuration{
		Disable: lint.ParseSelection(v.GetStringSlice(KeyDisable)...),
		Warn:    lint.ParseSelection(v.GetStringSlice(KeyWarn)...),
		Fail:    lint.ParseSelection(v.GetStringSlice(KeyFail)...),
		Limit:   limit,
	}

	return &Loaded{Config: cfg, File: file}, nil
}

func resolveFile(opts LoadOptions) (string, error) {
	if opts.File != "" {
		if _, err := os.Stat(opts.File); err != nil {
			return "", fmt.Errorf("config file %s: %w", opts.File, err)
		}
		return opts.File, nil
	}
	if opts.RepoRoot == "" {
		return "", nil
	}
	path := filepath.Join(opts.RepoRoot, FileName)
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path, nil
	}
	return "", nil
}

// Validate parses path strictly: unknown keys and malformed selections are rejected.
func Validate(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path chosen by the user
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg lint.Configuration
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return nil
}

// Marshal renders cfg as it would be written in FileName.
func Marshal(cfg lint.Configuration) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling configuration: %w", err)
	}
	if strings.TrimSpace(string(out)) == "{}" {
		return []byte("# defaults: every check enabled, failures are errors, no limit\n"), nil
	}
	return out, nil
}

const starterTemplate = `# commitlint configuration
#
# Check ids: {{ .Checks }}
# disable, warn and fail each take a list of check ids or "{{ .All }}".
# Environment variables {{ .EnvPrefix }}_DISABLE, {{ .EnvPrefix }}_WARN, {{ .EnvPrefix }}_FAIL
# and {{ .EnvPrefix }}_LIMIT override this file; command-line flags override both.

# Checks to skip entirely.
# disable: [subject_period]

# Checks reported as warnings instead of errors.
# warn: {{ .All }}

# Checks that always fail, even when also listed under warn.
# fail: [empty_line]

# Only lint the most recent N commits (0 lints every commit).
# limit: 0
`

// Starter returns the commented configuration written by Init.
func Starter() ([]byte, error) {
	ids := lint.Checks()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}

	tmpl, err := template.New("config").Parse(starterTemplate)
	if err != nil {
		return nil, fmt.Errorf("template parse error: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, map[string]string{
		"Checks":    strings.Join(names, ", "),
		"All":       lint.AllKeyword,
		"EnvPrefix": EnvPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("template execute error: %w", err)
	}
	return buf.Bytes(), nil
}

// Init writes the starter configuration to path. An existing file is only
// replaced when force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, path)
	}

	data, err := Starter()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec // G306: config is meant to be committed
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
