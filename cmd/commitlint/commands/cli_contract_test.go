package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestCLIContract(t *testing.T) {
	cmd := NewRootCmd()
	b := bytes.NewBufferString("")
	cmd.SetOut(b)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("root command failed: %v", err)
	}

	out := b.String()

	requiredCommands := []string{
		"check",
		"checks",
		"completion",
		"config",
		"help",
		"version",
	}

	for _, c := range requiredCommands {
		if !strings.Contains(out, c) {
			t.Errorf("expected top-level command %q in root help", c)
		}
	}
}

func TestCLICommandCheckHelp(t *testing.T) {
	cmd := NewRootCmd()
	b := bytes.NewBufferString("")
	cmd.SetOut(b)
	cmd.SetArgs([]string{"check", "--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("check command failed: %v", err)
	}

	out := b.String()
	for _, flag := range []string{"--base", "--disable", "--fail", "--fail-on-warning", "--format", "--limit", "--message-file", "--range", "--short", "--timeout", "--warn"} {
		if !strings.Contains(out, flag) {
			t.Errorf("expected flag %q in check help", flag)
		}
	}
}
