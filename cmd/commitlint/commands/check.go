// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Commitlint - Commitlint checks the structure of commit messages on a branch and reports grouped, per-rule feedback suitable for pull request reviews.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package commands

import (
	"errors"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/bartekus/commitlint/cmd/commitlint/internal/clierr"
	"github.com/bartekus/commitlint/internal/config"
	"github.com/bartekus/commitlint/internal/gitlog"
	"github.com/bartekus/commitlint/internal/lint"
	"github.com/bartekus/commitlint/internal/output"
	"github.com/bartekus/commitlint/internal/projectroot"
)

type checkOptions struct {
	base          string
	revRange      string
	messageFile   string
	format        string
	short         bool
	failOnWarning bool
	timeout       time.Duration
}

// newCheckCommand returns the `commitlint check` command.
func newCheckCommand(root *rootOptions) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Lint the commit messages of the current branch",
		Long: `Lint every commit reachable from HEAD but not from the base branch.
Failing commits are grouped under the check they violate. The command exits 1
when any check configured to fail is violated.

With --message-file the single message in that file is linted instead, which
makes the command usable as a commit-msg hook. Use "-" to read from stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, root, opts)
		},
	}

	// Flags in alphabetical order for deterministic help output
	cmd.Flags().StringVar(&opts.base, "base", gitlog.DefaultBase, "branch the commits are compared against")
	cmd.Flags().StringSlice(config.KeyDisable, nil, `checks to skip, or "all"`)
	cmd.Flags().StringSlice(config.KeyFail, nil, `checks that always fail, or "all"`)
	cmd.Flags().BoolVar(&opts.failOnWarning, "fail-on-warning", false, "exit non-zero when warnings are reported")
	cmd.Flags().StringVar(&opts.format, "format", string(output.FormatText), "output format: text, markdown or json")
	cmd.Flags().Int(config.KeyLimit, 0, "only lint the most recent N commits (0 = all)")
	cmd.Flags().StringVar(&opts.messageFile, "message-file", "", `lint the message in this file ("-" for stdin) instead of git history`)
	cmd.Flags().StringVar(&opts.revRange, "range", "", "explicit git revision range (overrides --base)")
	cmd.Flags().BoolVar(&opts.short, "short", false, "report abbreviated commit hashes")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", gitlog.DefaultTimeout, "limit for reading git history")
	cmd.Flags().StringSlice(config.KeyWarn, nil, `checks reported as warnings, or "all"`)

	return cmd
}

func runCheck(cmd *cobra.Command, root *rootOptions, opts *checkOptions) error {
	format, err := output.ParseFormat(opts.format)
	if err != nil {
		return clierr.Wrap(clierr.ExitUsage, "invalid arguments", err)
	}

	logger := root.logger(cmd)

	wd, err := os.Getwd()
	if err != nil {
		return clierr.Wrap(clierr.ExitSource, "resolving working directory", err)
	}
	repoRoot, rootErr := projectroot.Find(wd)

	loaded, err := config.Load(config.LoadOptions{
		File:     root.configFile,
		RepoRoot: repoRoot,
		Flags:    cmd.Flags(),
	})
	if err != nil {
		return clierr.Wrap(clierr.ExitUsage, "loading configuration", err)
	}
	if loaded.File != "" {
		logger.Debug("configuration loaded", "file", loaded.File)
	}

	var src lint.CommitSource
	switch {
	case opts.messageFile != "":
		src, err = messageSource(cmd, opts.messageFile)
		if err != nil {
			return err
		}
	case lint.NewPlan(loaded.Config).Noop():
		// Nothing is read when every check is disabled.
		src = lint.StaticSource{}
	case rootErr != nil:
		return clierr.Wrap(clierr.ExitSource, "locating repository", rootErr)
	default:
		revRange := opts.revRange
		if revRange == "" {
			revRange = gitlog.Range(opts.base)
		}
		src = gitlog.New(repoRoot, revRange,
			gitlog.WithShortSHA(opts.short),
			gitlog.WithTimeout(opts.timeout),
			gitlog.WithLogger(logger),
		)
	}

	outcome, err := lint.NewLinter(src, lint.WithLogger(logger)).Run(cmd.Context(), loaded.Config)
	if err != nil {
		return clierr.Wrap(clierr.ExitSource, "commit lint aborted", err)
	}

	ui := root.ui(cmd)
	if err := ui.Render(format, outcome); err != nil {
		return err
	}

	report := outcome.Report
	if report.Failed() {
		return clierr.Newf(clierr.ExitLintFailed, "commit lint failed: %d error(s)", len(report.Errors))
	}
	if opts.failOnWarning && len(report.Warnings) > 0 {
		return clierr.Newf(clierr.ExitLintFailed, "commit lint failed: %d warning(s) with --fail-on-warning", len(report.Warnings))
	}
	return nil
}

var errTerminalStdin = errors.New("refusing to read a commit message from a terminal")

func messageSource(cmd *cobra.Command, path string) (lint.CommitSource, error) {
	if path != "-" {
		src, err := gitlog.ReadMessageFile(path)
		if err != nil {
			return nil, clierr.Wrap(clierr.ExitSource, "reading message file", err)
		}
		return src, nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return nil, clierr.Wrap(clierr.ExitUsage, "invalid arguments", errTerminalStdin)
	}
	src, err := gitlog.ReadMessage(in, "stdin")
	if err != nil {
		return nil, clierr.Wrap(clierr.ExitSource, "reading message", err)
	}
	return src, nil
}
