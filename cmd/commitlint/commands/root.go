// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Commitlint - Commitlint checks the structure of commit messages on a branch and reports grouped, per-rule feedback suitable for pull request reviews.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package commands contains the Cobra commands for the commitlint CLI.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bartekus/commitlint/cmd/commitlint/internal/clierr"
	"github.com/bartekus/commitlint/internal/output"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	verbose    bool
	configFile string
}

// NewRootCmd constructs the commitlint root Cobra command.
func NewRootCmd() *cobra.Command {
	version := os.Getenv("COMMITLINT_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "commitlint",
		Short:         "Commitlint - structural checks for commit messages",
		Long:          "Commitlint checks the commits of a branch for capitalized, multi-word, short subjects without a trailing period, separated from the body by a blank line.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return clierr.Wrap(clierr.ExitUsage, "invalid arguments", err)
	})

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default <repo root>/.commitlint.yaml)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of commitlint",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "commitlint version %s\n", version)
		},
	})

	cmd.AddCommand(newCheckCommand(opts))
	cmd.AddCommand(newChecksCommand())
	cmd.AddCommand(newConfigCommand(opts))

	return cmd
}

func (o *rootOptions) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func (o *rootOptions) ui(cmd *cobra.Command) *output.UI {
	return &output.UI{
		Verbose: o.verbose,
		Out:     cmd.OutOrStdout(),
		ErrOut:  cmd.ErrOrStderr(),
	}
}
