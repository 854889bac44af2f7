// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Commitlint - Commitlint checks the structure of commit messages on a branch and reports grouped, per-rule feedback suitable for pull request reviews.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bartekus/commitlint/cmd/commitlint/internal/clierr"
	"github.com/bartekus/commitlint/internal/config"
	"github.com/bartekus/commitlint/internal/projectroot"
)

// newConfigCommand returns the `commitlint config` command group.
func newConfigCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the commitlint configuration",
		Long: `Show or create the commitlint configuration.

Running bare 'commitlint config' is the same as 'commitlint config show'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd, root)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration and where it was read from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd, root)
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create " + config.FileName + " with commented defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd, root, force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config file")
	cmd.AddCommand(initCmd)

	return cmd
}

func runConfigShow(cmd *cobra.Command, root *rootOptions) error {
	repoRoot := ""
	if wd, err := os.Getwd(); err == nil {
		repoRoot, _ = projectroot.Find(wd)
	}

	loaded, err := config.Load(config.LoadOptions{File: root.configFile, RepoRoot: repoRoot})
	if err != nil {
		return clierr.Wrap(clierr.ExitUsage, "loading configuration", err)
	}

	// stdout carries only YAML so it can be piped.
	ui := root.ui(cmd)
	ui.Out = cmd.ErrOrStderr()
	if loaded.File != "" {
		ui.Info("Config file: %s", loaded.File)
	} else {
		ui.Info("Config file: (none)")
	}

	data, err := config.Marshal(loaded.Config)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigInit(cmd *cobra.Command, root *rootOptions, force bool) error {
	path := root.configFile
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		repoRoot, err := projectroot.Find(wd)
		if err != nil {
			return clierr.Wrap(clierr.ExitUsage, "locating repository", err)
		}
		path = filepath.Join(repoRoot, config.FileName)
	}

	ui := root.ui(cmd)
	if _, err := os.Stat(path); err == nil && force {
		ui.Warning("Overwriting existing config file: %s", path)
	}
	if err := config.Init(path, force); err != nil {
		return clierr.Wrap(clierr.ExitUsage, "writing configuration", err)
	}

	ui.Success("Config file created: %s", path)
	return nil
}
