// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Commitlint - Commitlint checks the structure of commit messages on a branch and reports grouped, per-rule feedback suitable for pull request reviews.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/bartekus/commitlint/internal/lint"
	"github.com/bartekus/commitlint/internal/output"
)

type checkListItem struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// newChecksCommand returns the `commitlint checks` command.
func newChecksCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "checks",
		Short: "List the available checks in report order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !asJSON {
				ui := &output.UI{Out: cmd.OutOrStdout(), ErrOut: cmd.ErrOrStderr()}
				ui.Checks()
				return nil
			}

			ids := lint.Checks()
			list := make([]checkListItem, 0, len(ids))
			for _, id := range ids {
				list = append(list, checkListItem{ID: string(id), Message: id.Message()})
			}
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(map[string]any{"checks": list})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output results in JSON")
	return cmd
}
