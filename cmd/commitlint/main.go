// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Commitlint - Commitlint checks the structure of commit messages on a branch and reports grouped, per-rule feedback suitable for pull request reviews.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package main

import (
	"os"

	"github.com/bartekus/commitlint/cmd/commitlint/commands"
	"github.com/bartekus/commitlint/cmd/commitlint/internal/clierr"
	"github.com/bartekus/commitlint/internal/output"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		output.New().Error("%v", err)
		os.Exit(clierr.ExitCodeOf(err))
	}
}
