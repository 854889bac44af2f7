// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Commitlint - Commitlint checks the structure of commit messages on a branch and reports grouped, per-rule feedback suitable for pull request reviews.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package lint evaluates commit messages against the fixed set of
// structural checks and builds the grouped status report.
package lint

import (
	"context"
	"strings"
)

// Commit is a single commit as delivered by a CommitSource.
type Commit struct {
	SHA     string `json:"sha"`
	Message string `json:"message"`
}

// CommitSource provides the commits to lint, oldest first.
type CommitSource interface {
	Commits(ctx context.Context) ([]Commit, error)
}

// StaticSource serves a fixed list of commits.
type StaticSource []Commit

// Commits implements CommitSource.
func (s StaticSource) Commits(context.Context) ([]Commit, error) {
	return s, nil
}

// Record is the normalized view of a commit that checks operate on.
type Record struct {
	SHA     string
	Subject string
	// SeparatorMissing is set when the second line of the message is not blank.
	SeparatorMissing bool
}

// NewRecord extracts the subject and separator state from a commit message.
// Only the first two lines are inspected. An empty message yields an empty subject.
func NewRecord(c Commit) Record {
	lines := strings.SplitN(c.Message, "\n", 3)

	rec := Record{
		SHA:     c.SHA,
		Subject: strings.TrimSuffix(lines[0], "\r"),
	}
	if len(lines) > 1 {
		rec.SeparatorMissing = strings.TrimSuffix(lines[1], "\r") != ""
	}
	return rec
}

// NewRecords converts commits to records, preserving order.
func NewRecords(commits []Commit) []Record {
	records := make([]Record, 0, len(commits))
	for _, c := range commits {
		records = append(records, NewRecord(c))
	}
	return records
}
