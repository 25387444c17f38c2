// Package schema has models and constants shared by all parts of gitreports.
package schema

import "time"

// AuthorResult is a point-in-time copy of one reconciled author.
// It is what ranking, rendering and the MCP server operate on.
type AuthorResult struct {
	Name       string   `json:"name" yaml:"name"`
	Emails     []string `json:"emails" yaml:"emails"`
	LOC        int      `json:"loc" yaml:"loc"`
	Commits    int      `json:"commits" yaml:"commits"`
	Files      int      `json:"files" yaml:"files"`
	LocAdded   int      `json:"loc_added" yaml:"loc_added"`
	LocDeleted int      `json:"loc_deleted" yaml:"loc_deleted"`
}

// IsZero reports whether every metric of the author is zero.
func (r AuthorResult) IsZero() bool {
	return r.LOC == 0 && r.Commits == 0 && r.Files == 0 && r.LocAdded == 0 && r.LocDeleted == 0
}

// RawAuthorTotals holds history totals for one literal "Name <email>" key
// before any identity reconciliation.
type RawAuthorTotals struct {
	Key     string `json:"key" yaml:"key"`
	Email   string `json:"email" yaml:"email"`
	Commits int    `json:"commits" yaml:"commits"`
	Added   int    `json:"added" yaml:"added"`
	Deleted int    `json:"deleted" yaml:"deleted"`
	Own     int    `json:"own" yaml:"own"`
}

// CommitStat is the parsed contribution of a single commit.
type CommitStat struct {
	AuthorKey string
	Added     int
	Deleted   int
}

// BlameLine is the author of one line in the working-tree snapshot.
type BlameLine struct {
	Name  string
	Email string
}

// ShortlogEntry is one parsed line of `git shortlog -se`.
type ShortlogEntry struct {
	Commits int
	Name    string
	Email   string
}

// ReportSummary carries run-level facts shown next to the table.
type ReportSummary struct {
	RepoPath        string          `json:"repo_path" yaml:"repo_path"`
	Authors         int             `json:"authors" yaml:"authors"`
	FilesBlamed     int             `json:"files_blamed" yaml:"files_blamed"`
	UnknownBlamed   []string        `json:"unknown_blamed,omitempty" yaml:"unknown_blamed,omitempty"`
	HistoryStrategy HistoryStrategy `json:"history_strategy" yaml:"history_strategy"`
	Duration        time.Duration   `json:"duration" yaml:"duration"`
}

// Report is the complete output of one report-generation run.
type Report struct {
	Authors []AuthorResult `json:"authors" yaml:"authors"`
	Summary ReportSummary  `json:"summary" yaml:"summary"`
}
