// Package agg has aggregation logic for the non-merge history of authors.
package agg

import (
	"github.com/huangsam/gitreports/core/parse"
	"github.com/huangsam/gitreports/schema"
)

// AggregateLog groups the commits of a full `log --numstat` output by their
// literal "Name <email>" key and sums the commits, added and deleted lines of
// each key. Segments without an author line are dropped.
func AggregateLog(out []byte) map[string]*schema.RawAuthorTotals {
	totals := make(map[string]*schema.RawAuthorTotals)
	for _, segment := range parse.SplitCommits(out) {
		stat, ok := parse.ParseCommitSegment(segment)
		if !ok {
			continue
		}
		entry, exists := totals[stat.AuthorKey]
		if !exists {
			entry = &schema.RawAuthorTotals{Key: stat.AuthorKey}
			if _, email, ok := parse.SplitAuthorKey(stat.AuthorKey); ok {
				entry.Email = email
			}
			totals[stat.AuthorKey] = entry
		}
		entry.Commits++
		entry.Added += stat.Added
		entry.Deleted += stat.Deleted
	}
	return totals
}

// SumNumstat adds up every numstat line of a per-email history query.
// Lines that are not numstat lines are ignored, so empty output is (0, 0).
func SumNumstat(out []byte) (added, deleted int) {
	for _, line := range parse.Lines(out) {
		a, d, ok := parse.ParseNumstatLine(line)
		if !ok {
			continue
		}
		added += a
		deleted += d
	}
	return added, deleted
}
