// Package algo has the ordering rules applied to report rows.
package algo

import (
	"cmp"
	"slices"

	"github.com/huangsam/gitreports/schema"
)

// RankAuthors sorts authors by LOC, then Files, then Name, all descending,
// keeping the input order of full ties. A positive limit keeps only the top
// 'limit' authors; zero keeps all of them.
func RankAuthors(authors []schema.AuthorResult, limit int) []schema.AuthorResult {
	slices.SortStableFunc(authors, func(a, b schema.AuthorResult) int {
		if c := cmp.Compare(b.LOC, a.LOC); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Files, a.Files); c != 0 {
			return c
		}
		return cmp.Compare(b.Name, a.Name)
	})
	return truncate(authors, limit)
}

// RankRawTotals sorts unreconciled history totals by commits descending and
// then by key ascending.
func RankRawTotals(totals []schema.RawAuthorTotals, limit int) []schema.RawAuthorTotals {
	slices.SortStableFunc(totals, func(a, b schema.RawAuthorTotals) int {
		if c := cmp.Compare(b.Commits, a.Commits); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return truncate(totals, limit)
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
