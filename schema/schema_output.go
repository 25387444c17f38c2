package schema

// EnrichedAuthorResult adds presentation data to an AuthorResult.
type EnrichedAuthorResult struct {
	Rank         int `json:"rank" yaml:"rank"`
	AuthorResult `yaml:",inline"`
}

// EnrichAuthors adds a 1-based rank to a list of author results.
func EnrichAuthors(authors []AuthorResult) []EnrichedAuthorResult {
	output := make([]EnrichedAuthorResult, len(authors))
	for i, a := range authors {
		output[i] = EnrichedAuthorResult{
			Rank:         i + 1,
			AuthorResult: a,
		}
	}
	return output
}

// FilterActive drops authors whose metrics are all zero.
func FilterActive(authors []AuthorResult) []AuthorResult {
	active := make([]AuthorResult, 0, len(authors))
	for _, a := range authors {
		if a.IsZero() {
			continue
		}
		active = append(active, a)
	}
	return active
}

// Totals sums every numeric column across the given authors.
func Totals(authors []AuthorResult) AuthorResult {
	var total AuthorResult
	for _, a := range authors {
		total.LOC += a.LOC
		total.Commits += a.Commits
		total.Files += a.Files
		total.LocAdded += a.LocAdded
		total.LocDeleted += a.LocDeleted
	}
	return total
}
