package identity

import "github.com/huangsam/gitreports/schema"

// Roster is the ordered collection of authors for one report run.
// Membership changes are not synchronized and must happen from one goroutine;
// the authors themselves are safe for concurrent updates.
type Roster struct {
	authors []*Author
	byName  map[string]*Author
}

// NewRoster returns an empty roster.
func NewRoster() *Roster {
	return &Roster{byName: make(map[string]*Author)}
}

// Add merges candidate into the author with the same name, or appends it when
// the name is new. It returns the roster member holding the candidate's data.
func (r *Roster) Add(candidate *Author) *Author {
	if existing, ok := r.byName[candidate.Name()]; ok {
		existing.Merge(candidate)
		return existing
	}
	r.authors = append(r.authors, candidate)
	r.byName[candidate.Name()] = candidate
	return candidate
}

// AddShortlog merges parsed shortlog entries into the roster. When
// countCommits is false the entries only contribute names and emails.
func (r *Roster) AddShortlog(entries []schema.ShortlogEntry, countCommits bool) {
	for _, entry := range entries {
		opts := AuthorOptions{Name: entry.Name, Emails: []string{entry.Email}}
		if countCommits {
			opts.Commits = entry.Commits
		}
		r.Add(NewAuthor(opts))
	}
}

// Find returns the author with the given display name.
func (r *Roster) Find(name string) (*Author, bool) {
	a, ok := r.byName[name]
	return a, ok
}

// FindByEmail returns the first author, in roster order, that owns email.
func (r *Roster) FindByEmail(email string) (*Author, bool) {
	for _, a := range r.authors {
		if a.HasEmail(email) {
			return a, true
		}
	}
	return nil, false
}

// Len returns the number of authors.
func (r *Roster) Len() int {
	return len(r.authors)
}

// Authors returns the authors in insertion order.
func (r *Roster) Authors() []*Author {
	out := make([]*Author, len(r.authors))
	copy(out, r.authors)
	return out
}

// Results snapshots every author in insertion order.
func (r *Roster) Results() []schema.AuthorResult {
	results := make([]schema.AuthorResult, 0, len(r.authors))
	for _, a := range r.authors {
		results = append(results, a.Snapshot())
	}
	return results
}
