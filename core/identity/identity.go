// Package identity models reconciled contributors: one display name that may
// have committed under many email addresses.
package identity

import (
	"slices"
	"sync"

	"github.com/huangsam/gitreports/core/parse"
	"github.com/huangsam/gitreports/schema"
)

// AuthorOptions configures a new Author. Emails defaults to none and Commits to 0.
type AuthorOptions struct {
	Name    string
	Emails  []string
	Commits int
}

// Author is one reconciled contributor. Name never changes after construction.
// Counters are guarded by the author's own mutex so that concurrent history
// queries for different emails of the same author can accumulate safely.
type Author struct {
	name string

	mu         sync.Mutex
	emails     map[string]struct{}
	commits    int
	locAdded   int
	locDeleted int
	loc        int
	files      int
}

// NewAuthor builds an Author from options. The name is normalized and empty
// emails are ignored. Negative commit counts are clamped to zero.
func NewAuthor(opts AuthorOptions) *Author {
	a := &Author{
		name:    parse.NormalizeName(opts.Name),
		emails:  make(map[string]struct{}, len(opts.Emails)),
		commits: max(opts.Commits, 0),
	}
	for _, email := range opts.Emails {
		if email != "" {
			a.emails[email] = struct{}{}
		}
	}
	return a
}

// Name returns the display name used as the reconciliation key.
func (a *Author) Name() string {
	return a.name
}

// Emails returns the known email addresses in sorted order.
func (a *Author) Emails() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sortedEmailsLocked()
}

func (a *Author) sortedEmailsLocked() []string {
	emails := make([]string, 0, len(a.emails))
	for email := range a.emails {
		emails = append(emails, email)
	}
	slices.Sort(emails)
	return emails
}

// Mergeable reports whether other describes the same display name.
func (a *Author) Mergeable(other *Author) bool {
	return other != nil && a != other && a.name == other.name
}

// Merge folds other into a when both share a display name: emails are
// unioned and history counters are summed. It returns false and changes
// nothing when the names differ.
func (a *Author) Merge(other *Author) bool {
	if !a.Mergeable(other) {
		return false
	}

	other.mu.Lock()
	emails := make([]string, 0, len(other.emails))
	for email := range other.emails {
		emails = append(emails, email)
	}
	commits, added, deleted := other.commits, other.locAdded, other.locDeleted
	other.mu.Unlock()

	a.mu.Lock()
	defer a.mu.Unlock()
	for _, email := range emails {
		a.emails[email] = struct{}{}
	}
	a.commits += commits
	a.locAdded += added
	a.locDeleted += deleted
	return true
}

// HasEmail reports whether email is one of the author's aliases.
func (a *Author) HasEmail(email string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.emails[email]
	return ok
}

// AddHistory accumulates added and deleted line counts. Negative values are ignored.
func (a *Author) AddHistory(added, deleted int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.locAdded += max(added, 0)
	a.locDeleted += max(deleted, 0)
}

// AddCommits increases the non-merge commit count.
func (a *Author) AddCommits(n int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.commits += max(n, 0)
}

// SetSnapshot assigns the lines and files currently attributed to the author.
// Snapshot values replace earlier ones rather than accumulating.
func (a *Author) SetSnapshot(loc, files int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.loc = loc
	a.files = files
}

// Snapshot returns an immutable copy of the author's current values.
func (a *Author) Snapshot() schema.AuthorResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	return schema.AuthorResult{
		Name:       a.name,
		Emails:     a.sortedEmailsLocked(),
		LOC:        a.loc,
		Commits:    a.commits,
		Files:      a.files,
		LocAdded:   a.locAdded,
		LocDeleted: a.locDeleted,
	}
}
