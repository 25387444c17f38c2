// Package contract provides interfaces and shared utilities for the gitreports internal architecture.
package contract

import "context"

// GitClient defines the read-only git queries needed to build an author report.
// This allows the core analysis logic to be tested without needing a real git executable.
type GitClient interface {
	// --- Generic / Low-Level ---

	// Run executes a git command and returns its standard output.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// --- Repository Resolution ---

	// GetRepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// VerifyRepository returns an error wrapping ErrRepositoryUnavailable when
	// the path is not inside a git repository.
	VerifyRepository(ctx context.Context, contextPath string) error

	// HasCommits reports whether HEAD resolves to a commit.
	HasCommits(ctx context.Context, repoPath string) (bool, error)

	// --- History ---

	// GetNonMergeLog returns the full non-merge log with per-file numstat lines.
	GetNonMergeLog(ctx context.Context, repoPath string) ([]byte, error)

	// GetAuthorNumstat returns the numstat lines of every non-merge commit by one author email.
	GetAuthorNumstat(ctx context.Context, repoPath string, email string) ([]byte, error)

	// GetShortlog returns `shortlog -se` output, optionally excluding merges.
	GetShortlog(ctx context.Context, repoPath string, includeMerges bool) ([]byte, error)

	// --- Working Tree ---

	// ListTrackedFiles returns every path tracked in the index.
	ListTrackedFiles(ctx context.Context, repoPath string) ([]string, error)

	// GetStatus returns NUL-separated `status --porcelain` output.
	GetStatus(ctx context.Context, repoPath string) ([]byte, error)

	// GetBlame returns the --line-porcelain provenance output of a single file.
	GetBlame(ctx context.Context, repoPath string, path string) ([]byte, error)
}
