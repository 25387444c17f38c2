package core

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/huangsam/gitreports/internal/contract"
	"github.com/huangsam/gitreports/internal/repotest"
	"github.com/huangsam/gitreports/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runReport(t *testing.T, path string, strategy schema.HistoryStrategy) *schema.Report {
	t.Helper()
	a := NewAssembler(contract.NewLocalGitClient(), nil, Options{
		RepoPath:        path,
		Workers:         2,
		HistoryStrategy: strategy,
	})
	report, err := a.Run(context.Background())
	require.NoError(t, err)
	return report
}

func TestAssembler_RunAgainstGit(t *testing.T) {
	repo := repotest.New(t)
	repo.WriteFile("main.go", repotest.Lines("l", 10))
	repo.Commit("Alice", "alice@example.com", "add main")
	repo.WriteFile("main.go", repotest.Lines("l", 7))
	repo.Commit("Alice", "alice@example.com", "trim main")

	report := runReport(t, repo.Path, schema.PerEmailStrategy)
	require.Len(t, report.Authors, 1)

	alice := report.Authors[0]
	assert.Equal(t, "Alice", alice.Name)
	assert.Equal(t, 2, alice.Commits)
	assert.Equal(t, 10, alice.LocAdded)
	assert.Equal(t, 3, alice.LocDeleted)
	assert.Equal(t, 7, alice.LOC)
	assert.Equal(t, 1, alice.Files)
	assert.Equal(t, 1, report.Summary.FilesBlamed)
}

func TestAssembler_RunSkipsMergeCommits(t *testing.T) {
	repo := repotest.New(t)
	repo.WriteFile("a.txt", repotest.Lines("a", 3))
	repo.Commit("Alice", "alice@example.com", "base")
	base := repo.Git("rev-parse", "--abbrev-ref", "HEAD")

	repo.Git("checkout", "-q", "-b", "feature")
	repo.WriteFile("b.txt", repotest.Lines("b", 2))
	repo.Commit("Bob", "bob@example.com", "feature work")

	repo.Git("checkout", "-q", base)
	repo.WriteFile("c.txt", repotest.Lines("c", 4))
	repo.Commit("Alice", "alice@example.com", "mainline work")
	repo.Git("-c", "user.name=Merger", "-c", "user.email=merger@example.com",
		"merge", "-q", "--no-ff", "-m", "merge feature", "feature")

	report := runReport(t, repo.Path, schema.PerEmailStrategy)

	nonMerge, err := strconv.Atoi(repo.Git("rev-list", "--no-merges", "--count", "HEAD"))
	require.NoError(t, err)

	total := 0
	for _, author := range report.Authors {
		assert.NotEqual(t, "Merger", author.Name)
		total += author.Commits
	}
	assert.Equal(t, nonMerge, total)
}

func TestAssembler_StrategiesAgreeAgainstGit(t *testing.T) {
	repo := repotest.New(t)
	repo.WriteFile("a.txt", repotest.Lines("a", 5))
	repo.Commit("Alice", "alice@work.example.com", "first")
	repo.WriteFile("a.txt", repotest.Lines("a", 2))
	repo.WriteFile("b.txt", repotest.Lines("b", 6))
	repo.Commit("Alice", "alice@home.example.com", "second")
	repo.WriteFile("c.txt", repotest.Lines("c", 1))
	repo.Commit("Bob", "bob@example.com", "third")

	// An old identity that .mailmap folds into Alice's work address.
	repo.WriteFile("d.txt", repotest.Lines("d", 4))
	repo.Commit("Al", "al@old.example.com", "fourth")
	repo.WriteFile(".mailmap", "Alice <alice@work.example.com> Al <al@old.example.com>\n")
	repo.Commit("Alice", "alice@work.example.com", "add mailmap")

	perEmail := runReport(t, repo.Path, schema.PerEmailStrategy)
	singlePass := runReport(t, repo.Path, schema.SinglePassStrategy)
	assert.Equal(t, perEmail.Authors, singlePass.Authors)

	require.Len(t, perEmail.Authors, 2)
	alice := perEmail.Authors[0]
	assert.Equal(t, "Alice", alice.Name)
	assert.Equal(t, []string{"alice@home.example.com", "alice@work.example.com"}, alice.Emails)
	assert.Equal(t, 4, alice.Commits)
	assert.Equal(t, 16, alice.LocAdded)
	assert.Equal(t, 3, alice.LocDeleted)
	assert.Equal(t, 13, alice.LOC)
	assert.Equal(t, 4, alice.Files)
}

func TestRawLogAgainstGit(t *testing.T) {
	repo := repotest.New(t)
	repo.WriteFile("a.txt", repotest.Lines("a", 4))
	repo.Commit("Alice", "alice@work.example.com", "first")
	repo.WriteFile("b.txt", repotest.Lines("b", 1))
	repo.Commit("Alice", "alice@home.example.com", "second")

	a := NewAssembler(contract.NewLocalGitClient(), nil, Options{RepoPath: repo.Path, Workers: 2})
	rows, err := a.RawLog(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Alice <alice@home.example.com>", rows[0].Key)
	assert.Equal(t, 1, rows[0].Added)
	assert.Equal(t, 1, rows[0].Own)
	assert.Equal(t, 4, rows[1].Added)
	assert.Equal(t, 4, rows[1].Own)
}

func TestAssembler_HistoryAndSnapshotAreIndependent(t *testing.T) {
	repo := repotest.New(t)
	alice := repotest.Lines("a", 10)
	repo.WriteFile("notes.txt", alice)
	repo.Commit("Alice", "alice@example.com", "draft")

	// Bob rewrites the first five lines.
	lines := strings.SplitAfter(alice, "\n")
	repo.WriteFile("notes.txt", repotest.Lines("b", 5)+strings.Join(lines[5:], ""))
	repo.Commit("Bob", "bob@example.com", "rewrite")

	report := runReport(t, repo.Path, schema.PerEmailStrategy)
	byName := map[string]schema.AuthorResult{}
	for _, author := range report.Authors {
		byName[author.Name] = author
	}

	require.Contains(t, byName, "Alice")
	require.Contains(t, byName, "Bob")
	assert.Equal(t, 5, byName["Alice"].LOC)
	assert.Equal(t, 5, byName["Bob"].LOC)
	assert.Equal(t, 10, byName["Alice"].LocAdded)
	assert.Equal(t, 5, byName["Bob"].LocDeleted)
	for _, author := range byName {
		assert.NotEqual(t, author.LocAdded-author.LocDeleted, author.LOC, author.Name)
	}
}
