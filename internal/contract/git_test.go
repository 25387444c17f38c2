package contract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/huangsam/gitreports/internal/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMockGitClient_Run ensures the mock correctly records and returns
// expected values when its Run method is called.
func TestMockGitClient_Run(t *testing.T) {
	mockClient := new(MockGitClient)

	const expectedRepoPath = "/path/to/repo"
	expectedArgs := []string{"log", "-1", "--oneline"}
	expectedOutput := []byte("a1b2c3d commit message")
	expectedError := errors.New("mocked git error")

	// Run flattens (ctx, repoPath, args...) into a single argument list for m.Called().
	var calledArgs []any
	ctx := context.Background()
	calledArgs = append(calledArgs, ctx, expectedRepoPath)
	for _, arg := range expectedArgs {
		calledArgs = append(calledArgs, arg)
	}

	mockClient.
		On("Run", calledArgs...).
		Return(expectedOutput, expectedError).
		Once()

	actualOutput, actualError := mockClient.Run(ctx, expectedRepoPath, expectedArgs...)

	assert.Equal(t, expectedOutput, actualOutput, "Run should return the programmed output")
	assert.Equal(t, expectedError, actualError, "Run should return the programmed error")
	mockClient.AssertExpectations(t)
}

// TestNewLocalGitClient tests the constructor for LocalGitClient.
func TestNewLocalGitClient(t *testing.T) {
	client := NewLocalGitClient()
	assert.NotNil(t, client, "NewLocalGitClient should return a non-nil client")
	assert.IsType(t, &LocalGitClient{}, client, "NewLocalGitClient should return a LocalGitClient instance")
}

func TestLocalGitClient_Run(t *testing.T) {
	repo := repotest.New(t)
	client := NewLocalGitClient()
	ctx := context.Background()

	tests := []struct {
		name        string
		repoPath    string
		args        []string
		expectError bool
	}{
		{
			name:        "invalid repo path",
			repoPath:    "/nonexistent/path",
			args:        []string{"status"},
			expectError: true,
		},
		{
			name:        "invalid git command",
			repoPath:    repo.Path,
			args:        []string{"invalid-command"},
			expectError: true,
		},
		{
			name:     "valid command",
			repoPath: repo.Path,
			args:     []string{"status", "--porcelain"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Run(ctx, tt.repoPath, tt.args...)
			if tt.expectError {
				assert.Error(t, err, "Run should return an error for %s", tt.name)
			} else {
				assert.NoError(t, err, "Run should not return an error for %s", tt.name)
			}
		})
	}
}

func TestLocalGitClient_VerifyRepository(t *testing.T) {
	repo := repotest.New(t)
	client := NewLocalGitClient()
	ctx := context.Background()

	assert.NoError(t, client.VerifyRepository(ctx, repo.Path))

	err := client.VerifyRepository(ctx, t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRepositoryUnavailable)
}

func TestLocalGitClient_GetRepoRoot(t *testing.T) {
	repo := repotest.New(t)
	repo.WriteFile("sub/dir/file.txt", "hello\n")
	client := NewLocalGitClient()
	ctx := context.Background()

	root, err := client.GetRepoRoot(ctx, repo.Path)
	require.NoError(t, err)
	assert.NotEmpty(t, root)

	nested, err := client.GetRepoRoot(ctx, repo.Path+"/sub/dir")
	require.NoError(t, err)
	assert.Equal(t, root, nested, "GetRepoRoot should resolve nested directories to the same root")

	_, err = client.GetRepoRoot(ctx, "/nonexistent/path")
	assert.ErrorIs(t, err, ErrRepositoryUnavailable)
}

func TestLocalGitClient_HasCommits(t *testing.T) {
	repo := repotest.New(t)
	client := NewLocalGitClient()
	ctx := context.Background()

	has, err := client.HasCommits(ctx, repo.Path)
	require.NoError(t, err)
	assert.False(t, has, "a freshly initialized repository has no commits")

	repo.WriteFile("a.txt", "a\n")
	repo.Commit("Alice", "alice@example.com", "first")

	has, err = client.HasCommits(ctx, repo.Path)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestLocalGitClient_HistoryQueries(t *testing.T) {
	repo := repotest.New(t)
	client := NewLocalGitClient()
	ctx := context.Background()

	repo.WriteFile("a.txt", repotest.Lines("a", 4))
	repo.Commit("Alice", "alice@example.com", "add a")
	repo.WriteFile("b.txt", repotest.Lines("b", 2))
	repo.Commit("Bob", "bob@example.com", "add b")

	t.Run("non-merge log", func(t *testing.T) {
		out, err := client.GetNonMergeLog(ctx, repo.Path)
		require.NoError(t, err)
		text := string(out)
		assert.Equal(t, 2, strings.Count(text, "\ncommit ")+boolToInt(strings.HasPrefix(text, "commit ")))
		assert.Contains(t, text, "Author: Alice <alice@example.com>")
		assert.Contains(t, text, "4\t0\ta.txt")
		assert.Contains(t, text, "2\t0\tb.txt")
	})

	t.Run("author numstat", func(t *testing.T) {
		out, err := client.GetAuthorNumstat(ctx, repo.Path, "alice@example.com")
		require.NoError(t, err)
		assert.Contains(t, string(out), "4\t0\ta.txt")
		assert.NotContains(t, string(out), "b.txt")
	})

	t.Run("author numstat does not treat email as a regex", func(t *testing.T) {
		out, err := client.GetAuthorNumstat(ctx, repo.Path, ".*@example.com")
		require.NoError(t, err)
		assert.Empty(t, strings.TrimSpace(string(out)))
	})

	t.Run("author numstat rejects control characters", func(t *testing.T) {
		_, err := client.GetAuthorNumstat(ctx, repo.Path, "evil\n--all")
		assert.ErrorIs(t, err, ErrUnsafeArgument)
	})

	t.Run("shortlog", func(t *testing.T) {
		out, err := client.GetShortlog(ctx, repo.Path, false)
		require.NoError(t, err)
		assert.Contains(t, string(out), "\tAlice <alice@example.com>")
		assert.Contains(t, string(out), "\tBob <bob@example.com>")
	})
}

func TestLocalGitClient_MailmapIdentities(t *testing.T) {
	repo := repotest.New(t)
	client := NewLocalGitClient()
	ctx := context.Background()

	repo.WriteFile("old.txt", repotest.Lines("o", 3))
	repo.Commit("Al", "al@old.example.com", "old identity")
	repo.WriteFile(".mailmap", "Alice <alice@example.com> Al <al@old.example.com>\n")
	repo.Commit("Alice", "alice@example.com", "add mailmap")

	out, err := client.GetNonMergeLog(ctx, repo.Path)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "al@old.example.com")
	assert.Equal(t, 2, strings.Count(string(out), "Author: Alice <alice@example.com>"))

	out, err = client.GetAuthorNumstat(ctx, repo.Path, "alice@example.com")
	require.NoError(t, err)
	assert.Contains(t, string(out), "3\t0\told.txt")
}

func TestLocalGitClient_WorkingTreeQueries(t *testing.T) {
	repo := repotest.New(t)
	client := NewLocalGitClient()
	ctx := context.Background()

	repo.WriteFile("clean.txt", repotest.Lines("c", 3))
	repo.WriteFile("-dash.txt", repotest.Lines("d", 1))
	repo.WriteFile("with space.txt", repotest.Lines("s", 1))
	repo.Commit("Alice", "alice@example.com", "init")
	repo.WriteFile("untracked.txt", "u\n")

	files, err := client.ListTrackedFiles(ctx, repo.Path)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"clean.txt", "-dash.txt", "with space.txt"}, files)

	status, err := client.GetStatus(ctx, repo.Path)
	require.NoError(t, err)
	assert.Contains(t, string(status), "?? untracked.txt")

	blame, err := client.GetBlame(ctx, repo.Path, "-dash.txt")
	require.NoError(t, err, "paths starting with a dash must not be parsed as options")
	assert.Contains(t, string(blame), "\nauthor Alice\n")
	assert.Contains(t, string(blame), "\nauthor-mail <alice@example.com>\n")

	blame, err = client.GetBlame(ctx, repo.Path, "with space.txt")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(blame), "\n\t"), "one content line per blamed line")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
