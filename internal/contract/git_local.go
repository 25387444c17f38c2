package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Log format that brackets each commit with a boundary marker and an author line.
// %aN and %aE apply .mailmap, matching the identities shortlog and blame report.
const nonMergeLogFormat = "--format=commit %H%nAuthor: %aN <%aE>"

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command and returns its stdout output.
// Arguments are handed to git as discrete argv entries and never pass through a shell.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git command failed in %q: %s", repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// GetRepoRoot implements the GitClient interface.
func (c *LocalGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	out, err := c.Run(ctx, contextPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRepositoryUnavailable, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// VerifyRepository implements the GitClient interface.
func (c *LocalGitClient) VerifyRepository(ctx context.Context, contextPath string) error {
	if _, err := c.Run(ctx, contextPath, "rev-parse", "--git-dir"); err != nil {
		return fmt.Errorf("%w: %v", ErrRepositoryUnavailable, err)
	}
	return nil
}

// HasCommits implements the GitClient interface.
func (c *LocalGitClient) HasCommits(ctx context.Context, repoPath string) (bool, error) {
	_, err := c.Run(ctx, repoPath, "rev-parse", "--verify", "--quiet", "HEAD")
	if err == nil {
		return true, nil
	}
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	// An unborn HEAD exits non-zero with no output
	return false, nil
}

// GetNonMergeLog implements the GitClient interface.
func (c *LocalGitClient) GetNonMergeLog(ctx context.Context, repoPath string) ([]byte, error) {
	return c.Run(ctx, repoPath, "log", "--no-merges", "--use-mailmap", "--numstat", nonMergeLogFormat)
}

// GetAuthorNumstat implements the GitClient interface.
// The email is matched as a fixed string wrapped in angle brackets so that
// neither regex metacharacters nor a shared suffix can widen the match.
// The match runs against the .mailmap identity, as shortlog reports it.
func (c *LocalGitClient) GetAuthorNumstat(ctx context.Context, repoPath string, email string) ([]byte, error) {
	if err := checkArgument(email); err != nil {
		return nil, err
	}
	args := []string{
		"log",
		"--no-merges",
		"--use-mailmap",
		"--numstat",
		"--pretty=tformat:",
		"--fixed-strings",
		"--author=<" + email + ">",
	}
	return c.Run(ctx, repoPath, args...)
}

// GetShortlog implements the GitClient interface.
// HEAD is passed explicitly; without a revision shortlog reads from stdin.
func (c *LocalGitClient) GetShortlog(ctx context.Context, repoPath string, includeMerges bool) ([]byte, error) {
	args := []string{"shortlog", "-se"}
	if !includeMerges {
		args = append(args, "--no-merges")
	}
	args = append(args, "HEAD")
	return c.Run(ctx, repoPath, args...)
}

// ListTrackedFiles implements the GitClient interface.
func (c *LocalGitClient) ListTrackedFiles(ctx context.Context, repoPath string) ([]string, error) {
	out, err := c.Run(ctx, repoPath, "ls-files", "-z")
	if err != nil {
		return nil, err
	}
	var files []string
	for f := range strings.SplitSeq(string(out), "\x00") {
		if f != "" {
			files = append(files, f)
		}
	}
	return files, nil
}

// GetStatus implements the GitClient interface.
func (c *LocalGitClient) GetStatus(ctx context.Context, repoPath string) ([]byte, error) {
	return c.Run(ctx, repoPath, "status", "--porcelain", "-z")
}

// GetBlame implements the GitClient interface.
// Porcelain output does not depend on blame.date, blame.showEmail or the
// previous path of renamed lines.
func (c *LocalGitClient) GetBlame(ctx context.Context, repoPath string, path string) ([]byte, error) {
	if err := checkArgument(path); err != nil {
		return nil, err
	}
	return c.Run(ctx, repoPath, "blame", "--line-porcelain", "-w", "--", path)
}

// checkArgument rejects values that cannot be passed through as a single git argument.
func checkArgument(value string) error {
	if value == "" {
		return fmt.Errorf("%w: empty value", ErrUnsafeArgument)
	}
	if strings.ContainsAny(value, "\x00\n\r") {
		return fmt.Errorf("%w: %q contains control characters", ErrUnsafeArgument, value)
	}
	return nil
}
