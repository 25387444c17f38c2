// Package repotest builds throwaway git repositories for tests.
package repotest

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// Repo is a scratch git repository rooted in a test temp dir.
type Repo struct {
	t    testing.TB
	Path string
}

// SkipIfGitNotAvailable skips the test if git binary is not found in PATH.
func SkipIfGitNotAvailable(t testing.TB) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skipf("git binary not found in PATH: %v", err)
	}
}

// New initializes an empty repository isolated from the user's git config.
func New(t testing.TB) *Repo {
	t.Helper()
	SkipIfGitNotAvailable(t)

	t.Setenv("GIT_CONFIG_GLOBAL", os.DevNull)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")

	r := &Repo{t: t, Path: t.TempDir()}
	r.Git("init", "-q")
	return r
}

// Git runs a git command inside the repository and returns its trimmed stdout.
func (r *Repo) Git(args ...string) string {
	r.t.Helper()
	cmd := exec.Command("git", append([]string{"-C", r.Path}, args...)...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		r.t.Fatalf("git %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return strings.TrimSpace(string(out))
}

// WriteFile writes content to a path relative to the repository root.
func (r *Repo) WriteFile(name, content string) {
	r.t.Helper()
	full := filepath.Join(r.Path, name)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		r.t.Fatalf("mkdir %s: %v", name, err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		r.t.Fatalf("write %s: %v", name, err)
	}
}

// Commit stages everything and records a commit by the given author.
func (r *Repo) Commit(name, email, message string) {
	r.t.Helper()
	r.Git("add", "-A")
	r.Git(
		"-c", "user.name="+name,
		"-c", "user.email="+email,
		"commit", "-q", "--allow-empty", "-m", message,
	)
}

// Lines returns n numbered lines joined with newlines, with a trailing newline.
func Lines(prefix string, n int) string {
	var b strings.Builder
	for i := range n {
		b.WriteString(prefix)
		b.WriteString(" ")
		b.WriteString(strings.Repeat("x", i+1))
		b.WriteString("\n")
	}
	return b.String()
}

// Porcelain returns `blame --line-porcelain` output for n lines by one author.
func Porcelain(name, email string, n int) []byte {
	var b strings.Builder
	for i := range n {
		fmt.Fprintf(&b, "%040d %d %d 1\n", i+1, i+1, i+1)
		fmt.Fprintf(&b, "author %s\nauthor-mail <%s>\nauthor-time 1700000000\nauthor-tz +0000\n", name, email)
		fmt.Fprintf(&b, "committer %s\ncommitter-mail <%s>\ncommitter-time 1700000000\ncommitter-tz +0000\n", name, email)
		fmt.Fprintf(&b, "summary change %d\nfilename file.txt\n\tline %d\n", i+1, i+1)
	}
	return []byte(b.String())
}
