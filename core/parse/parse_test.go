package parse

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/huangsam/gitreports/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	decomposed := "Jose\u0301"
	composed := "Jos\u00e9"

	assert.Equal(t, composed, NormalizeName(decomposed))
	assert.Equal(t, NormalizeName(composed), NormalizeName(decomposed))
	assert.Equal(t, "Alice", NormalizeName("  Alice \t"))
	assert.Equal(t, "a\uFFFDb", NormalizeName("a\xffb"))
}

func TestParseShortlogLine(t *testing.T) {
	tests := []struct {
		line   string
		want   schema.ShortlogEntry
		wantOK bool
	}{
		{"    12\tAlice Example <alice@example.com>", schema.ShortlogEntry{Commits: 12, Name: "Alice Example", Email: "alice@example.com"}, true},
		{"1\tBob <bob@example.com>", schema.ShortlogEntry{Commits: 1, Name: "Bob", Email: "bob@example.com"}, true},
		{"\tNo Count <nc@example.com>", schema.ShortlogEntry{Commits: 0, Name: "No Count", Email: "nc@example.com"}, true},
		{"     3\tEmpty Mail <>", schema.ShortlogEntry{Commits: 3, Name: "Empty Mail", Email: ""}, true},
		{"garbage line", schema.ShortlogEntry{}, false},
		{"", schema.ShortlogEntry{}, false},
		{"  4\t <who@example.com>", schema.ShortlogEntry{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseShortlogLine(tt.line)
		assert.Equal(t, tt.wantOK, ok, tt.line)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ParseShortlogLine(%q) mismatch (-want +got):\n%s", tt.line, diff)
		}
	}
}

func TestParseShortlog(t *testing.T) {
	out := []byte("     5\tAlice <a@x.io>\r\n     2\tBob <b@x.io>\nnot a shortlog line\n")
	want := []schema.ShortlogEntry{
		{Commits: 5, Name: "Alice", Email: "a@x.io"},
		{Commits: 2, Name: "Bob", Email: "b@x.io"},
	}
	if diff := cmp.Diff(want, ParseShortlog(out)); diff != "" {
		t.Errorf("ParseShortlog mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, ParseShortlog(nil))
}

func TestParseNumstatLine(t *testing.T) {
	tests := []struct {
		line           string
		added, deleted int
		ok             bool
	}{
		{"10\t3\tmain.go", 10, 3, true},
		{"0\t0\tempty.txt", 0, 0, true},
		{"-\t-\tlogo.png", 0, 0, true},
		{"4\t1\tdir/with\ttab.txt", 4, 1, true},
		{"x\t1\tbad.go", 0, 0, false},
		{"12\tmissing-path", 0, 0, false},
		{"Author: Alice <a@x.io>", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tt := range tests {
		added, deleted, ok := ParseNumstatLine(tt.line)
		assert.Equal(t, tt.ok, ok, tt.line)
		assert.Equal(t, tt.added, added, tt.line)
		assert.Equal(t, tt.deleted, deleted, tt.line)
	}
}

func TestSplitCommits(t *testing.T) {
	out := []byte("preamble\ncommit aaa\nAuthor: A <a@x.io>\n\n1\t0\tf\ncommit bbb\nAuthor: B <b@x.io>\n")
	segments := SplitCommits(out)
	want := []string{
		"commit aaa\nAuthor: A <a@x.io>\n\n1\t0\tf\n",
		"commit bbb\nAuthor: B <b@x.io>\n",
	}
	if diff := cmp.Diff(want, segments); diff != "" {
		t.Errorf("SplitCommits mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, SplitCommits(nil))
}

func TestParseCommitSegment(t *testing.T) {
	t.Run("sums numstat lines", func(t *testing.T) {
		stat, ok := ParseCommitSegment("commit aaa\nAuthor: Alice <a@x.io>\n\n10\t2\ta.go\n-\t-\tlogo.png\n5\t1\tb.go\n")
		assert.True(t, ok)
		want := schema.CommitStat{AuthorKey: "Alice <a@x.io>", Added: 15, Deleted: 3}
		if diff := cmp.Diff(want, stat); diff != "" {
			t.Errorf("ParseCommitSegment mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("commit without file changes", func(t *testing.T) {
		stat, ok := ParseCommitSegment("commit aaa\nAuthor: Alice <a@x.io>\n")
		assert.True(t, ok)
		assert.Equal(t, 0, stat.Added)
		assert.Equal(t, 0, stat.Deleted)
	})

	t.Run("missing author is skipped", func(t *testing.T) {
		_, ok := ParseCommitSegment("commit aaa\n\n1\t1\ta.go\n")
		assert.False(t, ok)
	})
}

func TestSplitAuthorKey(t *testing.T) {
	name, email, ok := SplitAuthorKey("Alice Example <alice@example.com>")
	assert.True(t, ok)
	assert.Equal(t, "Alice Example", name)
	assert.Equal(t, "alice@example.com", email)

	name, email, ok = SplitAuthorKey("Nobody <>")
	assert.True(t, ok)
	assert.Equal(t, "Nobody", name)
	assert.Empty(t, email)

	_, _, ok = SplitAuthorKey("no brackets here")
	assert.False(t, ok)
}

func TestParseBlamePorcelain(t *testing.T) {
	out := []byte(strings.Join([]string{
		"b486b57e0000000000000000000000000000000a 1 1 2",
		"author Alice Example",
		"author-mail <alice@example.com>",
		"author-time 1700000000",
		"author-tz +0100",
		"summary add notes",
		"boundary",
		"filename notes (old).txt",
		"\tauthor Mallory",
		"b486b57e0000000000000000000000000000000a 2 2",
		"author Alice Example",
		"author-mail <alice@example.com>",
		"previous 1111111111111111111111111111111111111111 notes (old).txt",
		"filename notes (old).txt",
		"\t",
		"c0ffee000000000000000000000000000000000b 3 3 1",
		"author Jose\u0301",
		"author-mail <jose@example.com>",
		"filename notes.txt",
		"\tx := (1)",
		"d00d00000000000000000000000000000000000c 4 4 1",
		"author-mail <ghost@example.com>",
		"\tno author header",
	}, "\n") + "\n")

	want := []schema.BlameLine{
		{Name: "Alice Example", Email: "alice@example.com"},
		{Name: "Alice Example", Email: "alice@example.com"},
		{Name: "Jos\u00e9", Email: "jose@example.com"},
	}
	if diff := cmp.Diff(want, ParseBlamePorcelain(out)); diff != "" {
		t.Errorf("ParseBlamePorcelain mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, ParseBlamePorcelain(nil))
}

func TestAuthorKey(t *testing.T) {
	key := AuthorKey("Alice", "a@x.io")
	assert.Equal(t, "Alice <a@x.io>", key)

	name, email, ok := SplitAuthorKey(key)
	require.True(t, ok)
	assert.Equal(t, "Alice", name)
	assert.Equal(t, "a@x.io", email)
}

func TestParseStatusPaths(t *testing.T) {
	out := []byte(" M modified.go\x00?? new file.txt\x00R  renamed.go\x00original.go\x00A  added.go\x00")
	want := []string{"modified.go", "new file.txt", "renamed.go", "original.go", "added.go"}
	if diff := cmp.Diff(want, ParseStatusPaths(out)); diff != "" {
		t.Errorf("ParseStatusPaths mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, ParseStatusPaths(nil))
}

func TestSplitNUL(t *testing.T) {
	assert.Equal(t, []string{"a.go", "dir/b c.go"}, SplitNUL([]byte("a.go\x00dir/b c.go\x00")))
	assert.Empty(t, SplitNUL([]byte("\x00")))
}
