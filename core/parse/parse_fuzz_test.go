package parse

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// FuzzParseBlamePorcelain checks that every emitted line has a trimmed valid UTF-8 name.
func FuzzParseBlamePorcelain(f *testing.F) {
	f.Add([]byte("abc 1 1 1\nauthor Alice\nauthor-mail <a@x.io>\n\tpackage main\n"))
	f.Add([]byte("author \xff\n\tx\n"))
	f.Add([]byte("\t\n"))

	f.Fuzz(func(t *testing.T, out []byte) {
		for _, line := range ParseBlamePorcelain(out) {
			if line.Name == "" || !utf8.ValidString(line.Name) || line.Name != strings.TrimSpace(line.Name) {
				t.Fatalf("ParseBlamePorcelain(%q) produced %+v", out, line)
			}
		}
	})
}

// FuzzParseCommitSegment checks that counts never go negative.
func FuzzParseCommitSegment(f *testing.F) {
	f.Add("commit a\nAuthor: A <a@x.io>\n1\t2\tf\n")
	f.Add("commit a\n-\t-\tbin\n")

	f.Fuzz(func(t *testing.T, segment string) {
		stat, ok := ParseCommitSegment(segment)
		if ok && (stat.Added < 0 || stat.Deleted < 0) {
			t.Fatalf("negative counts for %q: %+v", segment, stat)
		}
	})
}
