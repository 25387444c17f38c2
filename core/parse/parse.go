// Package parse turns the semi-structured text git prints into typed records.
//
// Every line-level parser returns a comma-ok pair: a record and true when the
// input was recognized, or the zero value and false when the input should be
// skipped. Callers drop skipped input; nothing here returns an error.
package parse

import (
	"bufio"
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/huangsam/gitreports/schema"
	"golang.org/x/text/unicode/norm"
)

var (
	shortlogPattern = regexp.MustCompile(`^\s*(\d*)\t(.*) <(.*)>`)
	keyPattern      = regexp.MustCompile(`^(.*) <([^<>]*)>$`)
)

const (
	commitPrefix = "commit "
	authorPrefix = "Author: "

	blameAuthorPrefix = "author "
	blameMailPrefix   = "author-mail "
)

// NormalizeName trims a display name, replaces invalid UTF-8 and converts it
// to Unicode NFC so that shortlog and blame spellings compare equal.
func NormalizeName(name string) string {
	name = strings.ToValidUTF8(strings.TrimSpace(name), "\uFFFD")
	return norm.NFC.String(name)
}

// Lines splits output into lines without trailing carriage returns.
func Lines(out []byte) []string {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	return lines
}

// SplitNUL splits NUL-terminated output such as `ls-files -z`. Empty fields are dropped.
func SplitNUL(out []byte) []string {
	var fields []string
	for field := range bytes.SplitSeq(out, []byte{0}) {
		if len(field) > 0 {
			fields = append(fields, string(field))
		}
	}
	return fields
}

// ParseShortlogLine parses one `shortlog -se` line: "<count>\t<name> <email>".
func ParseShortlogLine(line string) (schema.ShortlogEntry, bool) {
	m := shortlogPattern.FindStringSubmatch(line)
	if m == nil {
		return schema.ShortlogEntry{}, false
	}
	name := NormalizeName(m[2])
	if name == "" {
		return schema.ShortlogEntry{}, false
	}
	commits := 0
	if m[1] != "" {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return schema.ShortlogEntry{}, false
		}
		commits = n
	}
	return schema.ShortlogEntry{Commits: commits, Name: name, Email: strings.TrimSpace(m[3])}, true
}

// ParseShortlog parses every recognized line of `shortlog -se` output.
func ParseShortlog(out []byte) []schema.ShortlogEntry {
	var entries []schema.ShortlogEntry
	for _, line := range Lines(out) {
		if entry, ok := ParseShortlogLine(line); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// ParseNumstatLine parses "<added>\t<deleted>\t<path>". Binary files report
// "-" for both counts, which counts as zero.
func ParseNumstatLine(line string) (added, deleted int, ok bool) {
	fields := strings.SplitN(line, "\t", 3)
	if len(fields) != 3 {
		return 0, 0, false
	}
	added, ok = numstatCount(fields[0])
	if !ok {
		return 0, 0, false
	}
	deleted, ok = numstatCount(fields[1])
	if !ok {
		return 0, 0, false
	}
	return added, deleted, true
}

func numstatCount(field string) (int, bool) {
	if field == "-" {
		return 0, true
	}
	n, err := strconv.Atoi(field)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// SplitCommits cuts `log --numstat` output into one segment per commit. Each
// segment starts with its "commit <sha>" line. Text before the first commit
// line is discarded.
func SplitCommits(out []byte) []string {
	var (
		segments []string
		current  strings.Builder
		started  bool
	)
	for _, line := range Lines(out) {
		if strings.HasPrefix(line, commitPrefix) {
			if started {
				segments = append(segments, current.String())
				current.Reset()
			}
			started = true
		}
		if !started {
			continue
		}
		current.WriteString(line)
		current.WriteByte('\n')
	}
	if started {
		segments = append(segments, current.String())
	}
	return segments
}

// ParseCommitSegment extracts the author key and the summed numstat counts of
// one commit segment. A segment without an author line is skipped.
func ParseCommitSegment(segment string) (schema.CommitStat, bool) {
	var (
		stat      schema.CommitStat
		hasAuthor bool
	)
	for line := range strings.SplitSeq(segment, "\n") {
		if key, found := strings.CutPrefix(line, authorPrefix); found && !hasAuthor {
			stat.AuthorKey = strings.TrimSpace(key)
			hasAuthor = stat.AuthorKey != ""
			continue
		}
		if added, deleted, ok := ParseNumstatLine(line); ok {
			stat.Added += added
			stat.Deleted += deleted
		}
	}
	if !hasAuthor {
		return schema.CommitStat{}, false
	}
	return stat, true
}

// SplitAuthorKey splits "Name <email>" into its normalized name and its email.
func SplitAuthorKey(key string) (name, email string, ok bool) {
	m := keyPattern.FindStringSubmatch(strings.TrimSpace(key))
	if m == nil {
		return "", "", false
	}
	return NormalizeName(m[1]), strings.TrimSpace(m[2]), true
}

// ParseBlamePorcelain returns the author of every line of `blame --line-porcelain`
// output. Each line's headers come before its tab-prefixed content, so the
// author seen last is emitted when the content arrives. Content without an
// author header is skipped.
func ParseBlamePorcelain(out []byte) []schema.BlameLine {
	var (
		lines   []schema.BlameLine
		current schema.BlameLine
	)
	for _, line := range Lines(out) {
		switch {
		case strings.HasPrefix(line, "\t"):
			if current.Name != "" {
				lines = append(lines, current)
			}
			current = schema.BlameLine{}
		case strings.HasPrefix(line, blameAuthorPrefix):
			current.Name = NormalizeName(strings.TrimPrefix(line, blameAuthorPrefix))
		case strings.HasPrefix(line, blameMailPrefix):
			mail := strings.TrimSpace(strings.TrimPrefix(line, blameMailPrefix))
			current.Email = strings.TrimSuffix(strings.TrimPrefix(mail, "<"), ">")
		}
	}
	return lines
}

// AuthorKey formats the literal "Name <email>" key used by the raw log.
func AuthorKey(name, email string) string {
	return name + " <" + email + ">"
}

// ParseStatusPaths returns every path mentioned by `status --porcelain -z`.
// Each entry is a two-letter status, a space and a path. Renames and copies
// are followed by one extra field holding the source path, which is returned
// as well.
func ParseStatusPaths(out []byte) []string {
	var paths []string
	fields := bytes.Split(out, []byte{0})
	for i := 0; i < len(fields); i++ {
		entry := string(fields[i])
		if len(entry) < 4 {
			continue
		}
		paths = append(paths, entry[3:])
		if entry[0] == 'R' || entry[0] == 'C' || entry[1] == 'R' || entry[1] == 'C' {
			if i+1 < len(fields) && len(fields[i+1]) > 0 {
				paths = append(paths, string(fields[i+1]))
			}
			i++
		}
	}
	return paths
}
