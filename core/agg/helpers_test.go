package agg

import (
	"fmt"
	"strings"
)

// gitLogScenario represents a single commit scenario for test data generation.
type gitLogScenario struct {
	commitHash string
	author     string
	files      []fileChange
}

// fileChange represents a single file change in a commit.
type fileChange struct {
	path      string
	additions int
	deletions int
}

// generateTestGitLog creates a `log --numstat` fixture in the format produced
// by GetNonMergeLog.
func generateTestGitLog(scenarios []gitLogScenario) []byte {
	var lines []string
	for _, scenario := range scenarios {
		lines = append(lines, "commit "+scenario.commitHash)
		if scenario.author != "" {
			lines = append(lines, "Author: "+scenario.author)
		}
		lines = append(lines, "")
		for _, file := range scenario.files {
			lines = append(lines, fmt.Sprintf("%d\t%d\t%s", file.additions, file.deletions, file.path))
		}
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}
