package cmd

import (
	"github.com/huangsam/gitreports/core"
	"github.com/spf13/cobra"
)

// logCmd prints history totals per literal "Name <email>" identity.
var logCmd = &cobra.Command{
	Use:   "log [repo-path]",
	Short: "Show non-merge history totals per raw Git identity.",
	Long: `Aggregate the non-merge history in a single pass and print commits,
lines added and lines deleted for every "Name <email>" pair exactly as Git
recorded it, without reconciling identities or blaming the working tree.

Useful for spotting authors that commit under several names or emails.

Examples:
  gitreports log
  gitreports log ~/src/project --limit 20 --totals
  gitreports log --output csv --output-file identities.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("Cannot aggregate raw log", core.ExecuteRawLog),
}
