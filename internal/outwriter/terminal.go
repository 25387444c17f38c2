package outwriter

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/fatih/color"
	"github.com/huangsam/gitreports/internal/contract"
	"github.com/huangsam/gitreports/schema"
	"golang.org/x/term"
)

// ConfigureColors enables colored output only when requested and stdout is a terminal.
func ConfigureColors(useColors bool) {
	color.NoColor = !useColors || !term.IsTerminal(int(os.Stdout.Fd()))
}

// ProgressWriter returns stderr when a progress bar was requested and stderr
// is a terminal, or nil otherwise.
func ProgressWriter(enabled bool) io.Writer {
	if !enabled || !term.IsTerminal(int(os.Stderr.Fd())) {
		return nil
	}
	return os.Stderr
}

// LogReportHeader prints a banner describing the run to w.
func LogReportHeader(w io.Writer, cfg *contract.Config) {
	_, _ = contract.HeaderColor.Fprintf(w, "Author report for %s\n", cfg.RepoPath)
	_, _ = contract.SummaryColor.Fprintf(w, "History: %s | Workers: %d | Excludes: %s\n",
		cfg.HistoryStrategy, cfg.Workers, english.Plural(len(cfg.Excludes), "pattern", "patterns"))
	_, _ = fmt.Fprintln(w)
}

// LogReportSummary prints the run summary that follows a text report to w.
func LogReportSummary(w io.Writer, report *schema.Report, cfg *contract.Config) {
	shown := len(limitAuthors(report.Authors, cfg.Limit))
	summary := report.Summary
	_, _ = contract.SummaryColor.Fprintf(w, "Showing %d of %d authors (%s files blamed)\n",
		shown, summary.Authors, humanize.Comma(int64(summary.FilesBlamed)))
	_, _ = contract.SummaryColor.Fprintf(w, "Report completed in %v with %d workers. History strategy: %s\n",
		summary.Duration.Round(time.Millisecond), cfg.Workers, summary.HistoryStrategy)
}
