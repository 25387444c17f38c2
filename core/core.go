// Package core assembles author reports from git history and the working-tree snapshot.
package core

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/gitreports/core/agg"
	"github.com/huangsam/gitreports/core/algo"
	"github.com/huangsam/gitreports/core/blame"
	"github.com/huangsam/gitreports/core/identity"
	"github.com/huangsam/gitreports/core/parse"
	"github.com/huangsam/gitreports/internal/contract"
	"github.com/huangsam/gitreports/schema"
	"go.uber.org/zap"
)

// Options configures an Assembler.
type Options struct {
	RepoPath        string
	Workers         int
	HistoryStrategy schema.HistoryStrategy
	Excludes        []string
	Progress        io.Writer // nil disables the blame progress bar
	Logger          *zap.Logger
}

// Assembler runs the report stages against one repository:
// verify, discover identities, retrieve history, attribute the snapshot and rank.
type Assembler struct {
	client contract.GitClient
	roster *identity.Roster
	opts   Options
}

// NewAssembler wires an Assembler. A nil roster starts empty.
func NewAssembler(client contract.GitClient, roster *identity.Roster, opts Options) *Assembler {
	if roster == nil {
		roster = identity.NewRoster()
	}
	if opts.Workers <= 0 {
		opts.Workers = contract.DefaultWorkers
	}
	if opts.HistoryStrategy == "" {
		opts.HistoryStrategy = schema.PerEmailStrategy
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Assembler{client: client, roster: roster, opts: opts}
}

// Roster returns the roster the assembler fills.
func (a *Assembler) Roster() *identity.Roster {
	return a.roster
}

// Run executes every stage and returns the ranked active authors.
// Only an unavailable repository or cancellation is fatal; a repository
// without commits yields an empty report.
func (a *Assembler) Run(ctx context.Context) (*schema.Report, error) {
	start := time.Now()
	log := a.opts.Logger
	report := &schema.Report{
		Authors: []schema.AuthorResult{},
		Summary: schema.ReportSummary{RepoPath: a.opts.RepoPath, HistoryStrategy: a.opts.HistoryStrategy},
	}

	if err := a.client.VerifyRepository(ctx, a.opts.RepoPath); err != nil {
		return nil, err
	}

	hasCommits, err := a.client.HasCommits(ctx, a.opts.RepoPath)
	if err != nil {
		return nil, fmt.Errorf("check for commits: %w", err)
	}
	if !hasCommits {
		log.Info("repository has no commits", zap.String("repo", a.opts.RepoPath))
		report.Summary.Duration = time.Since(start)
		return report, nil
	}

	if err := a.discoverIdentities(ctx); err != nil {
		return nil, err
	}
	log.Debug("identities discovered", zap.Int("authors", a.roster.Len()))

	if err := a.retrieveHistory(ctx); err != nil {
		return nil, err
	}

	attribution, err := a.attributeSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	report.Summary.FilesBlamed = attribution.FilesBlamed
	report.Summary.UnknownBlamed = attribution.Assign(a.roster)
	if len(report.Summary.UnknownBlamed) > 0 {
		log.Debug("dropped unknown blame authors", zap.Strings("names", report.Summary.UnknownBlamed))
	}

	report.Authors = schema.FilterActive(algo.RankAuthors(a.roster.Results(), 0))
	report.Summary.Authors = len(report.Authors)
	report.Summary.Duration = time.Since(start)
	return report, nil
}

// discoverIdentities merges both shortlogs into the roster. The pass with
// merges only contributes names and emails; the non-merge pass contributes commits.
func (a *Assembler) discoverIdentities(ctx context.Context) error {
	for _, includeMerges := range []bool{true, false} {
		out, err := a.client.GetShortlog(ctx, a.opts.RepoPath, includeMerges)
		if err != nil {
			return fmt.Errorf("read shortlog: %w", err)
		}
		a.roster.AddShortlog(parse.ParseShortlog(out), !includeMerges)
	}
	return nil
}

func (a *Assembler) retrieveHistory(ctx context.Context) error {
	if a.opts.HistoryStrategy == schema.SinglePassStrategy {
		unrouted, err := agg.RetrieveHistorySinglePass(ctx, a.client, a.opts.RepoPath, a.roster)
		if err != nil {
			return fmt.Errorf("read non-merge log: %w", err)
		}
		for _, total := range unrouted {
			a.opts.Logger.Debug("history without a matching author", zap.String("key", total.Key))
		}
		return nil
	}
	return agg.RetrieveHistory(ctx, a.client, a.opts.RepoPath, a.roster, a.opts.Workers, a.opts.Logger)
}

// attributeSnapshot blames the working tree. A failure other than
// cancellation is logged and leaves every snapshot value at zero.
func (a *Assembler) attributeSnapshot(ctx context.Context) (*blame.Attribution, error) {
	attributor := blame.NewAttributor(a.client, a.opts.RepoPath, blame.Options{
		Workers:  a.opts.Workers,
		Excludes: a.opts.Excludes,
		Progress: a.opts.Progress,
		Logger:   a.opts.Logger,
	})
	attribution, err := attributor.Attribute(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		a.opts.Logger.Warn("snapshot attribution failed", zap.Error(err))
		return blame.NewAttribution(), nil
	}
	return attribution, nil
}

// RawLog returns the unreconciled per "Name <email>" history totals of the
// repository, ranked by commits. Own holds the snapshot lines blamed on the
// same literal key. The roster is not used.
func (a *Assembler) RawLog(ctx context.Context, limit int) ([]schema.RawAuthorTotals, error) {
	repoPath := a.opts.RepoPath
	if err := a.client.VerifyRepository(ctx, repoPath); err != nil {
		return nil, err
	}
	hasCommits, err := a.client.HasCommits(ctx, repoPath)
	if err != nil {
		return nil, fmt.Errorf("check for commits: %w", err)
	}
	if !hasCommits {
		return []schema.RawAuthorTotals{}, nil
	}
	out, err := a.client.GetNonMergeLog(ctx, repoPath)
	if err != nil {
		return nil, fmt.Errorf("read non-merge log: %w", err)
	}

	attribution, err := a.attributeSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	totals := agg.AggregateLog(out)
	rows := make([]schema.RawAuthorTotals, 0, len(totals))
	for _, total := range totals {
		total.Own = attribution.OwnedBy(total.Key)
		rows = append(rows, *total)
	}
	return algo.RankRawTotals(rows, limit), nil
}
