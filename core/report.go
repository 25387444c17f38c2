package core

import (
	"context"
	"os"

	"github.com/huangsam/gitreports/internal/contract"
	"github.com/huangsam/gitreports/internal/outwriter"
	"github.com/huangsam/gitreports/schema"
	"go.uber.org/zap"
)

// ExecutorFunc defines the function signature for the command entry points.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, client contract.GitClient, logger *zap.Logger) error

// GetAuthorReport builds the author report described by cfg without printing it.
func GetAuthorReport(ctx context.Context, cfg *contract.Config, client contract.GitClient, logger *zap.Logger) (*schema.Report, error) {
	assembler := NewAssembler(client, nil, Options{
		RepoPath:        cfg.RepoPath,
		Workers:         cfg.Workers,
		HistoryStrategy: cfg.HistoryStrategy,
		Excludes:        cfg.Excludes,
		Progress:        outwriter.ProgressWriter(cfg.Progress),
		Logger:          logger,
	})
	return assembler.Run(ctx)
}

// ExecuteReport builds the author report and writes it in the configured format.
// It serves as the main entry point of the root command.
func ExecuteReport(ctx context.Context, cfg *contract.Config, client contract.GitClient, logger *zap.Logger) error {
	if cfg.Output == schema.TextOut {
		outwriter.LogReportHeader(os.Stderr, cfg)
	}
	report, err := GetAuthorReport(ctx, cfg, client, logger)
	if err != nil {
		return err
	}
	logger.Info("report assembled",
		zap.Int("authors", report.Summary.Authors),
		zap.Int("files_blamed", report.Summary.FilesBlamed),
		zap.Duration("duration", report.Summary.Duration))
	if err := outwriter.NewOutWriter().WriteReport(report, cfg); err != nil {
		return err
	}
	if cfg.Output == schema.TextOut {
		outwriter.LogReportSummary(os.Stderr, report, cfg)
	}
	return nil
}

// ExecuteRawLog writes the unreconciled "Name <email>" history table.
func ExecuteRawLog(ctx context.Context, cfg *contract.Config, client contract.GitClient, logger *zap.Logger) error {
	assembler := NewAssembler(client, nil, Options{
		RepoPath: cfg.RepoPath,
		Workers:  cfg.Workers,
		Excludes: cfg.Excludes,
		Progress: outwriter.ProgressWriter(cfg.Progress),
		Logger:   logger,
	})
	rows, err := assembler.RawLog(ctx, cfg.Limit)
	if err != nil {
		return err
	}
	logger.Debug("raw log aggregated", zap.Int("identities", len(rows)))
	return outwriter.NewOutWriter().WriteRawLog(rows, cfg)
}
