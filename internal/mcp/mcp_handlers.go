package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/gitreports/core"
	"github.com/huangsam/gitreports/internal/contract"
	"github.com/huangsam/gitreports/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	client  contract.GitClient
	logger  *zap.Logger
}

// requestConfig applies the common tool arguments to a copy of the base config.
func (h *toolHandler) requestConfig(ctx context.Context, request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	cfg.Progress = false
	if p := request.GetString("repo_path", ""); p != "" {
		root, err := h.client.GetRepoRoot(ctx, p)
		if err != nil {
			return nil, err
		}
		cfg.RepoPath = root
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.Limit = min(l, contract.MaxResultLimit)
	}
	return cfg, nil
}

func (h *toolHandler) handleGetAuthorStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid repository: %v", err)), nil
	}
	if s := request.GetString("history_strategy", ""); s != "" {
		strategy := schema.HistoryStrategy(s)
		if _, ok := schema.ValidHistoryStrategies[strategy]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid history strategy %q", s)), nil
		}
		cfg.HistoryStrategy = strategy
	}

	report, err := core.GetAuthorReport(ctx, cfg, h.client, h.logger)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("report failed: %v", err)), nil
	}

	authors := report.Authors
	if cfg.Limit > 0 && len(authors) > cfg.Limit {
		authors = authors[:cfg.Limit]
	}
	jsonData, _ := json.MarshalIndent(schema.EnrichAuthors(authors), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetRawLog(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid repository: %v", err)), nil
	}

	assembler := core.NewAssembler(h.client, nil, core.Options{
		RepoPath: cfg.RepoPath,
		Workers:  cfg.Workers,
		Excludes: cfg.Excludes,
		Logger:   h.logger,
	})
	rows, err := assembler.RawLog(ctx, cfg.Limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("log aggregation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(rows, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
