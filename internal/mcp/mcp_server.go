// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/gitreports/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// NewMCPServer initializes and configures the gitreports MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, client contract.GitClient, logger *zap.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		"Git Reports Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		client:  client,
		logger:  logger,
	}

	// --- 1. Tool: get_author_stats ---
	s.AddTool(mcp.NewTool("get_author_stats",
		mcp.WithDescription("Per-author commits, added/deleted lines and the lines and files each author owns in the working tree."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to the server's repository).")),
		mcp.WithString("history_strategy", mcp.Description("How added/deleted totals are collected."), mcp.Enum("per-email", "single-pass")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of authors returned.")),
	), h.handleGetAuthorStats)

	// --- 2. Tool: get_raw_log ---
	s.AddTool(mcp.NewTool("get_raw_log",
		mcp.WithDescription("Unreconciled non-merge history totals per 'Name <email>' identity."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of identities returned.")),
	), h.handleGetRawLog)

	return s
}

// StartMCPServer serves the gitreports tools over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, client contract.GitClient, logger *zap.Logger) error {
	s := NewMCPServer(baseCfg, client, logger)
	return server.ServeStdio(s)
}
