package cmd

import (
	"github.com/huangsam/gitreports/internal/contract"
	"github.com/huangsam/gitreports/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp [repo-path]",
	Short: "Start the gitreports MCP server",
	Long:  `Launch an MCP server over stdio that lets AI agents request author reports and raw identity logs.`,
	Args:  cobra.MaximumNArgs(1),
	// Stdout carries the protocol, so no report header is printed.
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		defer func() { _ = logger.Sync() }()
		if err := mcp.StartMCPServer(rootCtx, cfg, client, logger); err != nil {
			contract.LogFatal("MCP server stopped", err)
		}
	},
}
