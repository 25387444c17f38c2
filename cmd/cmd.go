// Package cmd defines the command-line interface for gitreports.
package cmd

import (
	"github.com/huangsam/gitreports/internal/contract"
	"github.com/huangsam/gitreports/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().String("exclude", "", "Comma-separated list of path prefixes or glob patterns to skip during blame")
	rootCmd.PersistentFlags().String("history-strategy", string(schema.PerEmailStrategy), "History collection: per-email or single-pass")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of rows to display (0 = all)")
	rootCmd.PersistentFlags().String("log-format", contract.DefaultLogFormat, "Log format: console or structured")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or yaml")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Bool("progress", false, "Show a progress bar while blaming files")
	rootCmd.PersistentFlags().Bool("totals", false, "Append a row with column totals")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}
}
