package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/huangsam/gitreports/core"
	"github.com/huangsam/gitreports/internal/contract"
	"github.com/huangsam/gitreports/internal/logging"
	"github.com/huangsam/gitreports/internal/outwriter"
	"github.com/huangsam/gitreports/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// client is the git gateway shared by every command.
var client contract.GitClient = contract.NewLocalGitClient()

// logger is built from the validated log level and format.
var logger = zap.NewNop()

// rootCmd prints the author report for the repository at [repo-path].
var rootCmd = &cobra.Command{
	Use:   "gitreports [repo-path]",
	Short: "Report per-author contributions of a Git repository.",
	Long: `Gitreports reconciles the identities found in Git history and reports,
for every author, the non-merge commits, lines added and deleted, and the lines
and files they own in the current working tree.

Examples:
  # Report on the repository in the current directory
  gitreports

  # Top 10 authors of another repository, with a totals row
  gitreports ~/src/project --limit 10 --totals

  # Collect history with one log pass instead of one query per email
  gitreports --history-strategy single-pass

  # Export to JSON
  gitreports --output json --output-file authors.json`,
	Version:            version,
	Args:               cobra.MaximumNArgs(1),
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	PreRunE:            sharedSetupWrapper,
	Run:                runExecutor("Cannot build author report", core.ExecuteReport),
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".gitreports")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	viper.SetEnvPrefix("GITREPORTS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("limit", contract.DefaultResultLimit)
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("history-strategy", schema.PerEmailStrategy)
	viper.SetDefault("color", "yes")
	viper.SetDefault("log-level", contract.DefaultLogLevel)
	viper.SetDefault("log-format", contract.DefaultLogFormat)
}

// sharedSetup unmarshals config, runs validation and builds the logger.
func sharedSetup(ctx context.Context, _ *cobra.Command, args []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	if len(args) == 1 {
		input.RepoPathStr = args[0]
	} else {
		input.RepoPathStr = "."
	}

	// 4. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(ctx, cfg, client, input); err != nil {
		return err
	}

	built, err := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	logger = built
	outwriter.ConfigureColors(cfg.UseColors)
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// runExecutor adapts an executor to a cobra Run function that exits on failure.
func runExecutor(failure string, fn core.ExecutorFunc) func(*cobra.Command, []string) {
	return func(_ *cobra.Command, _ []string) {
		defer func() { _ = logger.Sync() }()
		if err := fn(rootCtx, cfg, client, logger); err != nil {
			contract.LogFatal(failure, err)
		}
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
