package contract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/huangsam/gitreports/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 0 // 0 renders every active author
	MaxResultLimit     = 1000
	DefaultLogLevel    = "warn"
	DefaultLogFormat   = "console"
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// validLogLevels and validLogFormats mirror what internal/logging accepts.
var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"console", "structured"}
)

// Config holds the runtime configuration for a report.
// This struct is the "final, validated" config.
type Config struct {
	RepoPath        string
	Workers         int
	Output          schema.OutputMode
	OutputFile      string
	Excludes        []string
	HistoryStrategy schema.HistoryStrategy
	Limit           int
	Totals          bool
	Progress        bool
	UseColors       bool
	LogLevel        string
	LogFormat       string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoPathStr string

	OutputFile      string `mapstructure:"output-file"`
	Output          string `mapstructure:"output"`
	Limit           int    `mapstructure:"limit"`
	Workers         int    `mapstructure:"workers"`
	Exclude         string `mapstructure:"exclude"`
	HistoryStrategy string `mapstructure:"history-strategy"`
	Totals          bool   `mapstructure:"totals"`
	Progress        bool   `mapstructure:"progress"`
	Color           string `mapstructure:"color"`
	LogLevel        string `mapstructure:"log-level"`
	LogFormat       string `mapstructure:"log-format"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Excludes != nil {
		clone.Excludes = slices.Clone(c.Excludes)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateLogging(cfg, input); err != nil {
		return err
	}
	return resolveGitPath(ctx, cfg, client, input)
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Totals = input.Totals
	cfg.Progress = input.Progress

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Limit < 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 0 and %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.Limit = input.Limit

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, yaml", input.Output)
	}

	cfg.HistoryStrategy = schema.HistoryStrategy(strings.ToLower(input.HistoryStrategy))
	if _, ok := schema.ValidHistoryStrategies[cfg.HistoryStrategy]; !ok {
		return fmt.Errorf("invalid history strategy '%s'. must be per-email, single-pass", input.HistoryStrategy)
	}

	cfg.Excludes = nil
	if input.Exclude != "" {
		for p := range strings.SplitSeq(input.Exclude, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				cfg.Excludes = append(cfg.Excludes, trimmed)
			}
		}
	}

	return nil
}

// validateLogging normalizes the log level and format.
func validateLogging(cfg *Config, input *ConfigRawInput) error {
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(input.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if !slices.Contains(validLogLevels, cfg.LogLevel) {
		return fmt.Errorf("invalid log level '%s'. must be %s", input.LogLevel, strings.Join(validLogLevels, ", "))
	}

	cfg.LogFormat = strings.ToLower(strings.TrimSpace(input.LogFormat))
	if cfg.LogFormat == "" {
		cfg.LogFormat = DefaultLogFormat
	}
	if !slices.Contains(validLogFormats, cfg.LogFormat) {
		return fmt.Errorf("invalid log format '%s'. must be %s", input.LogFormat, strings.Join(validLogFormats, ", "))
	}
	return nil
}

// resolveGitPath resolves the repository root for the requested path.
// A file path resolves through its parent directory.
func resolveGitPath(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	searchPath := input.RepoPathStr
	if searchPath == "" {
		searchPath = "."
	}
	absSearchPath, err := filepath.Abs(searchPath)
	if err != nil {
		return err
	}
	absSearchPath = filepath.Clean(absSearchPath)

	gitContextPath := absSearchPath
	if info, statErr := os.Stat(absSearchPath); statErr == nil && !info.IsDir() {
		gitContextPath = filepath.Dir(absSearchPath)
	}

	gitRoot, err := client.GetRepoRoot(ctx, gitContextPath)
	if err != nil {
		return err
	}
	cfg.RepoPath = gitRoot
	return nil
}
