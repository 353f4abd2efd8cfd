package main

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	contextArg      string
	model           string
	reasoningEffort string
	maxTokens       int64
	temperature     float64
	verbose         bool
	cfg             appConfig
	logger          *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "oaipro [flags] query...",
	Short: "Query OpenAI's advanced models from the terminal",
	Long: "oaipro sends a single query to OpenAI's advanced models (o3-pro, o3-mini,\n" +
		"o1-preview, o1-mini, and the gpt family) and prints the response.\n" +
		"Context can be passed as literal text or as a path to a file.",
	Example: `  oaipro "What is machine learning?"
  oaipro "Analyze this code" --context main.go
  oaipro -m o3-mini "Summarize" -c "the text to summarize"
  oaipro "Complex reasoning task" --reasoning-effort high`,
	Version:       version,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !slices.Contains(reasoningEfforts, reasoningEffort) {
			return fmt.Errorf("invalid --reasoning-effort %q (must be one of: %s)",
				reasoningEffort, strings.Join(reasoningEfforts, ", "))
		}
		opts := queryOpts{
			Query:           strings.Join(args, " "),
			Context:         contextArg,
			Model:           model,
			ReasoningEffort: reasoningEffort,
			MaxTokens:       maxTokens,
			Temperature:     temperature,
		}
		return runQuery(cmd.Context(), logger, cmd.OutOrStdout(), cfg, opts)
	},
}

// applyConfig fills in flags the user did not set from the config file.
// changed reports whether a flag was given on the command line.
func applyConfig(cfg appConfig, changed func(name string) bool) {
	if !changed("model") && cfg.DefaultModel != "" {
		model = cfg.DefaultModel
	}
	if !changed("reasoning-effort") && cfg.ReasoningEffort != "" {
		reasoningEffort = cfg.ReasoningEffort
	}
	if !changed("max-tokens") && cfg.MaxTokens > 0 {
		maxTokens = cfg.MaxTokens
	}
	if !changed("temperature") && cfg.Temperature != nil {
		temperature = *cfg.Temperature
	}
}

// newLogger builds the process logger. --verbose lowers the level to debug.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&contextArg, "context", "c", "", "context text or path to a context file")
	rootCmd.PersistentFlags().StringVarP(&model, "model", "m", defaultModel, "model to use (o3-pro, o3-mini, o1-preview, o1-mini, gpt-4, ...)")
	rootCmd.PersistentFlags().StringVar(&reasoningEffort, "reasoning-effort", defaultEffort, "reasoning effort: low, medium or high (accepted, not yet sent on any request)")
	rootCmd.PersistentFlags().Int64Var(&maxTokens, "max-tokens", defaultMaxTokens, "maximum tokens in the response")
	rootCmd.PersistentFlags().Float64Var(&temperature, "temperature", defaultTemperature, "response randomness, 0.0-2.0 (ignored by the o3/o1 families)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	// Apply config-file defaults before command execution; explicit flags win.
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cfg = loadConfig()
		logger = newLogger(verbose)
		applyConfig(cfg, cmd.Flags().Changed)
	}

	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(configCmd)

	rootCmd.SetVersionTemplate("oaipro version {{.Version}}\n")
	rootCmd.SetErrPrefix("Error:")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetOut(os.Stdout)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Interactive configuration wizard",
	Long:  "Launch a TUI wizard to configure oaipro step by step.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigInit()
	},
}
