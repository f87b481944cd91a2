// stagehand is the event-setup assistant for the live-voting platform.
// Run with no arguments to launch the interactive wizard; subcommands cover
// the non-interactive surface (listing, resuming, imports, status).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"stagehand/internal/config"
	"stagehand/internal/logging"
)

var (
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "stagehand",
	Short: "stagehand - conversational event setup for live voting",
	Long: `stagehand sets up live-voting events through a conversation.

Describe the event in plain language; the assistant extracts names, dates,
scoring rules and venue details into a live checklist you can edit directly.
When the required fields are in place the event is saved to the platform.

Run without arguments to start the interactive wizard.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		workspace, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving workspace: %w", err)
		}

		cfg, err = config.Load(config.Path(workspace))
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := logging.Initialize(workspace, logging.Options{
			DebugMode:  cfg.Logging.DebugMode,
			Level:      cfg.Logging.Level,
			Categories: cfg.Logging.Categories,
		}); err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}

		// The wizard owns the terminal; stdout logging would tear the UI.
		if cmd.CalledAs() == "stagehand" {
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.Close()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWizard("")
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(statusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
