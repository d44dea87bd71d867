package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/grayman/dealflows/internal/logging"
	"github.com/grayman/dealflows/internal/tui"
)

var previewTickInterval time.Duration

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the landing page in the terminal",
	Long: `Render the landing page in the terminal.

The preview has the same state as a browser visit: the menu toggle, the
statistics counters counting up to their caps and the contact form.
Logging stays silent unless DEALFLOWS_LOG_LEVEL is set.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().DurationVar(&previewTickInterval, "tick-interval", 0, "Counter tick period (default from config)")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	// Log lines would draw over the alt screen unless explicitly requested
	if err := logging.InitializeFromEnv(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.Sync()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	interval := cfg.Animation.TickInterval
	if cmd.Flags().Changed("tick-interval") {
		if previewTickInterval <= 0 {
			return fmt.Errorf("--tick-interval must be positive")
		}
		interval = previewTickInterval
	}

	return tui.Run(cmd.Context(), tui.PageOptions{TickInterval: interval})
}
