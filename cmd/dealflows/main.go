// Dealflows serves the GrayMan Dealflows landing page.
//
// It runs the page as an HTTP server with live statistics counters, shows a
// terminal preview of the same page, and finds servers advertised on the
// local network.
//
// Usage:
//
//	dealflows [command] [flags]
//
// See 'dealflows --help' for available commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/grayman/dealflows/internal/config"
	"github.com/grayman/dealflows/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configPath is the --config flag; empty means the default location
var configPath string

var rootCmd = &cobra.Command{
	Use:   "dealflows",
	Short: "GrayMan Dealflows landing page",
	Long: `Serves the GrayMan Dealflows landing page.

Every page load gets its own menu state, animated statistics counters and
contact form. The counters are streamed to the browser over a websocket.

Settings are read from a YAML file (see 'dealflows config show'); command
line flags override file values.`,
	Version:      version.Version,
	SilenceUsage: true,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: $XDG_CONFIG_HOME/dealflows/config.yaml)")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dealflows %s\n", version.Full())
	},
}

// loadConfig reads the config file named by --config or the default location
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
