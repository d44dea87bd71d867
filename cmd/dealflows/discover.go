package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/grayman/dealflows/internal/discovery"
	"github.com/grayman/dealflows/internal/logging"
	"github.com/grayman/dealflows/internal/tui"
)

// Discover command flags
var (
	discoverTimeout     time.Duration
	discoverInteractive bool
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find landing page servers on the local network",
	Long: `Browse mDNS for servers started with 'dealflows serve --advertise'.

By default the servers found are printed once the timeout expires. With
--interactive a browser screen lists them and prints the URL of the one
you select.`,
	Example: `  # Scan for 5 seconds (default)
  dealflows discover

  # Longer scan, pick a server interactively
  dealflows discover --timeout 15s --interactive`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().DurationVar(&discoverTimeout, "timeout", discovery.DefaultScanTimeout, "How long to listen for advertisements")
	discoverCmd.Flags().BoolVarP(&discoverInteractive, "interactive", "i", false, "Choose a server in a terminal browser")
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.Sync()

	scanner := discovery.NewScanner()
	scanner.Timeout = discoverTimeout

	if discoverInteractive {
		selected, err := tui.RunDiscovery(cmd.Context(), scanner.Scan)
		if err != nil {
			return err
		}
		if selected != nil {
			fmt.Println(selected.URL())
		}
		return nil
	}

	fmt.Printf("Scanning for landing page servers (timeout: %s)...\n\n", discoverTimeout)

	instances, err := scanner.Scan(cmd.Context())
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(instances) == 0 {
		fmt.Println("No servers found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Start a server with 'dealflows serve --advertise'")
		fmt.Println("  - Check that multicast traffic is allowed on this network")
		fmt.Println("  - Try increasing --timeout")
		return nil
	}

	fmt.Printf("Found %d server(s):\n\n", len(instances))
	for i, inst := range instances {
		fmt.Printf("%d. %s\n", i+1, inst.Name)
		fmt.Printf("   URL:      %s\n", inst.URL())
		fmt.Printf("   Host:     %s\n", inst.Hostname)
		fmt.Printf("   Version:  %s\n", inst.Version())
		fmt.Println()
	}
	return nil
}
