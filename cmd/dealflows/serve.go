package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/grayman/dealflows/internal/config"
	"github.com/grayman/dealflows/internal/server"
)

// Serve command flags
var (
	serveHost         string
	servePort         int
	serveLogLevel     string
	serveTickInterval time.Duration
	servePageTTL      time.Duration
	serveAdvertise    bool
	serveInstance     string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the landing page server",
	Long: `Start the HTTP server for the landing page.

Each visit to / mounts a fresh page. Counters tick on the server and are
pushed to the browser over a websocket; closing the tab unmounts the page.
Pages that are left without a socket are unmounted after --page-ttl.

With --advertise the server is published over mDNS so 'dealflows discover'
can find it on the local network.`,
	Example: `  # Start on the configured port (8080 by default)
  dealflows serve

  # Custom port with debug logging
  dealflows serve --port 9000 --log-level debug

  # Slower counters, advertised on the LAN
  dealflows serve --tick-interval 100ms --advertise --instance "Office Demo"`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Listen address (empty = all interfaces)")
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Listen port")
	serveCmd.Flags().StringVar(&serveLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	serveCmd.Flags().DurationVar(&serveTickInterval, "tick-interval", config.DefaultTickInterval, "Counter tick period")
	serveCmd.Flags().DurationVar(&servePageTTL, "page-ttl", config.DefaultPageTTL, "Unmount pages idle for this long")
	serveCmd.Flags().BoolVar(&serveAdvertise, "advertise", false, "Advertise the server over mDNS")
	serveCmd.Flags().StringVar(&serveInstance, "instance", config.DefaultInstance, "mDNS instance name")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Flags given on the command line override the file
	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Server.Host = serveHost
	}
	if flags.Changed("port") {
		cfg.Server.Port = servePort
	}
	if flags.Changed("log-level") || cfg.LogLevel == "" {
		cfg.LogLevel = serveLogLevel
	}
	if flags.Changed("tick-interval") {
		cfg.Animation.TickInterval = serveTickInterval
	}
	if flags.Changed("page-ttl") {
		cfg.Server.PageTTL = servePageTTL
	}
	if flags.Changed("advertise") {
		cfg.Advertise.Enabled = serveAdvertise
	}
	if flags.Changed("instance") {
		cfg.Advertise.Instance = serveInstance
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	srv, err := server.New(serverConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// serverConfig maps the file settings onto the server's configuration
func serverConfig(cfg *config.Config) *server.Config {
	return &server.Config{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		LogLevel:        cfg.LogLevel,
		TickInterval:    cfg.Animation.TickInterval,
		PageTTL:         cfg.Server.PageTTL,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Advertise:       cfg.Advertise.Enabled,
		Instance:        cfg.Advertise.Instance,
	}
}
