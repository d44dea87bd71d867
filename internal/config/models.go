package config

import "time"

// CurrentVersion is the config file schema version
const CurrentVersion = 1

// Default values used when the file or a field is absent
const (
	DefaultPort            = 8080
	DefaultPageTTL         = 10 * time.Minute
	DefaultShutdownTimeout = 10 * time.Second
	DefaultTickInterval    = 50 * time.Millisecond
	DefaultInstance        = "GrayMan Dealflows"
)

// Config represents the entire configuration file.
type Config struct {
	Version   int             `yaml:"version"`
	LogLevel  string          `yaml:"log_level,omitempty"` // debug, info, warn, error (empty = silent)
	Server    ServerConfig    `yaml:"server"`
	Animation AnimationConfig `yaml:"animation"`
	Advertise AdvertiseConfig `yaml:"advertise"`
}

// ServerConfig controls the HTTP host.
type ServerConfig struct {
	Host            string        `yaml:"host"`             // Listen address (empty = all interfaces)
	Port            int           `yaml:"port"`             // Listen port
	PageTTL         time.Duration `yaml:"page_ttl"`         // Idle pages are unmounted after this long
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // Grace period for open connections on shutdown
}

// AnimationConfig controls the statistics counters.
type AnimationConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"` // Period between counter ticks
}

// AdvertiseConfig controls mDNS advertisement of the HTTP host.
type AdvertiseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Instance string `yaml:"instance"` // mDNS instance name
}

// Default returns a Config with every field at its default value.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Server: ServerConfig{
			Port:            DefaultPort,
			PageTTL:         DefaultPageTTL,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Animation: AnimationConfig{
			TickInterval: DefaultTickInterval,
		},
		Advertise: AdvertiseConfig{
			Instance: DefaultInstance,
		},
	}
}

// applyDefaults fills zero-valued fields left out of a config file.
func (c *Config) applyDefaults() {
	d := Default()
	if c.Server.Port == 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Server.PageTTL == 0 {
		c.Server.PageTTL = d.Server.PageTTL
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = d.Server.ShutdownTimeout
	}
	if c.Animation.TickInterval == 0 {
		c.Animation.TickInterval = d.Animation.TickInterval
	}
	if c.Advertise.Instance == "" {
		c.Advertise.Instance = d.Advertise.Instance
	}
}
