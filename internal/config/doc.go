// Package config provides configuration management for the dealflows landing page.
//
// Configuration lives in a YAML file that follows OS conventions for its
// location:
//   - Linux: $XDG_CONFIG_HOME/dealflows/config.yaml or $HOME/.config/dealflows/config.yaml
//   - macOS: $HOME/.config/dealflows/config.yaml
//   - Windows: %LOCALAPPDATA%\dealflows\config.yaml
//
// A missing file is not an error; Default values are used. Fields left out
// of the file fall back to their defaults.
//
// # Example
//
//	version: 1
//	log_level: info
//	server:
//	  host: ""
//	  port: 8080
//	  page_ttl: 10m
//	  shutdown_timeout: 10s
//	animation:
//	  tick_interval: 50ms
//	advertise:
//	  enabled: false
//	  instance: GrayMan Dealflows
//
// Nothing about visitors is stored here; the page keeps no state across reloads.
package config
