package discovery

import (
	"fmt"
	"strings"
	"time"
)

// Instance represents a landing page server found on the network
type Instance struct {
	// Name is the mDNS instance name (e.g., "GrayMan Dealflows")
	Name string

	// Hostname is the mDNS hostname (e.g., "web01.local.")
	Hostname string

	// IP is the preferred address (IPv4 when available)
	IP string

	// Port is the HTTP port
	Port int

	// Metadata contains the TXT record data ("app", "version", "path")
	Metadata map[string]string

	// DiscoveredAt is when the instance was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the instance
func (i *Instance) String() string {
	return fmt.Sprintf("%s (%s) at %s", i.Name, i.Version(), i.URL())
}

// URL returns the landing page URL
func (i *Instance) URL() string {
	host := i.IP
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	path := i.Metadata["path"]
	if path == "" {
		path = "/"
	}
	return fmt.Sprintf("http://%s:%d%s", host, i.Port, path)
}

// Version returns the advertised build version, or "unknown"
func (i *Instance) Version() string {
	if v := i.Metadata["version"]; v != "" {
		return v
	}
	return "unknown"
}

// TXTRecords builds the TXT record set advertised for this application
func TXTRecords(version string) []string {
	return []string{
		"app=" + AppTXTValue,
		"version=" + version,
		"path=/",
	}
}

// parseTXT converts "key=value" TXT strings into a map
func parseTXT(records []string) map[string]string {
	metadata := make(map[string]string, len(records))
	for _, txt := range records {
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}
	return metadata
}
