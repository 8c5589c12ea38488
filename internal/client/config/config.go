// Package config handles configuration for the QuickNotes terminal client:
// defaults, an optional JSON/YAML file and command-line flags, applied in
// that order.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the QuickNotes CLI.
//
// Fields:
//   - ServerURL: base URL of the REST API, including the API prefix.
//   - SessionFile: where the bearer token and account summary are kept.
//   - PageSize: notes shown per page by list/next/prev.
//   - RequestTimeout: per-request HTTP timeout.
//   - GoogleClientID, GoogleClientSecret: OAuth client used by the "google"
//     command. Without them the command asks for a pasted ID token.
type Config struct {
	ServerURL          string
	SessionFile        string
	PageSize           int
	RequestTimeout     time.Duration
	GoogleClientID     string
	GoogleClientSecret string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:5000/api"
	c.SessionFile = defaultSessionFile()
	c.PageSize = 6
	c.RequestTimeout = 10 * time.Second
	c.GoogleClientID = ""
	c.GoogleClientSecret = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if given) and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".quicknotes", "session.json")
	}
	return filepath.Join(home, ".quicknotes", "session.json")
}
