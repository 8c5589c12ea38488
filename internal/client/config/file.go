package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/quicknotes/internal/flagx"
	"github.com/dmitrijs2005/quicknotes/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for decoding config files.
type FileConfig struct {
	ServerURL          string         `json:"server_url" yaml:"server_url"`
	SessionFile        string         `json:"session_file" yaml:"session_file"`
	PageSize           int            `json:"page_size" yaml:"page_size"`
	RequestTimeout     timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	GoogleClientID     string         `json:"google_client_id" yaml:"google_client_id"`
	GoogleClientSecret string         `json:"google_client_secret" yaml:"google_client_secret"`
}

// parseFile overlays Config with values from the file named by -c / -config.
// YAML is used for .yaml/.yml, JSON otherwise. Panics on read or decode errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFilePath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	if fc.ServerURL != "" {
		cfg.ServerURL = fc.ServerURL
	}
	if fc.SessionFile != "" {
		cfg.SessionFile = fc.SessionFile
	}
	if fc.PageSize > 0 {
		cfg.PageSize = fc.PageSize
	}
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.GoogleClientID != "" {
		cfg.GoogleClientID = fc.GoogleClientID
	}
	if fc.GoogleClientSecret != "" {
		cfg.GoogleClientSecret = fc.GoogleClientSecret
	}
}
