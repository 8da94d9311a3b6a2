package config

import "time"

// Config holds runtime settings for the dashboard client.
//
// Fields:
//   - ServerURL: base URL of the REST API, including the /api/v1 prefix.
//   - RequestTimeout: upper bound for every backend call.
//   - AlertTimeout: how long an alert stays on screen; 0 removes alerts
//     right after they are shown.
//   - RowsPerPage: initial page size of the deposits table (5, 10 or 25).
//   - Verbose: log at debug level instead of warn.
//   - ExportDir: directory (relative to the working directory) where
//     "export save" stores CSV files.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	AlertTimeout   time.Duration
	RowsPerPage    int
	Verbose        bool
	ExportDir      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080/api/v1"
	c.RequestTimeout = 3 * time.Second
	c.AlertTimeout = 4 * time.Second
	c.RowsPerPage = 10
	c.Verbose = false
	c.ExportDir = "exports"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
