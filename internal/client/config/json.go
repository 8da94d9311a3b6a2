package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/trackmydeposits/internal/flagx"
	"github.com/dmitrijs2005/trackmydeposits/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell an absent key from a zero value.
type JsonConfig struct {
	ServerURL      *string         `json:"server_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	AlertTimeout   *timex.Duration `json:"alert_timeout"`
	RowsPerPage    *int            `json:"rows_per_page"`
	Verbose        *bool           `json:"verbose"`
	ExportDir      *string         `json:"export_dir"`
}

// parseJson overlays Config with values loaded from the file named by -c or
// -config. It panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != nil {
		cfg.ServerURL = *jc.ServerURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.AlertTimeout != nil {
		cfg.AlertTimeout = jc.AlertTimeout.Duration
	}
	if jc.RowsPerPage != nil {
		cfg.RowsPerPage = *jc.RowsPerPage
	}
	if jc.Verbose != nil {
		cfg.Verbose = *jc.Verbose
	}
	if jc.ExportDir != nil {
		cfg.ExportDir = *jc.ExportDir
	}
}
