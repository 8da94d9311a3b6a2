// Package config loads runtime configuration for the dashboard client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the REST API (http://host:port/api/v1)
//	-t int      request timeout (seconds)
//	-n int      alert display time (milliseconds)
//	-r int      rows per page (5, 10 or 25)
//	-v          verbose logging
//	-o string   directory for "export save" files
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "3s" or
// integer nanoseconds. Missing keys keep their earlier value:
//
//	{
//	  "server_url": "http://127.0.0.1:8080/api/v1",
//	  "request_timeout": "3s",
//	  "alert_timeout": "4s",
//	  "rows_per_page": 10,
//	  "verbose": false,
//	  "export_dir": "exports"
//	}
package config
