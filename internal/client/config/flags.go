package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/trackmydeposits/internal/flagx"
)

// parseFlags populates Config fields from command-line flags. os.Args is
// filtered through flagx.FilterArgs first, so flags meant for other
// components are ignored. It panics on malformed values.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-n", "-r", "-v", "-o"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the REST API")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	alertTimeout := fs.Int("n", int(cfg.AlertTimeout.Milliseconds()), "alert display time (in milliseconds)")
	fs.IntVar(&cfg.RowsPerPage, "r", cfg.RowsPerPage, "rows per page (5, 10 or 25)")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose logging")
	fs.StringVar(&cfg.ExportDir, "o", cfg.ExportDir, "directory for saved CSV exports")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	cfg.AlertTimeout = time.Duration(*alertTimeout) * time.Millisecond
}
