package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/quicknotes/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-u string   REST API base URL
//	-f string   session file path
//	-n int      notes per page
//	-t int      request timeout in seconds
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-u", "-f", "-n", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "u", cfg.ServerURL, "REST API base URL")
	fs.StringVar(&cfg.SessionFile, "f", cfg.SessionFile, "session file")
	fs.IntVar(&cfg.PageSize, "n", cfg.PageSize, "notes per page")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	if cfg.PageSize < 1 {
		cfg.PageSize = 1
	}
}
