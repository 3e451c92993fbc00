package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/tcgexchange/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string    base URL of the marketplace API
//	-d string    directory holding the local database
//	-s int       sync debounce delay in seconds
//	-t int       request timeout in seconds
//	-catalog     path to a card catalog JSON file
//
// args is filtered with flagx.FilterArgs first, so subcommands and their own
// flags are left to the CLI.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-t", "-catalog"})

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the marketplace API")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "local data directory")
	syncDelay := fs.Int("s", int(cfg.SyncDelay.Seconds()), "sync delay (in seconds)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "card catalog JSON file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["s"] {
		cfg.SyncDelay = time.Duration(*syncDelay) * time.Second
	}
	if set["t"] {
		cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	}
	return nil
}
