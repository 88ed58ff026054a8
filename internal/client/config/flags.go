package config

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/dmitrijs2005/imguploader/internal/client/models"
)

// parseFlags overlays cfg with command-line flags and collects the
// positional file arguments. -c/-config are accepted here and read by
// parseJson. Parse errors panic; -h prints usage and exits.
func parseFlags(cfg *Config) {
	fs := flag.NewFlagSet("imgup", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags] [image ...]\n", fs.Name())
		fs.PrintDefaults()
	}

	var configPath string
	fs.StringVar(&configPath, "c", "", "path to JSON config file (short)")
	fs.StringVar(&configPath, "config", "", "path to JSON config file")

	fs.StringVar(&cfg.BackendURL, "u", cfg.BackendURL, "upload endpoint URL")
	fs.StringVar(&cfg.FormField, "field", cfg.FormField, "multipart field name for the files")
	fs.StringVar(&cfg.URLField, "url-field", cfg.URLField, "response JSON field holding the image URL")
	policy := fs.String("policy", string(cfg.PartialPolicy), "mixed batch handling: proceed, reject or confirm")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "upload timeout, 0 for none")
	fs.BoolVar(&cfg.StrictStatus, "strict", cfg.StrictStatus, "treat non-2xx responses as failures")
	fs.StringVar(&cfg.HistoryDB, "history", cfg.HistoryDB, `history database path, "" to disable`)
	fs.IntVar(&cfg.HistoryLimit, "history-limit", cfg.HistoryLimit, "number of uploads kept in history")
	fs.BoolVar(&cfg.CopyOnSuccess, "copy", cfg.CopyOnSuccess, "copy the link to the clipboard after a one-shot upload")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		panic(err)
	}

	cfg.PartialPolicy = models.PartialPolicy(*policy)
	if args := fs.Args(); len(args) > 0 {
		cfg.Files = append([]string(nil), args...)
	}
}
