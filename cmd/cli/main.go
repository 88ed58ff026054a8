package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/imguploader/internal/buildinfo"
	"github.com/dmitrijs2005/imguploader/internal/client/cli"
	"github.com/dmitrijs2005/imguploader/internal/client/config"
	"github.com/dmitrijs2005/imguploader/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// after the first signal a second one terminates the process
	context.AfterFunc(ctx, stop)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("%v", err)
		return 2
	}

	if len(cfg.Files) == 0 {
		buildinfo.PrintBuildData(os.Stdout)
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Printf("%v", err)
		return 2
	}

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "failed to start", "error", err)
		return 1
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "upload did not complete", "error", err)
		return 1
	}
	return 0
}
