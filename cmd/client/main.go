package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/dmitrijs2005/tcgexchange/internal/client/app"
	"github.com/dmitrijs2005/tcgexchange/internal/client/cli"
	"github.com/dmitrijs2005/tcgexchange/internal/client/config"
	"github.com/dmitrijs2005/tcgexchange/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, args, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 2
	}

	logger, err := logging.New(cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 2
	}

	// debounced syncs must survive an interrupt of the running command
	appCtx := context.WithoutCancel(ctx)

	a, err := app.New(appCtx, cfg, logger)
	if err != nil {
		cli.PrintError(os.Stderr, err)
		return 1
	}
	defer func() {
		if err := a.Close(appCtx); err != nil {
			cli.PrintError(os.Stderr, err)
		}
	}()

	root := cli.NewRootCmd(a, os.Stdin, os.Stdout)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		cli.PrintError(os.Stderr, err)
		return 1
	}
	return 0
}
