package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/vcardshell/internal/buildinfo"
	"github.com/dmitrijs2005/vcardshell/internal/cli"
	"github.com/dmitrijs2005/vcardshell/internal/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("%v", err)
		return 1
	}

	if cfg.ShowVersion {
		buildinfo.PrintBuildData(os.Stdout)
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return 1
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("%v", err)
		}
	}()

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
		return 1
	}
	return 0
}
