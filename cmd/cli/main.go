package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/jobkeeper/internal/buildinfo"
	"github.com/dmitrijs2005/jobkeeper/internal/client/cli"
	"github.com/dmitrijs2005/jobkeeper/internal/client/config"
	"github.com/dmitrijs2005/jobkeeper/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	logger := logging.NewConsoleLogger(os.Stderr, cfg.Debug)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	app.Run(ctx)
}
