package main

import (
	"fmt"
	"os"

	"github.com/drewfoos/rift-stats/internal/config"
	"github.com/drewfoos/rift-stats/internal/logging"
	"github.com/drewfoos/rift-stats/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logging.New(cfg, os.Stdout)
	app := server.Build(cfg, log)

	addr, err := server.ListenAddr(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to resolve listen address")
	}

	log.WithField("addr", addr).Info("starting server")
	if err := app.Listen(addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
