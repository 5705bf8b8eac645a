package main

import (
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/drewfoos/rift-stats/internal/config"
	"github.com/drewfoos/rift-stats/internal/lambdaproxy"
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

	lambda.Start(lambdaproxy.New(app).Proxy)
}
