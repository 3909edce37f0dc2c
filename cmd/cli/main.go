package main

import (
	"context"
	"log"
	"os"

	"github.com/dmorozov/testoria/internal/buildinfo"
	"github.com/dmorozov/testoria/internal/cli"
	"github.com/dmorozov/testoria/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, cleanup, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer cleanup()

	app.Run(ctx)
}
