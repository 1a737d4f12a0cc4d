package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"github.com/wppick/wppick/cmd/run"
)

func main() {
	app := &cli.App{
		Name:  "wppick",
		Usage: "Run wppick",
		Commands: []*cli.Command{
			run.Command(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Msg("Error while executing command")
	}
}
