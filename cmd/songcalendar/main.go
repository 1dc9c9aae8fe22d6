package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

// @title Song Calendar API
// @version 1.0
// @description Songs scheduled on calendar dates, with an admin area to upload audio and manage the catalog.

// @host localhost:8080
// @BasePath /
// @schemes http

func main() {
	app := cli.NewApp()
	app.Name = "songcalendar"
	app.Usage = "Song calendar server and terminal client."
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "env-file",
			Value:   ".env",
			Usage:   "dotenv file read before the environment",
			EnvVars: []string{"SONGCALENDAR_ENV_FILE"},
		},
	}
	app.Commands = []*cli.Command{
		serveCommand(),
		migrateCommand(),
		calendarCommand(),
	}
	app.DefaultCommand = "serve"

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
