package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"songcalendar/internal/calendar"
	"songcalendar/internal/lib/logger/utils"
)

func calendarCommand() *cli.Command {
	return &cli.Command{
		Name:  "calendar",
		Usage: "print a month of the calendar and the selected song",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Value:   "http://localhost:8080",
				Usage:   "base URL of the song calendar API",
				EnvVars: []string{"SONGCALENDAR_SERVER"},
			},
			&cli.StringFlag{
				Name:  "month",
				Usage: "month to show, as mm/yyyy",
			},
			&cli.StringFlag{
				Name:  "date",
				Usage: "date to select, as yyyy-mm-dd",
			},
			&cli.IntFlag{
				Name:  "slot",
				Value: 1,
				Usage: "song of the selected date to show, starting at 1",
			},
		},
		Action: func(c *cli.Context) error {
			if err := utils.InitLogger(os.Getenv("LOG_ENV")); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer utils.Logger.Sync()

			ctrl := calendar.NewController(calendar.NewHTTPFetcher(c.String("server"), nil), time.Now)
			ctrl.Load(c.Context)

			if date := c.String("date"); date != "" {
				t, err := time.Parse("2006-01-02", date)
				if err != nil {
					return calendar.ErrInvalidDate
				}
				if c.String("month") == "" {
					ctrl.Goto(t.Format("01/2006"))
				}
				if err := ctrl.SelectDate(date); err != nil {
					return err
				}
			}
			if month := c.String("month"); month != "" {
				if _, err := ctrl.Goto(month); err != nil {
					if errors.Is(err, calendar.ErrInvalidGoto) {
						return errors.New(calendar.GotoAlert)
					}
					return err
				}
			}
			if err := ctrl.SelectSlot(c.Int("slot") - 1); err != nil {
				return err
			}

			return calendar.Render(c.App.Writer, ctrl)
		},
	}
}
