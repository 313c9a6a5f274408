package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/genaimarketing/api/internal/generation"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:  "campaignctl",
		Usage: "drive and inspect campaign generations against the API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env",
				Usage: "path of an env file to load",
				Value: ".env",
			},
			&cli.StringFlag{
				Name:    "api",
				Usage:   "base URL of the API",
				Value:   "http://localhost:8000",
				Sources: cli.EnvVars(envAPIURL),
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "bearer token sent with every request",
				Sources: cli.EnvVars(envAPIToken),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "create a campaign and follow every generation stage",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "campaign name",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "theme",
						Usage: "campaign theme",
					},
					&cli.StringFlag{
						Name:  "audience",
						Usage: "target audience",
					},
					&cli.StringFlag{
						Name:  "product",
						Usage: "bank product",
					},
					&cli.StringFlag{
						Name:  "description",
						Usage: "free-form brief",
					},
					&cli.BoolFlag{
						Name:  "tui",
						Usage: "render progress with a live terminal view",
					},
				}, waitFlags()...),
				Action: generateAction,
			},
			{
				Name:  "wait",
				Usage: "wait until one status field reads a value",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "campaign id",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "field",
						Usage:    "status field, e.g. images_status",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "value",
						Usage: "expected value",
						Value: "completed",
					},
				}, waitFlags()...),
				Action: waitAction,
			},
			{
				Name:  "status",
				Usage: "print every stage field of a campaign",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "campaign id",
						Required: true,
					},
				},
				Action: statusAction,
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+err.Error())
		os.Exit(1)
	}
}

// requestTimeout bounds a single API call, not a whole wait
const requestTimeout = 30 * time.Second

func waitFlags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "how long a single stage may take",
			Value: generation.DefaultTimeout,
		},
		&cli.DurationFlag{
			Name:  "interval",
			Usage: "how often the campaign record is read",
			Value: generation.DefaultPollInterval,
		},
	}
}
