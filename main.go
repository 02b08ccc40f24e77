package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/posterlab/colbalance/internal/analyze"
	"github.com/posterlab/colbalance/internal/history"
)

func main() {
	app := &cli.App{
		Name:  "colbalance",
		Usage: "detect and balance the three-column layout of a rendered poster",
		Commands: []*cli.Command{
			{
				Name:      "analyze",
				Usage:     "measure column heights and report balance suggestions",
				UsageText: "colbalance analyze --input poster.html [--available-height 1000]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "HTML file path or URL to analyze",
						Required: true,
					},
					&cli.Float64Flag{
						Name:  "available-height",
						Usage: "usable height budget per column in pixels",
						Value: 1000,
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "YAML config file overriding the default thresholds",
					},
					&cli.StringFlag{
						Name:  "inspector",
						Usage: "layout inspector: chrome (headless browser) or static (inline styles only)",
						Value: "chrome",
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "overall analysis deadline",
						Value: 30 * time.Second,
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "output format: json or yaml",
						Value: "json",
					},
					&cli.StringFlag{
						Name:  "db",
						Usage: "run history database path (default: next to the binary)",
					},
					&cli.BoolFlag{
						Name:  "no-history",
						Usage: "skip recording this run",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "only log errors",
					},
				},
				Action: analyze.Action,
			},
			{
				Name:  "history",
				Usage: "list recorded analysis runs",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "maximum number of runs to show",
						Value: 20,
					},
					&cli.StringFlag{
						Name:  "db",
						Usage: "run history database path (default: next to the binary)",
					},
				},
				Action: history.Action,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		if exitErr, ok := err.(cli.ExitCoder); ok {
			if msg := err.Error(); msg != "" {
				fmt.Fprintln(os.Stderr, msg)
			}
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}
