// Command skinview loads classic skin archives and renders the main
// window: to a PNG, to a textual report, or into an interactive window.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/cam-per/ampskin/skin"
)

func main() {
	cmd := &cli.Command{
		Name:  "skinview",
		Usage: "render and inspect classic skin archives",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "viewer configuration file (TOML)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level := slog.LevelInfo
			if cmd.Bool("verbose") {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)
			skin.SetLogger(logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			renderCommand(),
			infoCommand(),
			viewCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "skinview:", err)
		os.Exit(1)
	}
}
