package main

import (
	"context"
	"fmt"
	"image/png"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/cam-per/ampskin/render/text"
	"github.com/cam-per/ampskin/render/vis"
	"github.com/cam-per/ampskin/skin"
)

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "compose the main window once and write it as PNG",
		ArgsUsage: "<skin archive or directory>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Value:   "frame.png",
				Usage:   "output PNG path",
			},
			&cli.FloatFlag{
				Name:  "scale",
				Usage: "integer or fractional scale factor (overrides config)",
			},
			&cli.StringFlag{
				Name:  "state",
				Usage: "window state for silhouette selection (overrides config)",
			},
		},
		Action: runRender,
	}
}

func runRender(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected one skin path argument")
	}

	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}
	if cmd.IsSet("scale") {
		cfg.Scale = cmd.Float("scale")
	}
	if cmd.IsSet("state") {
		cfg.State = cmd.String("state")
	}

	pkg, err := skin.Load(ctx, cmd.Args().First())
	if err != nil {
		return err
	}
	for _, w := range pkg.Warnings() {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}

	tr := text.NewFromPackage(pkg)
	ticker := text.NewTicker(cfg.Title, titlePx)
	overlay := vis.New(pkg.VisColors())

	reqs := buildRequests(ticker, tr, cfg.Band, overlay.Spectrum(demoSpectrum(0)))
	frame := newRenderer(pkg).Compose(reqs, cfg.State, cfg.Scale)

	f, err := os.Create(cmd.String("out"))
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, frame.Image()); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%dx%d)\n", cmd.String("out"),
		frame.Image().Bounds().Dx(), frame.Image().Bounds().Dy())
	return nil
}
