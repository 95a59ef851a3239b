package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/cam-per/ampskin/skin"
	"github.com/cam-per/ampskin/utils"
)

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "inspect a skin archive without rendering it",
		ArgsUsage: "<skin archive or directory>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "hexdump",
				Usage: "hex dump the main sheet's header bytes",
			},
		},
		Action: runInfo,
	}
}

func runInfo(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected one skin path argument")
	}
	path := cmd.Args().First()

	ar, err := skin.OpenArchive(path)
	if err != nil {
		return err
	}

	fmt.Println("archive:", path)
	for _, name := range ar.Names() {
		data, err := ar.ReadFile(name)
		if err != nil {
			return err
		}
		fmt.Printf("  %-24s %s\n", name, humanize.IBytes(uint64(len(data))))
	}

	if cmd.Bool("hexdump") {
		data, err := ar.ReadFile("main.bmp")
		if err != nil {
			return err
		}
		fmt.Println("\nmain.bmp header:")
		if err := utils.HexDump(os.Stdout, bytes.NewReader(data), 0, min(64, int64(len(data)))); err != nil {
			return err
		}
	}

	pkg, err := skin.Load(ctx, path)
	if err != nil {
		return err
	}

	fmt.Println("\nstates:")
	states := pkg.Regions().States()
	sort.Strings(states)
	if len(states) == 0 {
		fmt.Println("  (rectangular, no region file)")
	}
	for _, s := range states {
		fmt.Printf("  %-14s %d polygon(s)\n", s, len(pkg.Regions().Polygons(s)))
	}
	if n := len(pkg.Hotspots()); n > 0 {
		fmt.Printf("hotspots: %d\n", n)
	}

	if warns := pkg.Warnings(); len(warns) > 0 {
		fmt.Printf("\n%d warning(s):\n", len(warns))
		for _, w := range warns {
			fmt.Println("  ", w)
		}
	}
	return nil
}
