package skin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/cam-per/ampskin/skin/alpha"
	"github.com/cam-per/ampskin/skin/atlas"
	"github.com/cam-per/ampskin/skin/bmp"
	"github.com/cam-per/ampskin/skin/region"
	"github.com/cam-per/ampskin/utils"
)

const (
	mainSheet    = "main.bmp"
	textSheet    = "text.bmp"
	regionFile   = "region.txt"
	viscolorFile = "viscolor.txt"
)

// extraSheets are decoded alongside the sprite-spec sheets but are not
// sliced by the atlas: the glyph sheet is consumed by render/text whole.
var extraSheets = []string{textSheet}

// Load reads a skin archive or directory into a Package without
// publishing it. Most callers want Manager.Load instead.
func Load(ctx context.Context, path string) (*Package, error) {
	return load(ctx, path, 0)
}

func load(ctx context.Context, path string, gen uint64) (*Package, error) {
	start := time.Now()

	ar, err := OpenArchive(path)
	if err != nil {
		return nil, err
	}
	if !ar.Has(mainSheet) {
		return nil, fmt.Errorf("%w: %s has no %s", ErrSkinInvalid, path, mainSheet)
	}

	cfgData, _ := ar.ReadFile(configFile)
	cfg := parseConfig(cfgData)

	spec, ok := atlas.WindowSpec("main")
	if !ok {
		panic("skin: no embedded main window spec")
	}

	pkg := &Package{
		gen:    gen,
		source: filepath.Base(path),
		config: cfg,
	}

	pkg.sheets, pkg.warnings = decodeSheets(ctx, ar, append(spec.Sheets(), extraSheets...), cfg)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if pkg.sheets[mainSheet] == nil {
		return nil, fmt.Errorf("%w: %s does not decode", ErrSkinInvalid, mainSheet)
	}

	pkg.atlas = atlas.Build(gen, spec, pkg.sheets)
	pkg.warnings = append(pkg.warnings, pkg.atlas.Warnings()...)

	if data, err := ar.ReadFile(regionFile); err == nil {
		parsed, err := region.Parse([]byte(utils.DecodeText(data)))
		if err != nil {
			pkg.warnings = append(pkg.warnings, err)
		} else {
			pkg.regions = parsed.Polygons
			pkg.hotspots = parsed.Hotspots
			pkg.warnings = append(pkg.warnings, parsed.Warnings...)
		}
	}

	if data, err := ar.ReadFile(viscolorFile); err == nil {
		pkg.viscolors = ParseVisColors(data)
	} else {
		pkg.viscolors = DefaultVisColors()
	}

	Logger().Info("skin loaded",
		"source", pkg.source,
		"sheets", len(pkg.sheets),
		"warnings", len(pkg.warnings),
		"transparency", cfg.Transparency.String(),
		"took", time.Since(start))
	return pkg, nil
}

// decodeSheets decodes every sheet the sprite spec references on a
// bounded worker pool. A sheet that is absent or undecodable is dropped
// with a warning; its sprites degrade to placeholders at atlas build.
func decodeSheets(ctx context.Context, ar *Archive, names []string, cfg Config) (map[string]*image.RGBA, []error) {
	type result struct {
		name string
		img  *image.RGBA
		err  error
	}

	workers := min(runtime.GOMAXPROCS(0), len(names))
	jobs := make(chan string)
	results := make(chan result)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range jobs {
				img, err := decodeSheet(ar, name, cfg)
				select {
				case results <- result{name: name, img: img, err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}
	go func() {
		defer close(jobs)
		for _, name := range names {
			select {
			case jobs <- name:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	sheets := make(map[string]*image.RGBA, len(names))
	var warns []error
	for r := range results {
		switch {
		case errors.Is(r.err, fs.ErrNotExist):
			Logger().Debug("sheet not shipped by skin", "sheet", r.name)
		case r.err != nil:
			warns = append(warns, fmt.Errorf("%s: %w", r.name, r.err))
		default:
			sheets[r.name] = r.img
		}
	}
	return sheets, warns
}

func decodeSheet(ar *Archive, name string, cfg Config) (*image.RGBA, error) {
	data, err := ar.ReadFile(name)
	if err != nil {
		return nil, err
	}

	img, err := bmp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	rgba, err := alpha.Resolve(img, cfg.Transparency)
	if err != nil {
		// A policy that cannot apply to this image (palette index out of
		// range, index on a 24-bit sheet) degrades to the magenta key.
		Logger().Warn("transparency policy not applicable, falling back",
			"sheet", name, "policy", cfg.Transparency.String(), "error", err)
		rgba, err = alpha.Resolve(img, alpha.Magenta)
		if err != nil {
			return nil, err
		}
	}

	Logger().Debug("sheet decoded",
		"sheet", name,
		"size", fmt.Sprintf("%dx%d@%d", img.Width(), img.Height(), img.Depth()),
		"bytes", humanize.IBytes(uint64(len(data))))
	return rgba, nil
}
