package skin

import (
	"image/color"
	"strconv"
	"strings"
)

// VisColorCount is the fixed size of the viscolor table: background,
// grid, 16 spectrum gradient rows, 5 oscilloscope colors, peak dot.
const VisColorCount = 24

// VisColors is the parsed viscolor.txt palette.
type VisColors [VisColorCount]color.RGBA

// Well-known rows of the table.
const (
	VisBackground    = 0
	VisGrid          = 1
	VisSpectrumFirst = 2  // top of the bar gradient
	VisSpectrumLast  = 17 // bottom of the bar gradient
	VisOscFirst      = 18
	VisOscLast       = 22
	VisPeak          = 23
)

// ParseVisColors reads a viscolor.txt: one "r,g,b" line per table row,
// with optional trailing "//" comments. Invalid or missing lines fall
// back to black; extra lines are ignored.
func ParseVisColors(data []byte) VisColors {
	var colors VisColors
	for i := range colors {
		colors[i] = color.RGBA{A: 255} // unparsed rows stay opaque black
	}

	lines := strings.Split(string(data), "\n")
	for i := 0; i < VisColorCount && i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}
		line = strings.TrimRight(line, ",")

		parts := strings.Split(line, ",")
		if len(parts) < 3 {
			Logger().Warn("invalid viscolor line", "line", i+1)
			continue
		}
		var rgb [3]uint8
		ok := true
		for j := 0; j < 3; j++ {
			v, err := strconv.Atoi(strings.TrimSpace(parts[j]))
			if err != nil {
				ok = false
				break
			}
			rgb[j] = uint8(max(0, min(255, v)))
		}
		if !ok {
			Logger().Warn("invalid viscolor line", "line", i+1)
			continue
		}
		colors[i] = color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
	}
	return colors
}

// DefaultVisColors is the table used when a skin ships no viscolor.txt:
// a blue-to-red spectrum gradient plus the classic oscilloscope colors.
func DefaultVisColors() VisColors {
	var colors VisColors
	colors[VisBackground] = color.RGBA{A: 255}
	colors[VisGrid] = color.RGBA{R: 40, G: 40, B: 40, A: 255}

	for i := 0; i < 16; i++ {
		ratio := float64(i) / 15
		colors[VisSpectrumFirst+i] = color.RGBA{
			R: uint8(255 * ratio),
			B: uint8(255 * (1 - ratio)),
			A: 255,
		}
	}

	osc := []color.RGBA{
		{R: 255, G: 255, B: 255, A: 255},
		{G: 255, A: 255},
		{G: 128, B: 255, A: 255},
		{R: 255, B: 255, A: 255},
		{R: 255, G: 255, A: 255},
	}
	copy(colors[VisOscFirst:], osc)
	colors[VisPeak] = color.RGBA{R: 255, G: 255, A: 255}
	return colors
}
