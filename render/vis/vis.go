// Package vis draws the spectrum-analyzer and oscilloscope overlays of
// the main window. It performs no audio-reactive computation: the
// visualization subsystem hands it pre-computed bar heights or raw
// samples per frame, and the output buffer is submitted to the composer
// like any other sprite.
package vis

import (
	"image"

	"github.com/cam-per/ampskin/skin"
)

// Mode tags the collaborator-supplied frame data.
type Mode int

const (
	ModeSpectrum Mode = iota
	ModeOscilloscope
)

// Fixed geometry of the main-window visualization area.
const (
	Bars   = 19
	Width  = 76
	Height = 16

	barWidth = 3 // plus 1px gap per bar column

	peakHold = 6 // frames a peak sticks before falling
	peakStep = 1 // rows a falling peak drops per frame
)

// Overlay renders visualization frames into a reusable RGBA buffer. Peak
// markers carry state across frames, so one Overlay serves one window.
type Overlay struct {
	colors skin.VisColors
	img    *image.RGBA

	peaks [Bars]int
	hold  [Bars]int
}

func New(colors skin.VisColors) *Overlay {
	return &Overlay{
		colors: colors,
		img:    image.NewRGBA(image.Rect(0, 0, Width, Height)),
	}
}

// Spectrum draws one analyzer frame from the given bar heights
// (0..Height) and advances the peak falloff. The returned buffer is
// valid until the next call.
func (o *Overlay) Spectrum(bars [Bars]int) *image.RGBA {
	o.background()

	for i := range bars {
		h := clampHeight(bars[i])
		o.updatePeak(i, h)

		x0 := i * (barWidth + 1)
		for y := Height - h; y < Height; y++ {
			// Gradient row: index 2 at the top of the scale down to 17
			// at the bottom.
			c := o.colors[skin.VisSpectrumFirst+y*16/Height]
			for x := x0; x < x0+barWidth && x < Width; x++ {
				o.img.SetRGBA(x, y, c)
			}
		}

		if p := o.peaks[i]; p > 0 {
			// A maxed bar pins the marker to the top row.
			y := max(0, Height-1-p)
			for x := x0; x < x0+barWidth && x < Width; x++ {
				o.img.SetRGBA(x, y, o.colors[skin.VisPeak])
			}
		}
	}
	return o.img
}

// Oscilloscope draws one waveform frame from raw samples. Samples are
// resampled across the full width; successive columns are connected with
// vertical segments the way the classic scope draws.
func (o *Overlay) Oscilloscope(samples []int8) *image.RGBA {
	o.background()
	if len(samples) == 0 {
		return o.img
	}

	prev := sampleY(samples[0])
	for x := 0; x < Width; x++ {
		s := samples[x*len(samples)/Width]
		y := sampleY(s)

		c := o.colors[oscColor(s)]
		y0, y1 := min(prev, y), max(prev, y)
		for yy := y0; yy <= y1; yy++ {
			o.img.SetRGBA(x, yy, c)
		}
		prev = y
	}
	return o.img
}

func (o *Overlay) background() {
	bg := o.colors[skin.VisBackground]
	grid := o.colors[skin.VisGrid]
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if x%2 == 0 && y%2 == 0 {
				o.img.SetRGBA(x, y, grid)
			} else {
				o.img.SetRGBA(x, y, bg)
			}
		}
	}
}

func (o *Overlay) updatePeak(i, h int) {
	if h >= o.peaks[i] {
		o.peaks[i] = h
		o.hold[i] = peakHold
		return
	}
	if o.hold[i] > 0 {
		o.hold[i]--
		return
	}
	o.peaks[i] = max(0, o.peaks[i]-peakStep)
}

func clampHeight(h int) int { return max(0, min(Height, h)) }

// sampleY maps a signed sample to a row, zero at the vertical center.
func sampleY(s int8) int {
	y := Height/2 - 1 - int(s)*Height/256
	return max(0, min(Height-1, y))
}

// oscColor picks one of the five oscilloscope colors by amplitude.
func oscColor(s int8) int {
	mag := int(s)
	if mag < 0 {
		mag = -mag
	}
	idx := skin.VisOscFirst + mag*5/128
	return min(idx, skin.VisOscLast)
}
