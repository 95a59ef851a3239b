package text

import (
	"image"
	"image/draw"
)

const (
	tickerGap  = 3 * GlyphWidth // blank run between wraps
	tickerStep = 1              // pixels per tick
)

// Ticker scrolls a string through a fixed-width viewport, the way the
// song title crawls across the title area. It is a pure state machine:
// Tick advances it, Render draws the current window. Strings narrower
// than the viewport do not scroll.
type Ticker struct {
	text   string
	width  int // viewport, pixels
	offset int
}

func NewTicker(text string, widthPx int) *Ticker {
	return &Ticker{text: text, width: widthPx}
}

// SetText swaps the string and restarts the crawl.
func (t *Ticker) SetText(s string) {
	if s == t.text {
		return
	}
	t.text = s
	t.offset = 0
}

// Tick advances the crawl by one step, wrapping after the text plus the
// inter-wrap gap has passed.
func (t *Ticker) Tick() {
	if Width(t.text) <= t.width {
		t.offset = 0
		return
	}
	t.offset = (t.offset + tickerStep) % (Width(t.text) + tickerGap)
}

// Render draws the visible window of the crawl.
func (t *Ticker) Render(r *Renderer, band int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, t.width, GlyphHeight))
	strip := r.Render(t.text, band)

	if Width(t.text) <= t.width {
		draw.Draw(out, strip.Bounds(), strip, image.Point{}, draw.Src)
		return out
	}

	loop := Width(t.text) + tickerGap
	for _, x := range []int{-t.offset, -t.offset + loop} {
		dst := image.Rect(x, 0, x+Width(t.text), GlyphHeight)
		draw.Draw(out, dst, strip, image.Point{}, draw.Src)
	}
	return out
}
