// Package text renders strings through a skin's TEXT.BMP glyph sheet.
// The sheet is a fixed grid of 5x6 cells in three rows; taller sheets
// stack up to four color bands of the same grid, with a historical 2px
// separator after the first band.
package text

import (
	"image"
	"image/draw"
	"strings"

	"github.com/cam-per/ampskin/skin"
)

const (
	GlyphWidth  = 5
	GlyphHeight = 6

	bandRows      = 3
	bandHeight    = GlyphHeight * bandRows
	bandSeparator = 2 // pixels after band 1
	maxBands      = 4
)

// The three logical glyph rows of the sheet, in grid order. Unknown
// runes render as the blank cell at the end of the last row.
var glyphRows = []string{
	`ABCDEFGHIJKLMNOPQRSTUVWXYZ"@`,
	`0123456789….:()-'!_+\/[]^&%,=$#`,
	`ÅÖÄ?* `,
}

// Renderer maps runes to sheet cells and composes text strips. Glyph
// strips are cheap sub-rectangle draws; rendered strings are not cached,
// callers keep strips alive as long as they need them.
type Renderer struct {
	sheet  *image.RGBA
	bands  int
	coords map[rune]image.Point // cell origin within band 0
}

// New builds a renderer over a decoded TEXT.BMP. The band count is
// derived from the sheet height, defaulting to a single band for the
// minimal 18px sheet. A nil sheet yields a renderer that draws blanks.
func New(sheet *image.RGBA) *Renderer {
	r := &Renderer{sheet: sheet, bands: 1, coords: make(map[rune]image.Point)}

	if sheet != nil {
		h := sheet.Bounds().Dy()
		switch {
		case h >= bandHeight*maxBands+bandSeparator:
			r.bands = maxBands
		case h >= bandHeight*3:
			r.bands = 3
		case h >= bandHeight*2:
			r.bands = 2
		}
	}

	for row, chars := range glyphRows {
		col := 0
		for _, ch := range chars {
			r.coords[ch] = image.Pt(col*GlyphWidth, row*GlyphHeight)
			col++
		}
	}
	return r
}

// Bands reports how many color bands the sheet carries.
func (r *Renderer) Bands() int { return r.bands }

// Width returns the pixel width of a rendered string.
func Width(s string) int { return len([]rune(s)) * GlyphWidth }

// Render draws s into a fresh strip using the given color band. Letters
// are case-folded to the upper-case glyphs; runes outside the grid render
// blank. Band indices beyond the sheet fall back to band 0.
func (r *Renderer) Render(s string, band int) *image.RGBA {
	runes := []rune(strings.ToUpper(s))
	out := image.NewRGBA(image.Rect(0, 0, len(runes)*GlyphWidth, GlyphHeight))
	if r.sheet == nil {
		return out
	}
	if band < 0 || band >= r.bands {
		band = 0
	}

	bandY := 0
	if band > 0 {
		bandY = band*bandHeight + bandSeparator
	}

	for i, ch := range runes {
		pt, ok := r.coords[ch]
		if !ok {
			continue
		}
		src := image.Pt(pt.X, pt.Y+bandY)
		dst := image.Rect(i*GlyphWidth, 0, (i+1)*GlyphWidth, GlyphHeight)
		draw.Draw(out, dst, r.sheet, src, draw.Src)
	}
	return out
}

// NewFromPackage wires a renderer to a loaded skin's text sheet.
func NewFromPackage(pkg *skin.Package) *Renderer {
	return New(pkg.Sheet("text.bmp"))
}
