// Package alpha rewrites decoded skin bitmaps to RGBA under a skin-supplied
// transparency policy. Classic skins have binary transparency only: a pixel
// is either fully opaque or fully transparent.
package alpha

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/cam-per/ampskin/skin/bmp"
)

var ErrPaletteIndexOutOfRange = errors.New("alpha: palette index out of range")

// Policy selects which pixels of a source image become transparent.
type Policy interface {
	fmt.Stringer
	policy()
}

// KeyColor makes every pixel whose resolved RGB matches exactly transparent.
type KeyColor struct {
	R, G, B uint8
}

// TopLeftPixel keys transparency off whatever color the top-left pixel has.
type TopLeftPixel struct{}

// PaletteIndex makes every pixel carrying the given palette index
// transparent. Invalid for 24-bit images.
type PaletteIndex struct {
	Index uint8
}

func (KeyColor) policy()     {}
func (TopLeftPixel) policy() {}
func (PaletteIndex) policy() {}

func (p KeyColor) String() string     { return fmt.Sprintf("keycolor(#%02X%02X%02X)", p.R, p.G, p.B) }
func (TopLeftPixel) String() string   { return "topleft" }
func (p PaletteIndex) String() string { return fmt.Sprintf("index(%d)", p.Index) }

// Magenta is the historical default key color.
var Magenta = KeyColor{R: 255, G: 0, B: 255}

// Default returns the policy used when a skin configures nothing.
func Default() Policy { return Magenta }

// Resolve composes a decoded image with a policy into an RGBA image.
// Matching pixels get alpha 0, all others alpha 255. Pure: called once
// per source image at load time, never per frame.
func Resolve(img *bmp.Image, p Policy) (*image.RGBA, error) {
	w, h := img.Width(), img.Height()
	out := image.NewRGBA(image.Rect(0, 0, w, h))

	var transparent func(x, y int) bool
	switch p := p.(type) {
	case PaletteIndex:
		if !img.Indexed() {
			return nil, fmt.Errorf("%w: index %d on a %d-bit image", ErrPaletteIndexOutOfRange, p.Index, img.Depth())
		}
		if int(p.Index) >= len(img.Palette()) {
			return nil, fmt.Errorf("%w: index %d, palette has %d entries", ErrPaletteIndexOutOfRange, p.Index, len(img.Palette()))
		}
		transparent = func(x, y int) bool { return img.Index(x, y) == p.Index }
	case TopLeftPixel:
		key := img.At(0, 0)
		transparent = func(x, y int) bool { return img.At(x, y) == key }
	case KeyColor:
		key := color.RGBA{R: p.R, G: p.G, B: p.B, A: 255}
		transparent = func(x, y int) bool { return img.At(x, y) == key }
	default:
		return nil, fmt.Errorf("alpha: unknown policy %T", p)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if transparent(x, y) {
				continue // NewRGBA zeroes the buffer
			}
			c := img.At(x, y)
			i := out.PixOffset(x, y)
			out.Pix[i+0] = c.R
			out.Pix[i+1] = c.G
			out.Pix[i+2] = c.B
			out.Pix[i+3] = 255
		}
	}
	return out, nil
}
