package alpha

import (
	"bytes"
	"errors"
	"image/color"
	"testing"

	"github.com/cam-per/ampskin/internal/testskin"
	"github.com/cam-per/ampskin/skin/bmp"
)

var pal = []color.RGBA{
	{R: 255, G: 0, B: 255, A: 255}, // magenta
	{R: 10, G: 20, B: 30, A: 255},
	{R: 255, G: 255, B: 255, A: 255},
}

func decode(t *testing.T, data []byte) *bmp.Image {
	t.Helper()
	img, err := bmp.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestResolveKeyColor(t *testing.T) {
	img := decode(t, testskin.BMP8(2, 2, pal, []uint8{0, 1, 1, 0}))

	out, err := Resolve(img, Magenta)
	if err != nil {
		t.Fatal(err)
	}

	// Every palette-resolved magenta pixel is alpha 0, all others 255.
	wantAlpha := [2][2]uint8{{0, 255}, {255, 0}}
	for y := range 2 {
		for x := range 2 {
			a := out.Pix[out.PixOffset(x, y)+3]
			if a != wantAlpha[y][x] {
				t.Errorf("alpha(%d,%d) = %d, want %d", x, y, a, wantAlpha[y][x])
			}
		}
	}
	if i := out.PixOffset(1, 0); out.Pix[i] != 10 || out.Pix[i+1] != 20 || out.Pix[i+2] != 30 {
		t.Errorf("opaque pixel color = %v", out.Pix[i:i+3])
	}
}

func TestResolvePaletteIndex(t *testing.T) {
	img := decode(t, testskin.BMP8(2, 1, pal, []uint8{1, 2}))

	out, err := Resolve(img, PaletteIndex{Index: 2})
	if err != nil {
		t.Fatal(err)
	}
	if out.Pix[3] != 255 || out.Pix[7] != 0 {
		t.Errorf("alphas = %d,%d, want 255,0", out.Pix[3], out.Pix[7])
	}
}

func TestResolvePaletteIndexOutOfRange(t *testing.T) {
	img := decode(t, testskin.BMP8(1, 1, pal, []uint8{0}))

	_, err := Resolve(img, PaletteIndex{Index: 3})
	if !errors.Is(err, ErrPaletteIndexOutOfRange) {
		t.Errorf("error = %v, want ErrPaletteIndexOutOfRange", err)
	}
}

func TestResolveTopLeftPixel(t *testing.T) {
	img := decode(t, testskin.BMP8(2, 1, pal, []uint8{2, 1}))

	out, err := Resolve(img, TopLeftPixel{})
	if err != nil {
		t.Fatal(err)
	}
	if out.Pix[3] != 0 {
		t.Error("top-left pixel must be transparent under its own key")
	}
	if out.Pix[7] != 255 {
		t.Error("non-matching pixel must stay opaque")
	}
}

func TestResolveIsPure(t *testing.T) {
	img := decode(t, testskin.BMP8(2, 2, pal, []uint8{0, 1, 2, 0}))

	a, err := Resolve(img, Default())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Resolve(img, Default())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("identical inputs produced different RGBA buffers")
	}
}
