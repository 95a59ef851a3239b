package bmp

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image/color"
	"testing"
)

// synth builds an uncompressed BMP from raw rows given in file order
// (bottom-up unless height is negative). Rows must already be padded to
// the 4-byte stride.
func synth(t *testing.T, width, height, depth int, pal []color.RGBA, rows [][]byte) []byte {
	t.Helper()

	absHeight := height
	if absHeight < 0 {
		absHeight = -absHeight
	}
	stride := ((width*depth + 31) / 32) * 4
	if len(rows) != absHeight {
		t.Fatalf("synth: %d rows, want %d", len(rows), absHeight)
	}

	offBits := 14 + 40 + len(pal)*4
	var buf bytes.Buffer
	buf.WriteString("BM")
	binary.Write(&buf, binary.LittleEndian, uint32(offBits+stride*absHeight))
	binary.Write(&buf, binary.LittleEndian, uint32(0))
	binary.Write(&buf, binary.LittleEndian, uint32(offBits))
	binary.Write(&buf, binary.LittleEndian, infoHeader{
		Size:       40,
		Width:      int32(width),
		Height:     int32(height),
		Planes:     1,
		BitCount:   uint16(depth),
		ColorsUsed: uint32(len(pal)),
	})
	for _, c := range pal {
		buf.Write([]byte{c.B, c.G, c.R, 0})
	}
	for _, row := range rows {
		if len(row) != stride {
			t.Fatalf("synth: row len %d, want stride %d", len(row), stride)
		}
		buf.Write(row)
	}
	return buf.Bytes()
}

var testPal = []color.RGBA{
	{R: 0, G: 0, B: 0, A: 255},
	{R: 255, G: 0, B: 255, A: 255},
	{R: 10, G: 20, B: 30, A: 255},
	{R: 200, G: 100, B: 50, A: 255},
}

func TestDecode8Bit(t *testing.T) {
	// 2x2, bottom-up: file rows are (bottom) 2,3 then (top) 0,1.
	data := synth(t, 2, 2, 8, testPal, [][]byte{
		{2, 3, 0, 0},
		{0, 1, 0, 0},
	})

	img, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if img.Width() != 2 || img.Height() != 2 || img.Depth() != 8 {
		t.Fatalf("got %dx%d@%d", img.Width(), img.Height(), img.Depth())
	}

	want := [2][2]uint8{{0, 1}, {2, 3}}
	for y := range 2 {
		for x := range 2 {
			if got := img.Index(x, y); got != want[y][x] {
				t.Errorf("Index(%d,%d) = %d, want %d", x, y, got, want[y][x])
			}
		}
	}
	if got := img.At(1, 1); got != testPal[3] {
		t.Errorf("At(1,1) = %v, want %v", got, testPal[3])
	}
}

func TestDecodePaletteVerbatim(t *testing.T) {
	data := synth(t, 1, 1, 8, testPal, [][]byte{{0, 0, 0, 0}})

	img, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}

	pal := img.Palette()
	if len(pal) != len(testPal) {
		t.Fatalf("palette length %d, want %d", len(pal), len(testPal))
	}
	if len(pal) > 1<<img.Depth() {
		t.Fatalf("palette length %d exceeds 2^%d", len(pal), img.Depth())
	}
	for i, c := range pal {
		if c != testPal[i] {
			t.Errorf("palette[%d] = %v, want %v", i, c, testPal[i])
		}
	}
}

func TestDecode4Bit(t *testing.T) {
	// 3 pixels wide: indices 1,2,3 packed MSB-first into two bytes.
	data := synth(t, 3, 1, 4, testPal, [][]byte{
		{0x12, 0x30, 0, 0},
	})

	img, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	for x, want := range []uint8{1, 2, 3} {
		if got := img.Index(x, 0); got != want {
			t.Errorf("Index(%d,0) = %d, want %d", x, got, want)
		}
	}
}

func TestDecode1Bit(t *testing.T) {
	pal := testPal[:2]
	// 10 pixels: 1010101010 padded out, MSB first.
	data := synth(t, 10, 1, 1, pal, [][]byte{
		{0b10101010, 0b10000000, 0, 0},
	})

	img, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	for x := range 10 {
		want := uint8(1 - x%2)
		if got := img.Index(x, 0); got != want {
			t.Errorf("Index(%d,0) = %d, want %d", x, got, want)
		}
	}
}

func TestDecode24Bit(t *testing.T) {
	// Single pixel stored as BGR.
	data := synth(t, 1, 1, 24, nil, [][]byte{
		{30, 20, 10, 0},
	})

	img, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if img.Palette() != nil {
		t.Error("24-bit image must not carry a palette")
	}
	if got := img.At(0, 0); got != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("At(0,0) = %v", got)
	}
}

func TestDecodeTopDown(t *testing.T) {
	data := synth(t, 1, -2, 8, testPal, [][]byte{
		{1, 0, 0, 0},
		{2, 0, 0, 0},
	})

	img, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if img.Index(0, 0) != 1 || img.Index(0, 1) != 2 {
		t.Errorf("top-down rows read in file order: got %d,%d", img.Index(0, 0), img.Index(0, 1))
	}
}

func TestDecodeRowPadding(t *testing.T) {
	// Width 5 at 8bpp pads each row to 8 bytes; padding must be skipped.
	data := synth(t, 5, 2, 8, testPal, [][]byte{
		{3, 3, 3, 3, 3, 0xEE, 0xEE, 0xEE},
		{1, 1, 1, 1, 1, 0xEE, 0xEE, 0xEE},
	})

	img, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	for x := range 5 {
		if img.Index(x, 0) != 1 || img.Index(x, 1) != 3 {
			t.Fatalf("padding leaked into pixels at column %d", x)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrMalformedBitmap},
		{"bad magic", []byte("XXjunkjunkjunkjunk"), ErrMalformedBitmap},
		{"truncated pixels", func() []byte {
			data := synth(t, 2, 2, 8, testPal, [][]byte{{0, 0, 0, 0}, {0, 0, 0, 0}})
			return data[:len(data)-5]
		}(), ErrMalformedBitmap},
		{"16 bpp", func() []byte {
			data := synth(t, 1, 1, 8, testPal, [][]byte{{0, 0, 0, 0}})
			// BitCount lives 28 bytes into the file.
			data[28] = 16
			return data
		}(), ErrUnsupportedDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}
