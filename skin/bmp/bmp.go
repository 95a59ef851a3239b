package bmp

import (
	"encoding/binary"
	"errors"
	"image/color"
)

var (
	ErrMalformedBitmap  = errors.New("bmp: malformed bitmap")
	ErrUnsupportedDepth = errors.New("bmp: unsupported bit depth")
)

// fileHeader is the BITMAPFILEHEADER, packed little-endian on disk.
type fileHeader struct {
	Type      [2]byte
	Size      uint32
	Reserved1 uint16
	Reserved2 uint16
	OffBits   uint32
}

// infoHeader is the BITMAPINFOHEADER, packed little-endian on disk.
type infoHeader struct {
	Size            uint32
	Width           int32
	Height          int32
	Planes          uint16
	BitCount        uint16
	Compression     uint32
	SizeImage       uint32
	XPixelsPerM     int32
	YPixelsPerM     int32
	ColorsUsed      uint32
	ColorsImportant uint32
}

const compressionRGB = 0 // BI_RGB, the only compression classic skins use

// Image is a decoded bitmap that still carries its source depth. For
// depths up to 8 the palette is kept verbatim in file order; pixel rows
// are kept raw (bottom-up where the file is bottom-up, padded to 4-byte
// boundaries) so the buffer matches the historical layout byte for byte.
type Image struct {
	width   int
	height  int
	depth   int
	stride  int // bytes per raw row, 4-byte aligned
	topDown bool
	raw     []byte // stride*height bytes, in file row order
	palette []color.RGBA
}

func (img *Image) Width() int  { return img.width }
func (img *Image) Height() int { return img.height }
func (img *Image) Depth() int  { return img.depth }

// Palette returns the verbatim palette. Nil for 24-bit images.
func (img *Image) Palette() []color.RGBA { return img.palette }

// Indexed reports whether pixels are palette indices.
func (img *Image) Indexed() bool { return img.depth <= 8 }

func (img *Image) row(y int) []byte {
	if !img.topDown {
		y = img.height - 1 - y
	}
	return img.raw[y*img.stride : (y+1)*img.stride]
}

// Index returns the palette index of the pixel at (x, y) in top-down
// coordinates. Only valid for indexed depths.
func (img *Image) Index(x, y int) uint8 {
	row := img.row(y)
	switch img.depth {
	case 8:
		return row[x]
	case 4:
		b := row[x>>1]
		if x&1 == 0 {
			return b >> 4
		}
		return b & 0x0F
	case 1:
		return (row[x>>3] >> (7 - uint(x&7))) & 1
	}
	return 0
}

// At returns the pixel at (x, y) resolved to RGB, through the palette for
// indexed depths and straight from the BGR triplet for 24-bit.
func (img *Image) At(x, y int) color.RGBA {
	if img.depth == 24 {
		row := img.row(y)
		return color.RGBA{R: row[x*3+2], G: row[x*3+1], B: row[x*3], A: 255}
	}
	idx := img.Index(x, y)
	if int(idx) >= len(img.palette) {
		return color.RGBA{A: 255}
	}
	return img.palette[idx]
}

var (
	fileHeaderSize = binary.Size(fileHeader{})
	infoHeaderSize = binary.Size(infoHeader{})
)
