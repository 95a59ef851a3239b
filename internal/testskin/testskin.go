// Package testskin builds in-memory skin fixtures for tests: synthetic
// BMP files and zipped skin archives. Nothing here touches disk.
package testskin

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"image/color"
)

// BMP8 encodes an 8-bit indexed BMP with the given palette. Pixel indices
// are given top-down; rows are written bottom-up and padded to the 4-byte
// stride as the format requires.
func BMP8(width, height int, pal []color.RGBA, indices []uint8) []byte {
	stride := (width + 3) &^ 3
	offBits := 14 + 40 + len(pal)*4

	var buf bytes.Buffer
	buf.WriteString("BM")
	le32 := func(v uint32) { binary.Write(&buf, binary.LittleEndian, v) }
	le32(uint32(offBits + stride*height))
	le32(0)
	le32(uint32(offBits))

	// BITMAPINFOHEADER
	le32(40)
	le32(uint32(width))
	le32(uint32(height))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, uint16(8))
	le32(0) // BI_RGB
	le32(uint32(stride * height))
	le32(0)
	le32(0)
	le32(uint32(len(pal)))
	le32(0)

	for _, c := range pal {
		buf.Write([]byte{c.B, c.G, c.R, 0})
	}

	row := make([]byte, stride)
	for y := height - 1; y >= 0; y-- {
		for i := range row {
			row[i] = 0
		}
		copy(row, indices[y*width:(y+1)*width])
		buf.Write(row)
	}
	return buf.Bytes()
}

// Solid returns top-down indices for a width×height image filled with idx.
func Solid(width, height int, idx uint8) []uint8 {
	px := make([]uint8, width*height)
	for i := range px {
		px[i] = idx
	}
	return px
}

// Archive zips the given files into an in-memory skin archive.
func Archive(files map[string][]byte) []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range files {
		w, err := zw.Create(name)
		if err != nil {
			panic(err)
		}
		if _, err := w.Write(data); err != nil {
			panic(err)
		}
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
