package bmp

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"image/color"
	"io"

	"github.com/cam-per/ampskin/utils"
)

// Decode parses a Windows BMP. Supported depths are 1, 4, 8 and 24 bits
// per pixel, uncompressed. The palette of indexed images is preserved in
// file order and is never flattened to true color here: transparency
// resolution needs the original indices.
func Decode(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return nil, err
	}

	br := bytes.NewReader(data)

	var fh fileHeader
	if err := binary.Read(br, binary.LittleEndian, &fh); err != nil {
		return nil, fmt.Errorf("%w: short file header", ErrMalformedBitmap)
	}
	if fh.Type[0] != 'B' || fh.Type[1] != 'M' {
		return nil, fmt.Errorf("%w: bad magic %q", ErrMalformedBitmap, fh.Type[:])
	}

	var ih infoHeader
	if err := binary.Read(br, binary.LittleEndian, &ih); err != nil {
		return nil, fmt.Errorf("%w: short info header", ErrMalformedBitmap)
	}
	if int(ih.Size) < infoHeaderSize {
		return nil, fmt.Errorf("%w: info header size %d", ErrMalformedBitmap, ih.Size)
	}
	if ih.Planes != 1 || ih.Compression != compressionRGB {
		return nil, fmt.Errorf("%w: planes=%d compression=%d", ErrMalformedBitmap, ih.Planes, ih.Compression)
	}

	switch ih.BitCount {
	case 1, 4, 8, 24:
	default:
		return nil, fmt.Errorf("%w: %d bpp", ErrUnsupportedDepth, ih.BitCount)
	}

	width := int(ih.Width)
	height := int(ih.Height)
	topDown := false
	if height < 0 {
		topDown = true
		height = -height
	}
	if width <= 0 || height == 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrMalformedBitmap, ih.Width, ih.Height)
	}

	img := &Image{
		width:   width,
		height:  height,
		depth:   int(ih.BitCount),
		stride:  ((width*int(ih.BitCount) + 31) / 32) * 4,
		topDown: topDown,
	}

	if img.depth <= 8 {
		pal, err := readPalette(data, &ih)
		if err != nil {
			return nil, err
		}
		img.palette = pal
	}

	need := img.stride * height
	if int(fh.OffBits) > len(data) || len(data)-int(fh.OffBits) < need {
		return nil, fmt.Errorf("%w: %d pixel bytes at offset %d, file has %d",
			ErrMalformedBitmap, need, fh.OffBits, len(data))
	}
	img.raw = data[fh.OffBits : int(fh.OffBits)+need]

	return img, nil
}

// readPalette reads the BGRx quads that follow the info header. ColorsUsed
// of zero means the full table for the depth.
func readPalette(data []byte, ih *infoHeader) ([]color.RGBA, error) {
	count := int(ih.ColorsUsed)
	if count == 0 {
		count = 1 << ih.BitCount
	}
	if count > 256 {
		return nil, fmt.Errorf("%w: %d palette entries", ErrMalformedBitmap, count)
	}

	off := fileHeaderSize + int(ih.Size)
	if off+count*4 > len(data) {
		return nil, fmt.Errorf("%w: truncated palette", ErrMalformedBitmap)
	}

	br := bytes.NewReader(data[off:])
	pal := make([]color.RGBA, count)
	for i := range pal {
		q, err := utils.ReadUint32LE(br)
		if err != nil {
			return nil, fmt.Errorf("%w: truncated palette", ErrMalformedBitmap)
		}
		// BGRx quad, reserved byte ignored
		pal[i] = color.RGBA{R: uint8(q >> 16), G: uint8(q >> 8), B: uint8(q), A: 255}
	}
	return pal, nil
}
