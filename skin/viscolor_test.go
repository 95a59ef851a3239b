package skin

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVisColors(t *testing.T) {
	data := []byte(
		"0,0,0 // color 0 = black background\n" +
			"24,33,41, // color 1 = dots\n" +
			"255, 0, 255\n" +
			"300,-5,128\n" +
			"garbage line\n")

	colors := ParseVisColors(data)

	assert.Equal(t, color.RGBA{A: 255}, colors[0])
	assert.Equal(t, color.RGBA{R: 24, G: 33, B: 41, A: 255}, colors[1])
	assert.Equal(t, color.RGBA{R: 255, B: 255, A: 255}, colors[2])
	// out-of-range components clamp
	assert.Equal(t, color.RGBA{R: 255, G: 0, B: 128, A: 255}, colors[3])
	// unparsable and missing rows stay opaque black
	assert.Equal(t, color.RGBA{A: 255}, colors[4])
	assert.Equal(t, color.RGBA{A: 255}, colors[VisPeak])
}

func TestParseVisColorsIgnoresExtraLines(t *testing.T) {
	var data []byte
	for range 30 {
		data = append(data, []byte("1,2,3\n")...)
	}
	colors := ParseVisColors(data)
	assert.Equal(t, color.RGBA{R: 1, G: 2, B: 3, A: 255}, colors[VisColorCount-1])
}

func TestDefaultVisColors(t *testing.T) {
	colors := DefaultVisColors()

	for i, c := range colors {
		assert.EqualValues(t, 255, c.A, "row %d must be opaque", i)
	}
	// gradient runs blue to red
	assert.Equal(t, color.RGBA{B: 255, A: 255}, colors[VisSpectrumFirst])
	assert.Equal(t, color.RGBA{R: 255, A: 255}, colors[VisSpectrumLast])
	assert.Equal(t, color.RGBA{R: 255, G: 255, A: 255}, colors[VisPeak])
}
