package vis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cam-per/ampskin/skin"
)

func testColors() skin.VisColors {
	return skin.DefaultVisColors()
}

func TestSpectrumBackgroundGrid(t *testing.T) {
	o := New(testColors())
	img := o.Spectrum([Bars]int{})

	assert.Equal(t, o.colors[skin.VisGrid], img.RGBAAt(0, 0))
	assert.Equal(t, o.colors[skin.VisBackground], img.RGBAAt(1, 0))
	assert.Equal(t, o.colors[skin.VisBackground], img.RGBAAt(0, 1))
	assert.Equal(t, o.colors[skin.VisGrid], img.RGBAAt(2, 2))
}

func TestSpectrumBarGradient(t *testing.T) {
	o := New(testColors())
	var bars [Bars]int
	bars[0] = 4

	img := o.Spectrum(bars)

	// bottom row of the bar uses the bottom of the gradient
	assert.Equal(t, o.colors[skin.VisSpectrumLast], img.RGBAAt(0, Height-1))
	assert.Equal(t, o.colors[skin.VisSpectrumFirst+12], img.RGBAAt(0, Height-4))
	// bar is barWidth wide, then a gap column
	assert.Equal(t, o.colors[skin.VisSpectrumLast], img.RGBAAt(2, Height-1))
	assert.NotEqual(t, o.colors[skin.VisSpectrumLast], img.RGBAAt(3, Height-1))
	// silent bars stay background above the baseline
	assert.Equal(t, o.colors[skin.VisBackground], img.RGBAAt(5, Height-2))
}

func TestSpectrumPeakHoldAndFall(t *testing.T) {
	o := New(testColors())
	var bars [Bars]int
	bars[0] = 8
	o.Spectrum(bars)
	assert.Equal(t, 8, o.peaks[0])

	// the peak holds for peakHold silent frames before falling
	for range peakHold {
		o.Spectrum([Bars]int{})
	}
	assert.Equal(t, 8, o.peaks[0])

	img := o.Spectrum([Bars]int{})
	assert.Equal(t, 7, o.peaks[0])
	assert.Equal(t, o.colors[skin.VisPeak], img.RGBAAt(0, Height-1-7))
}

func TestSpectrumClampsHeights(t *testing.T) {
	o := New(testColors())
	var bars [Bars]int
	bars[0] = 99
	bars[1] = -5

	img := o.Spectrum(bars)

	assert.Equal(t, Height, o.peaks[0])
	assert.Equal(t, 0, o.peaks[1])
	// the marker for a maxed bar stays visible, pinned to the top row
	assert.Equal(t, o.colors[skin.VisPeak], img.RGBAAt(0, 0))
	assert.Equal(t, o.colors[skin.VisSpectrumFirst+1], img.RGBAAt(0, 1))
}

func TestOscilloscopeCenterLine(t *testing.T) {
	o := New(testColors())
	img := o.Oscilloscope(make([]int8, Width))

	mid := Height/2 - 1
	for _, x := range []int{0, 10, Width - 1} {
		assert.Equal(t, o.colors[skin.VisOscFirst], img.RGBAAt(x, mid), "column %d", x)
	}
	assert.Equal(t, o.colors[skin.VisBackground], img.RGBAAt(1, 0))
}

func TestOscilloscopeConnectsColumns(t *testing.T) {
	o := New(testColors())
	samples := make([]int8, Width)
	samples[1] = 64 // one spike

	img := o.Oscilloscope(samples)

	// the spike column carries a vertical segment down to the previous row
	top := sampleY(64)
	bottom := sampleY(0)
	c := o.colors[oscColor(64)]
	for y := top; y <= bottom; y++ {
		assert.Equal(t, c, img.RGBAAt(1, y), "row %d", y)
	}
}

func TestSampleY(t *testing.T) {
	assert.Equal(t, Height/2-1, sampleY(0))
	assert.Equal(t, 0, sampleY(127))
	assert.Equal(t, Height-1, sampleY(-128))
}

func TestOscColorByAmplitude(t *testing.T) {
	assert.Equal(t, skin.VisOscFirst, oscColor(0))
	assert.Equal(t, skin.VisOscLast, oscColor(-128))
	assert.Equal(t, skin.VisOscLast, oscColor(127))
}
