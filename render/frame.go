package render

import (
	"image"
	"math"
)

// Frame is a composited output buffer: logical canvas dimensions plus the
// physical RGBA pixels at logical size × scale.
type Frame struct {
	logicalW int
	logicalH int
	scale    float64
	img      *image.RGBA
}

func newFrame(w, h int, scale float64) *Frame {
	return &Frame{
		logicalW: w,
		logicalH: h,
		scale:    scale,
		img:      image.NewRGBA(image.Rect(0, 0, scaled(w, scale), scaled(h, scale))),
	}
}

// scaled maps a logical coordinate to a physical one. Sprite edges go
// through the same mapping, so adjacent sprites stay gap-free at
// fractional scale factors.
func scaled(v int, scale float64) int {
	return int(math.Round(float64(v) * scale))
}

func (f *Frame) LogicalSize() (int, int) { return f.logicalW, f.logicalH }
func (f *Frame) Scale() float64          { return f.scale }

// Image exposes the physical pixel buffer.
func (f *Frame) Image() *image.RGBA { return f.img }
