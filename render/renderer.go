// Package render composites extracted skin sprites into output frames and
// answers hit-test queries against the active window silhouette.
package render

import (
	"image"
	"sort"

	xdraw "golang.org/x/image/draw"

	"github.com/cam-per/ampskin/skin"
	"github.com/cam-per/ampskin/skin/atlas"
	"github.com/cam-per/ampskin/skin/region"
)

// Request asks for one sprite state to be drawn at a logical offset.
// When Image is set it is drawn as-is (collaborator-supplied buffers like
// the visualization overlay) and Z orders it; otherwise Sprite/State name
// an atlas entry and the z-order comes from the sprite specification.
type Request struct {
	Sprite string
	State  string
	Image  *image.RGBA
	At     image.Point
	Z      int
}

// Renderer composites one skin package's sprites. It only ever reads the
// package, so a renderer may be used concurrently with a pending skin
// load.
type Renderer struct {
	atlas    *atlas.Atlas
	regions  *region.RegionSet
	hotspots region.HotspotMap
	width    int
	height   int
}

// New builds a renderer over a logical canvas of the given size.
func New(a *atlas.Atlas, rs *region.RegionSet, hs region.HotspotMap, width, height int) *Renderer {
	return &Renderer{atlas: a, regions: rs, hotspots: hs, width: width, height: height}
}

// Compose draws the requests in ascending z-order onto a fresh frame at
// the given scale, then forces every pixel outside the active state's
// silhouette to fully transparent. Binary transparency only: sources are
// alpha 0 or 255, so alpha-over never blends.
func (r *Renderer) Compose(reqs []Request, state string, scale float64) *Frame {
	frame := newFrame(r.width, r.height, scale)

	ordered := make([]Request, len(reqs))
	copy(ordered, reqs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return r.zOf(ordered[i]) < r.zOf(ordered[j])
	})

	for _, req := range ordered {
		src := req.Image
		if src == nil {
			src = r.atlas.Pixels(req.Sprite, req.State)
		}
		if src == nil {
			skin.Logger().Warn("unknown sprite in composition request", "sprite", req.Sprite)
			continue
		}
		b := src.Bounds()
		dst := image.Rect(
			scaled(req.At.X, scale),
			scaled(req.At.Y, scale),
			scaled(req.At.X+b.Dx(), scale),
			scaled(req.At.Y+b.Dy(), scale),
		)
		xdraw.NearestNeighbor.Scale(frame.img, dst, src, b, xdraw.Over, nil)
	}

	r.mask(frame, state)
	return frame
}

func (r *Renderer) zOf(req Request) int {
	if req.Image != nil {
		return req.Z
	}
	if s, ok := r.atlas.Sprite(req.Sprite); ok {
		return s.Z
	}
	return req.Z
}

// mask clears every physical pixel whose logical pixel is outside the
// union of the state's polygons. States without polygons keep the full
// rectangular canvas.
func (r *Renderer) mask(frame *Frame, state string) {
	if len(r.regions.Polygons(state)) == 0 {
		return
	}
	for y := 0; y < r.height; y++ {
		py0, py1 := scaled(y, frame.scale), scaled(y+1, frame.scale)
		for x := 0; x < r.width; x++ {
			if r.regions.Contains(state, image.Pt(x, y)) {
				continue
			}
			px0, px1 := scaled(x, frame.scale), scaled(x+1, frame.scale)
			for py := py0; py < py1; py++ {
				i := frame.img.PixOffset(px0, py)
				clear(frame.img.Pix[i : i+(px1-px0)*4])
			}
		}
	}
}

// HitTest resolves a point in logical, unscaled coordinates to an element
// name, or "" when the point hits nothing. Points outside the active
// silhouette never hit. Hotspot lookup is deterministic: ties go to the
// lexicographically first name.
func (r *Renderer) HitTest(pt image.Point, state string) string {
	if !r.regions.Contains(state, pt) {
		return ""
	}

	names := make([]string, 0, len(r.hotspots))
	for name := range r.hotspots {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if pt.In(r.hotspots[name]) {
			return name
		}
	}
	return ""
}
