// Package region parses the two region.txt grammars classic skins ship:
// INI-style polygon sets that shape a window's silhouette, and line-based
// rectangular hotspots. A file is always one or the other, never both.
package region

import (
	"errors"
	"image"
	"strings"
)

var (
	ErrCoordinateCountMismatch = errors.New("region: point list shorter than declared counts")
	ErrIncompleteSection       = errors.New("region: section missing NumPoints or PointList")
	ErrMixedGrammar            = errors.New("region: hotspot line inside polygon file")
	ErrBadNumber               = errors.New("region: non-integer value")
)

// Polygon is an ordered vertex list, at least three points, fixed at
// parse time.
type Polygon []image.Point

// RegionSet maps a window state to the ordered polygons whose union is
// the visible and clickable silhouette for that state. State names are
// case-insensitive.
type RegionSet struct {
	states map[string][]Polygon
}

// HotspotMap maps element names to clickable rectangles. Several names
// may share one rectangle.
type HotspotMap map[string]image.Rectangle

// File is a parsed region.txt: exactly one of Polygons or Hotspots is
// set. Warnings collect non-fatal defects (skipped sections, ignored
// mixed-grammar lines, short point lists).
type File struct {
	Polygons *RegionSet
	Hotspots HotspotMap
	Warnings []error
}

// States returns the window states the set shapes, in no fixed order.
func (rs *RegionSet) States() []string {
	if rs == nil {
		return nil
	}
	out := make([]string, 0, len(rs.states))
	for s := range rs.states {
		out = append(out, s)
	}
	return out
}

// Polygons returns the polygon list for a state, nil when the state has
// no custom shape.
func (rs *RegionSet) Polygons(state string) []Polygon {
	if rs == nil {
		return nil
	}
	return rs.states[strings.ToLower(state)]
}

// Contains reports whether the pixel at pt lies inside the silhouette for
// the given state. A state without polygons has no custom shape, so every
// point is inside. Sampling is at the pixel center (x+0.5, y+0.5) with an
// even-odd rule, which makes top and left polygon edges inclusive and
// bottom and right edges exclusive.
func (rs *RegionSet) Contains(state string, pt image.Point) bool {
	polys := rs.Polygons(state)
	if len(polys) == 0 {
		return true
	}
	for _, poly := range polys {
		if pointInPolygon(poly, pt) {
			return true
		}
	}
	return false
}

func pointInPolygon(poly Polygon, pt image.Point) bool {
	px := float64(pt.X) + 0.5
	py := float64(pt.Y) + 0.5

	inside := false
	j := len(poly) - 1
	for i := range poly {
		xi, yi := float64(poly[i].X), float64(poly[i].Y)
		xj, yj := float64(poly[j].X), float64(poly[j].Y)
		if (yi > py) != (yj > py) {
			if px < xi+(py-yi)*(xj-xi)/(yj-yi) {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}
