package region

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePolygonGrammar(t *testing.T) {
	src := `; shaped titlebar
[Normal]
NumPoints = 4, 8
PointList = 0,0 10,0 10,10 0,10, 20 0, 30 0, 35 5, 30 10, 20 10, 15 5, 16 4, 17 3

[WindowShade]
NumPoints=3
PointList=0,0,14,0,7,7
`
	f, err := Parse([]byte(src))
	require.NoError(t, err)
	require.NotNil(t, f.Polygons)
	assert.Nil(t, f.Hotspots)
	assert.Empty(t, f.Warnings)

	// NumPoints = 4,8 over a 24-value stream: exactly two polygons of 4
	// and 8 vertices, consumed in stream order without overlap.
	polys := f.Polygons.Polygons("Normal")
	require.Len(t, polys, 2)
	require.Len(t, polys[0], 4)
	require.Len(t, polys[1], 8)
	assert.Equal(t, image.Pt(0, 0), polys[0][0])
	assert.Equal(t, image.Pt(0, 10), polys[0][3])
	assert.Equal(t, image.Pt(20, 0), polys[1][0])
	assert.Equal(t, image.Pt(17, 3), polys[1][7])

	shade := f.Polygons.Polygons("windowshade")
	require.Len(t, shade, 1)
	assert.Equal(t, Polygon{image.Pt(0, 0), image.Pt(14, 0), image.Pt(7, 7)}, shade[0])
}

func TestParseIncompleteSection(t *testing.T) {
	src := `[Normal]
NumPoints=4

[WindowShade]
NumPoints=3
PointList=0,0,14,0,7,7
`
	f, err := Parse([]byte(src))
	require.NoError(t, err)

	// The broken section is skipped, not fatal to the file.
	assert.Empty(t, f.Polygons.Polygons("Normal"))
	assert.Len(t, f.Polygons.Polygons("WindowShade"), 1)
	require.Len(t, f.Warnings, 1)
	assert.ErrorIs(t, f.Warnings[0], ErrIncompleteSection)
}

func TestParseCoordinateCountMismatch(t *testing.T) {
	src := `[Normal]
NumPoints=3,4
PointList=0,0,10,0,5,5,1,1
`
	f, err := Parse([]byte(src))
	require.NoError(t, err)

	// The first polygon fits the stream and is kept, the second does not.
	polys := f.Polygons.Polygons("Normal")
	require.Len(t, polys, 1)
	require.Len(t, f.Warnings, 1)
	assert.ErrorIs(t, f.Warnings[0], ErrCoordinateCountMismatch)
}

func TestParseHostileVertexCounts(t *testing.T) {
	// Counts straight from the archive must never crash the parser.
	tests := []struct {
		name string
		src  string
		want error
	}{
		{
			name: "negative count",
			src:  "[Normal]\nNumPoints=-1\nPointList=0,0,10,0,5,5\n",
			want: ErrBadNumber,
		},
		{
			name: "count past any stream",
			src:  "[Normal]\nNumPoints=2147483647\nPointList=0,0,10,0,5,5\n",
			want: ErrCoordinateCountMismatch,
		},
		{
			name: "negative count after a good polygon",
			src:  "[Normal]\nNumPoints=3,-1\nPointList=0,0,10,0,5,5\n",
			want: ErrBadNumber,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.src))
			require.NoError(t, err)
			require.Len(t, f.Warnings, 1)
			assert.ErrorIs(t, f.Warnings[0], tt.want)
		})
	}

	// Polygons consumed before the bad count survive.
	f, err := Parse([]byte("[Normal]\nNumPoints=3,-1\nPointList=0,0,10,0,5,5\n"))
	require.NoError(t, err)
	assert.Len(t, f.Polygons.Polygons("Normal"), 1)
}

func TestParseMixedGrammar(t *testing.T) {
	src := `[Normal]
NumPoints=3
PointList=0,0,10,0,5,5
Rect 0, 0, 9, 9 ; stray
`
	f, err := Parse([]byte(src))
	require.NoError(t, err)

	// Polygon grammar wins, the hotspot-shaped line is ignored.
	require.NotNil(t, f.Polygons)
	assert.Nil(t, f.Hotspots)
	assert.Len(t, f.Polygons.Polygons("Normal"), 1)
	require.Len(t, f.Warnings, 1)
	assert.ErrorIs(t, f.Warnings[0], ErrMixedGrammar)
}

func TestParseHotspotGrammar(t *testing.T) {
	src := `
some header junk
Rect 0, 0, 23, 11 ; prev, previous
rect 24, 0, 47, 11 ; play
not a rect line
`
	f, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Nil(t, f.Polygons)

	want := image.Rect(0, 0, 23, 11)
	assert.Equal(t, want, f.Hotspots["prev"])
	assert.Equal(t, want, f.Hotspots["previous"])
	assert.Equal(t, image.Rect(24, 0, 47, 11), f.Hotspots["play"])
	assert.Len(t, f.Hotspots, 3)
}

func TestContainsEdgeRule(t *testing.T) {
	f, err := Parse([]byte("[Normal]\nNumPoints=4\nPointList=0,0 10,0 10,10 0,10"))
	require.NoError(t, err)
	rs := f.Polygons

	// Pixel centers: top and left boundary pixels are inside, bottom and
	// right are out. The vertex pixel (0,0) is therefore inside.
	assert.True(t, rs.Contains("Normal", image.Pt(0, 0)))
	assert.True(t, rs.Contains("Normal", image.Pt(9, 9)))
	assert.False(t, rs.Contains("Normal", image.Pt(10, 5)))
	assert.False(t, rs.Contains("Normal", image.Pt(5, 10)))
	assert.False(t, rs.Contains("Normal", image.Pt(500, 500)))

	// A state without polygons has no custom shape.
	assert.True(t, rs.Contains("Equalizer", image.Pt(500, 500)))
}

func TestContainsConcavePolygon(t *testing.T) {
	// U shape: the notch between the prongs is outside.
	f, err := Parse([]byte("[Normal]\nNumPoints=8\nPointList=0,0 3,0 3,6 7,6 7,0 10,0 10,10 0,10"))
	require.NoError(t, err)
	rs := f.Polygons

	assert.True(t, rs.Contains("normal", image.Pt(1, 1)))
	assert.True(t, rs.Contains("normal", image.Pt(8, 1)))
	assert.False(t, rs.Contains("normal", image.Pt(5, 1)))
	assert.True(t, rs.Contains("normal", image.Pt(5, 8)))
}
