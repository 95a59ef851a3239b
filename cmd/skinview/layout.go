package main

import (
	"image"

	"github.com/cam-per/ampskin/render"
	"github.com/cam-per/ampskin/render/text"
	"github.com/cam-per/ampskin/render/vis"
	"github.com/cam-per/ampskin/skin"
)

// placement pins one sprite state to its classic main-window position.
type placement struct {
	sprite string
	state  string
	at     image.Point
}

// The static main-window layout. Z-order comes from the sprite
// specification, so order here does not matter.
var mainLayout = []placement{
	{sprite: "main-background", at: image.Pt(0, 0)},
	{sprite: "titlebar", at: image.Pt(0, 0)},
	{sprite: "clutterbar", at: image.Pt(10, 22)},
	{sprite: "playback-indicator", at: image.Pt(26, 28)},
	{sprite: "mono", at: image.Pt(212, 41)},
	{sprite: "stereo", state: "on", at: image.Pt(239, 41)},
	{sprite: "eq-button", at: image.Pt(219, 58)},
	{sprite: "playlist-button", at: image.Pt(242, 58)},
	{sprite: "position-bar", at: image.Pt(16, 72)},
	{sprite: "position-thumb", at: image.Pt(16, 72)},
	{sprite: "prev-button", at: image.Pt(16, 88)},
	{sprite: "play-button", at: image.Pt(39, 88)},
	{sprite: "pause-button", at: image.Pt(62, 88)},
	{sprite: "stop-button", at: image.Pt(85, 88)},
	{sprite: "next-button", at: image.Pt(108, 88)},
	{sprite: "eject-button", at: image.Pt(136, 89)},
	{sprite: "shuffle", at: image.Pt(164, 89)},
	{sprite: "repeat", at: image.Pt(210, 89)},
}

// Overlay positions within the main window.
var (
	visAt    = image.Pt(24, 43)
	titleAt  = image.Pt(111, 27)
	titlePx  = 25 * text.GlyphWidth
	overlayZ = 10
)

// buildRequests assembles the composition list for one frame: the static
// sprite layout plus the title ticker and the visualization overlay.
func buildRequests(ticker *text.Ticker, tr *text.Renderer, band int, visImg *image.RGBA) []render.Request {
	reqs := make([]render.Request, 0, len(mainLayout)+2)
	for _, p := range mainLayout {
		state := p.state
		if state == "" {
			state = "normal"
		}
		reqs = append(reqs, render.Request{Sprite: p.sprite, State: state, At: p.at})
	}

	if ticker != nil {
		reqs = append(reqs, render.Request{
			Image: ticker.Render(tr, band),
			At:    titleAt,
			Z:     overlayZ,
		})
	}
	if visImg != nil {
		reqs = append(reqs, render.Request{Image: visImg, At: visAt, Z: overlayZ})
	}
	return reqs
}

// demoSpectrum fakes analyzer bar heights for still renders and for the
// viewer when no audio source feeds it.
func demoSpectrum(phase int) [vis.Bars]int {
	var bars [vis.Bars]int
	for i := range bars {
		v := (i*5 + phase) % (2 * vis.Height)
		if v >= vis.Height {
			v = 2*vis.Height - v
		}
		bars[i] = v
	}
	return bars
}

func newRenderer(pkg *skin.Package) *render.Renderer {
	return render.New(pkg.Atlas(), pkg.Regions(), pkg.Hotspots(), skin.MainWidth, skin.MainHeight)
}
