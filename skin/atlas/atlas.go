package atlas

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
)

var ErrSpriteOutOfBounds = errors.New("atlas: sprite rectangle out of bounds")

// StateNormal is the implicit state every element has; its rectangle is
// the element's base rect.
const StateNormal = "normal"

// Sprite is a named logical element. It does not own sheet pixels: it
// references the source image by sheet name, and the extracted per-state
// buffers live in the atlas cache.
type Sprite struct {
	Name   string
	Sheet  string
	Z      int
	states map[string]image.Rectangle
}

// Rect returns the source rectangle for a state, falling back to the
// normal state for unknown names.
func (s *Sprite) Rect(state string) image.Rectangle {
	if r, ok := s.states[state]; ok {
		return r
	}
	return s.states[StateNormal]
}

// States returns the number of interaction states, the normal one included.
func (s *Sprite) States() int { return len(s.states) }

// Atlas holds every extracted sprite of one loaded skin generation.
type Atlas struct {
	gen      uint64
	sprites  map[string]*Sprite
	cache    *Cache
	warnings []error
}

// Build extracts all sprites of spec from the decoded sheets. Extraction
// is a plain sub-rectangle copy into an owned buffer. A sprite whose
// rectangle falls outside its sheet (or whose sheet failed to decode) is
// substituted with a fully transparent placeholder of the declared size,
// so composition never aborts over one bad sprite.
func Build(gen uint64, spec *Spec, sheets map[string]*image.RGBA) *Atlas {
	a := &Atlas{
		gen:     gen,
		sprites: make(map[string]*Sprite, len(spec.Elements)),
		cache:   newCache(gen),
	}

	for name, el := range spec.Elements {
		sprite := &Sprite{
			Name:   name,
			Sheet:  el.Sheet,
			Z:      el.Z,
			states: map[string]image.Rectangle{StateNormal: el.Rect.rect()},
		}
		for state, r := range el.States {
			sprite.states[state] = r.rect()
		}
		a.sprites[name] = sprite

		sheet := sheets[el.Sheet]
		for state, rect := range sprite.states {
			a.cache.put(name, state, a.extract(name, state, sheet, rect))
		}
	}
	return a
}

func (a *Atlas) extract(name, state string, sheet *image.RGBA, rect image.Rectangle) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	if sheet == nil || !rect.In(sheet.Bounds()) {
		a.warnings = append(a.warnings,
			fmt.Errorf("%w: %s/%s %v", ErrSpriteOutOfBounds, name, state, rect))
		return out // declared size, fully transparent
	}
	draw.Draw(out, out.Bounds(), sheet, rect.Min, draw.Src)
	return out
}

// Sprite returns the metadata for a named element.
func (a *Atlas) Sprite(name string) (*Sprite, bool) {
	s, ok := a.sprites[name]
	return s, ok
}

// Pixels returns the extracted buffer for (name, state) from the cache.
// Unknown states fall back to the normal state; unknown names return nil.
func (a *Atlas) Pixels(name, state string) *image.RGBA {
	if img := a.cache.get(name, state); img != nil {
		return img
	}
	return a.cache.get(name, StateNormal)
}

// Generation identifies the skin load this atlas belongs to.
func (a *Atlas) Generation() uint64 { return a.gen }

// Warnings lists the sprites that were replaced by placeholders.
func (a *Atlas) Warnings() []error { return a.warnings }
