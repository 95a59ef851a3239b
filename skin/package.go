// Package skin loads classic skin archives into immutable packages:
// decoded sheets, extracted sprites, window silhouettes and hit-test
// geometry, published to the render path through a single atomic swap.
package skin

import (
	"context"
	"image"
	"sync"
	"sync/atomic"

	"github.com/cam-per/ampskin/skin/atlas"
	"github.com/cam-per/ampskin/skin/region"
)

// Logical canvas of the main window, fixed by the format.
const (
	MainWidth  = 275
	MainHeight = 116
)

// Package is everything one loaded skin provides. It is assembled in
// full before anyone sees it and never mutated afterwards, so readers
// need no locks.
type Package struct {
	gen       uint64
	source    string
	sheets    map[string]*image.RGBA
	atlas     *atlas.Atlas
	regions   *region.RegionSet
	hotspots  region.HotspotMap
	viscolors VisColors
	config    Config
	warnings  []error
}

// Generation is a strictly increasing id per load; sprite cache keys
// carry it so stale lookups cannot cross a reload.
func (p *Package) Generation() uint64 { return p.gen }

// Source is the path the package was loaded from.
func (p *Package) Source() string { return p.source }

// Sheet returns a decoded source image by file name, nil when the skin
// does not ship it.
func (p *Package) Sheet(name string) *image.RGBA { return p.sheets[name] }

func (p *Package) Atlas() *atlas.Atlas         { return p.atlas }
func (p *Package) Regions() *region.RegionSet  { return p.regions }
func (p *Package) Hotspots() region.HotspotMap { return p.hotspots }
func (p *Package) VisColors() VisColors        { return p.viscolors }
func (p *Package) Config() Config              { return p.config }

// Warnings lists the non-fatal defects found during the load: skipped
// geometry sections, out-of-bounds sprites, undecodable optional sheets.
func (p *Package) Warnings() []error { return p.warnings }

// Manager owns the currently published package and serializes skin
// replacement. Readers call Current each frame and work on that snapshot;
// the only synchronized operation on the hot path is the pointer load.
type Manager struct {
	current atomic.Pointer[Package]
	gen     atomic.Uint64

	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewManager() *Manager { return &Manager{} }

// Current returns the published package, nil before the first successful
// load.
func (m *Manager) Current() *Package { return m.current.Load() }

// Load reads a skin and publishes it. A Load started later supersedes an
// in-flight one: the older context is cancelled and, should the older
// load still finish, its result is discarded with ErrSuperseded. Readers
// never observe a partially built package. On failure the previously
// published package stays in place.
func (m *Manager) Load(ctx context.Context, path string) (*Package, error) {
	gen := m.gen.Add(1)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	m.mu.Lock()
	if m.cancel != nil {
		m.cancel()
	}
	m.cancel = cancel
	m.mu.Unlock()

	pkg, err := load(ctx, path, gen)
	if err != nil {
		return nil, err
	}

	for {
		cur := m.current.Load()
		if cur != nil && cur.Generation() > gen {
			return nil, ErrSuperseded
		}
		if m.current.CompareAndSwap(cur, pkg) {
			return pkg, nil
		}
	}
}
