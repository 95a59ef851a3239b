// Package atlas maps named UI elements to rectangles inside decoded skin
// sheets and owns the extracted sprite pixels for the lifetime of a loaded
// skin. The element table is fixed, versioned data compiled into the
// binary, not user input: skins only supply the pixels.
package atlas

import (
	"embed"
	"encoding/json"
	"fmt"
	"image"
	"io/fs"
	"sort"
)

//go:embed specs/*.json
var specFS embed.FS

// Spec is one window's sprite specification.
type Spec struct {
	Version  int                    `json:"version"`
	Window   string                 `json:"window"`
	Elements map[string]ElementSpec `json:"elements"`
}

// ElementSpec places one named element inside a source sheet. States map
// interaction-state names to alternative rectangles in the same sheet.
type ElementSpec struct {
	Sheet  string              `json:"sheet"`
	Rect   rectSpec            `json:"rect"`
	States map[string]rectSpec `json:"states"`
	Z      int                 `json:"z"`
}

// rectSpec is [x, y, w, h] in the JSON.
type rectSpec [4]int

func (r rectSpec) rect() image.Rectangle {
	return image.Rect(r[0], r[1], r[0]+r[2], r[1]+r[3])
}

var specs map[string]*Spec

func init() {
	specs = make(map[string]*Spec)
	entries, err := fs.ReadDir(specFS, "specs")
	if err != nil {
		panic(fmt.Sprintf("atlas: embedded specs: %v", err))
	}
	for _, entry := range entries {
		data, err := fs.ReadFile(specFS, "specs/"+entry.Name())
		if err != nil {
			panic(fmt.Sprintf("atlas: %s: %v", entry.Name(), err))
		}
		var spec Spec
		if err := json.Unmarshal(data, &spec); err != nil {
			panic(fmt.Sprintf("atlas: %s: %v", entry.Name(), err))
		}
		specs[spec.Window] = &spec
	}
}

// WindowSpec returns the compiled-in specification for a window.
func WindowSpec(window string) (*Spec, bool) {
	s, ok := specs[window]
	return s, ok
}

// Sheets lists every source sheet the spec references, sorted.
func (s *Spec) Sheets() []string {
	seen := make(map[string]bool)
	for _, el := range s.Elements {
		seen[el.Sheet] = true
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
