package region

import (
	"fmt"
	"image"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

// stateHeaders are the window-state section names that mark a file as
// polygon grammar.
var stateHeaders = map[string]bool{
	"normal":      true,
	"windowshade": true,
	"equalizer":   true,
	"mini":        true,
}

var hotspotLine = regexp.MustCompile(`^(?i:rect)\s+(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*;\s*(.*)$`)

// Parse reads a region.txt. The grammar is chosen up front: a recognizable
// window-state section header selects the polygon grammar, anything else
// is treated as hotspot lines. A file is never parsed under both.
func Parse(data []byte) (*File, error) {
	text := string(data)
	if hasStateHeader(text) {
		return parsePolygons(text)
	}
	return parseHotspots(text), nil
}

func hasStateHeader(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 2 && line[0] == '[' && line[len(line)-1] == ']' {
			if stateHeaders[strings.ToLower(strings.TrimSpace(line[1:len(line)-1]))] {
				return true
			}
		}
	}
	return false
}

func parsePolygons(text string) (*File, error) {
	file := &File{Polygons: &RegionSet{states: make(map[string][]Polygon)}}

	// Hotspot-shaped lines inside a polygon file are unspecified by the
	// format. They are dropped before INI parsing and flagged, the rest
	// of the file parses normally.
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if hotspotLine.MatchString(strings.TrimSpace(line)) {
			file.Warnings = append(file.Warnings, fmt.Errorf("%w: %q", ErrMixedGrammar, strings.TrimSpace(line)))
			continue
		}
		kept = append(kept, line)
	}

	cfg, err := ini.LoadSources(ini.LoadOptions{
		Insensitive:             true,
		SkipUnrecognizableLines: true,
	}, []byte(strings.Join(kept, "\n")))
	if err != nil {
		return nil, fmt.Errorf("region: %w", err)
	}

	for _, sec := range cfg.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		polys, warns := parseSection(sec)
		file.Warnings = append(file.Warnings, warns...)
		if polys != nil {
			file.Polygons.states[sec.Name()] = polys
		}
	}
	return file, nil
}

// parseSection turns one state section's NumPoints/PointList pair into
// polygons. The coordinate stream is consumed count×2 values at a time in
// declaration order. A section missing either key is skipped, it does not
// fail the file.
func parseSection(sec *ini.Section) ([]Polygon, []error) {
	if !sec.HasKey("numpoints") || !sec.HasKey("pointlist") {
		return nil, []error{fmt.Errorf("%w: [%s]", ErrIncompleteSection, sec.Name())}
	}

	counts, err := parseInts(sec.Key("numpoints").String(), ",")
	if err != nil {
		return nil, []error{fmt.Errorf("%w: [%s] NumPoints: %v", ErrBadNumber, sec.Name(), err)}
	}
	coords, err := parseInts(sec.Key("pointlist").String(), ", \t")
	if err != nil {
		return nil, []error{fmt.Errorf("%w: [%s] PointList: %v", ErrBadNumber, sec.Name(), err)}
	}

	var warns []error
	polys := make([]Polygon, 0, len(counts))
	idx := 0
	for _, count := range counts {
		if count < 0 {
			warns = append(warns, fmt.Errorf("%w: [%s] negative vertex count %d",
				ErrBadNumber, sec.Name(), count))
			break
		}
		// Division form keeps the bound check overflow-proof for absurd
		// counts.
		if count > (len(coords)-idx)/2 {
			warns = append(warns, fmt.Errorf("%w: [%s] need 2x%d coordinates, %d left",
				ErrCoordinateCountMismatch, sec.Name(), count, len(coords)-idx))
			break
		}
		poly := make(Polygon, count)
		for i := range count {
			poly[i] = image.Pt(coords[idx], coords[idx+1])
			idx += 2
		}
		if count < 3 {
			warns = append(warns, fmt.Errorf("region: [%s] polygon with %d vertices dropped", sec.Name(), count))
			continue
		}
		polys = append(polys, poly)
	}
	return polys, warns
}

// parseInts splits on any of the delimiter runes, freely mixed, and
// parses the remaining tokens as integers.
func parseInts(s, delims string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(delims, r)
	})
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func parseHotspots(text string) *File {
	hotspots := make(HotspotMap)
	for _, line := range strings.Split(text, "\n") {
		m := hotspotLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		x1, _ := strconv.Atoi(m[1])
		y1, _ := strconv.Atoi(m[2])
		x2, _ := strconv.Atoi(m[3])
		y2, _ := strconv.Atoi(m[4])
		rect := image.Rect(x1, y1, x2, y2)
		for _, name := range strings.Split(m[5], ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			hotspots[name] = rect
		}
	}
	return &File{Hotspots: hotspots}
}
