package skin

import (
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/cam-per/ampskin/skin/alpha"
)

// Config is the fully resolved per-skin configuration. It is built once
// at load time and attached to the package; nothing re-inspects skin
// files during rendering.
type Config struct {
	Transparency alpha.Policy
}

// configFile is the optional archive member carrying the configuration.
const configFile = "skin.ini"

// parseConfig resolves the transparency policy from an optional skin.ini.
// Precedence when several keys are present: explicit palette index, then
// key color, then top-left pixel. No file or no usable key means the
// historical magenta key color.
func parseConfig(data []byte) Config {
	cfg := Config{Transparency: alpha.Default()}
	if len(data) == 0 {
		return cfg
	}

	f, err := ini.LoadSources(ini.LoadOptions{
		Insensitive:             true,
		SkipUnrecognizableLines: true,
	}, data)
	if err != nil {
		Logger().Warn("unreadable skin.ini, using defaults", "error", err)
		return cfg
	}

	sec := f.Section("transparency")
	switch {
	case sec.HasKey("index"):
		idx, err := sec.Key("index").Uint()
		if err != nil || idx > 255 {
			Logger().Warn("bad transparency index, using defaults", "value", sec.Key("index").String())
			return cfg
		}
		cfg.Transparency = alpha.PaletteIndex{Index: uint8(idx)}
	case sec.HasKey("color"):
		if key, ok := parseHexColor(sec.Key("color").String()); ok {
			cfg.Transparency = key
		} else {
			Logger().Warn("bad transparency color, using defaults", "value", sec.Key("color").String())
		}
	case sec.Key("topleft").MustBool(false):
		cfg.Transparency = alpha.TopLeftPixel{}
	}
	return cfg
}

func parseHexColor(s string) (alpha.KeyColor, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return alpha.KeyColor{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return alpha.KeyColor{}, false
	}
	return alpha.KeyColor{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, true
}
