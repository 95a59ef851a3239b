package main

import (
	"fmt"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// viewerConfig collects the presentation knobs shared by the render and
// view commands. Command-line flags override file values.
type viewerConfig struct {
	Scale float64 `koanf:"scale"`
	State string  `koanf:"state"`
	Title string  `koanf:"title"`
	Band  int     `koanf:"band"`
}

func defaultConfig() viewerConfig {
	return viewerConfig{
		Scale: 2,
		State: "normal",
		Title: "ampskin",
	}
}

// loadConfig reads an optional TOML config file over the defaults.
func loadConfig(path string) (viewerConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
