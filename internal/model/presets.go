package model

import (
	"fmt"
	"sort"

	"flooding-model/internal/core"
)

// Preset adjusts the default configuration to a known landscape.
type Preset struct {
	Name        string
	Description string
	apply       func(*Config)
}

var presets = map[string]Preset{
	"synthetic": {
		Name:        "synthetic",
		Description: "generated valley with default settings",
		apply:       func(*Config) {},
	},
	"iowa": {
		Name:        "iowa",
		Description: "Iowa City sized valley, 20km x 13km, 45m relief",
		apply: func(c *Config) {
			setModelSize(c, 20000, 13000, 160)
			c.Terrain.MaxElevation = 45
		},
	},
	"iowa_amplified": {
		Name:        "iowa_amplified",
		Description: "Iowa City sized valley with twenty times the relief",
		apply: func(c *Config) {
			setModelSize(c, 20000, 13000, 160)
			c.Terrain.MaxElevation = 45 * 20
		},
	},
	"river_city": {
		Name:        "river_city",
		Description: "smaller 8km x 8km town along a river",
		apply: func(c *Config) {
			setModelSize(c, 8000, 8000, 100)
			c.Terrain.MaxElevation = 45
			c.Generator.RiverMeander = 8
		},
	},
}

// setModelSize fits a grid with the given number of columns to a physical
// model size in metres.
func setModelSize(c *Config, widthM, heightM float64, columns int) {
	cellSize := widthM / float64(columns)
	c.Engine.GridWidth = columns
	c.Engine.GridHeight = int(heightM/cellSize + 0.5)
	c.Engine.CellSize = cellSize
}

// PresetNames lists the available presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupPreset returns the named preset.
func LookupPreset(name string) (Preset, bool) {
	p, ok := presets[name]
	return p, ok
}

// PresetConfig layers defaults, the named preset and the overrides map, in
// that order.
func PresetConfig(name string, overrides map[string]string) (Config, error) {
	p, ok := presets[name]
	if !ok {
		return Config{}, fmt.Errorf("model: unknown preset %q", name)
	}
	cfg := DefaultConfig()
	cfg.Name = p.Name
	p.apply(&cfg)
	return ApplyMap(cfg, overrides), nil
}

func init() {
	for name := range presets {
		name := name
		core.Register(name, func(overrides map[string]string) (core.Sim, error) {
			cfg, err := PresetConfig(name, overrides)
			if err != nil {
				return nil, err
			}
			return New(cfg)
		})
	}
}
