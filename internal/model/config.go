package model

import (
	"strconv"

	"flooding-model/internal/flood"
	"flooding-model/internal/terrain"
)

// Config collects everything needed to build and drive a flood simulation.
type Config struct {
	Name string
	Seed int64

	Engine    flood.Config
	Terrain   terrain.Options
	Generator terrain.GenOptions

	// Layers overrides the generated terrain when set. Its fields must match
	// the engine grid size.
	Layers *terrain.Layers

	// RainStrength is the river increment per unit of model time for each
	// RainIntensity.
	RainStrength [4]float64
	// ModelTimeToHours converts model time into hours.
	ModelTimeToHours float64
	// RiverStageIncreaseSpeed scales how fast rain raises the river stage
	// before the river starts flooding.
	RiverStageIncreaseSpeed float64
	// SpeedMult is the number of engine steps per frame.
	SpeedMult int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	engine := flood.DefaultConfig()
	gen := terrain.DefaultGenOptions()
	gen.Width = engine.GridWidth
	gen.Height = engine.GridHeight
	return Config{
		Name:   "synthetic",
		Seed:   1337,
		Engine: engine,
		Terrain: terrain.Options{
			FillTerrainEdges: true,
			MinElevation:     gen.MinElevation,
			MaxElevation:     gen.MaxElevation,
		},
		Generator:               gen,
		RainStrength:            [4]float64{0.05, 0.1, 0.2, 0.4},
		ModelTimeToHours:        1,
		RiverStageIncreaseSpeed: 1,
		SpeedMult:               5,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	return ApplyMap(DefaultConfig(), cfg)
}

// ApplyMap overrides fields of base with any recognised keys in cfg.
func ApplyMap(base Config, cfg map[string]string) Config {
	c := base
	if cfg == nil {
		return c
	}
	c.Engine = flood.ApplyMap(c.Engine, cfg)
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["speed_mult"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.SpeedMult = parsed
		}
	}
	if v, ok := cfg["model_time_to_hours"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.ModelTimeToHours = parsed
		}
	}
	if v, ok := cfg["river_stage_increase_speed"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.RiverStageIncreaseSpeed = parsed
		}
	}
	for i, key := range rainStrengthKeys {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
				c.RainStrength[i] = parsed
			}
		}
	}
	if v, ok := cfg["fill_terrain_edges"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Terrain.FillTerrainEdges = parsed
		}
	}
	if v, ok := cfg["elevation_vertical_tilt"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Terrain.ElevationVerticalTilt = parsed
		}
	}
	if v, ok := cfg["max_elevation"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > c.Terrain.MinElevation {
			c.Terrain.MaxElevation = parsed
		}
	}
	if v, ok := cfg["river_width"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Generator.RiverWidth = parsed
		}
	}
	if v, ok := cfg["river_depth"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Generator.RiverDepth = parsed
		}
	}
	if v, ok := cfg["permeability_max"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= c.Generator.PermeabilityMin && parsed <= 1 {
			c.Generator.PermeabilityMax = parsed
		}
	}
	return c
}

var rainStrengthKeys = [4]string{
	"rain_strength_light",
	"rain_strength_medium",
	"rain_strength_heavy",
	"rain_strength_extreme",
}

// generatorOptions aligns the generator with the engine grid and the terrain
// elevation range.
func (c Config) generatorOptions() terrain.GenOptions {
	gen := c.Generator
	gen.Width = c.Engine.GridWidth
	gen.Height = c.Engine.GridHeight
	gen.MinElevation = c.Terrain.MinElevation
	gen.MaxElevation = c.Terrain.MaxElevation
	return gen
}
