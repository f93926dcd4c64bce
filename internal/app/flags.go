package app

import (
	"flag"
	"fmt"
	"sort"
	"strings"
)

// Config represents the command-line parameters for the runner.
type Config struct {
	Preset    string
	Seed      int64
	TPS       int
	Frames    int
	Report    int
	Intensity string
	Duration  float64
	Overrides Overrides
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Preset:    "synthetic",
		Seed:      0,
		TPS:       0,
		Frames:    5000,
		Report:    24,
		Intensity: "medium",
		Duration:  2,
		Overrides: Overrides{},
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Preset, "preset", c.Preset, "landscape preset to simulate")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "terrain seed (0 keeps the preset seed)")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second, 0 runs unpaced")
	fs.IntVar(&c.Frames, "frames", c.Frames, "maximum number of frames to run")
	fs.IntVar(&c.Report, "report", c.Report, "frames between status lines, 0 disables")
	fs.StringVar(&c.Intensity, "rain", c.Intensity, "rain intensity: light, medium, heavy or extreme")
	fs.Float64Var(&c.Duration, "rain-days", c.Duration, "rain duration in days (1-4)")
	fs.Var(c.Overrides, "set", "config override key=value, repeatable")
}

// Overrides collects repeated key=value flags into a config map.
type Overrides map[string]string

func (o Overrides) String() string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+o[k])
	}
	return strings.Join(parts, ",")
}

// Set parses one key=value pair.
func (o Overrides) Set(v string) error {
	key, value, ok := strings.Cut(v, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("override %q is not key=value", v)
	}
	o[key] = strings.TrimSpace(value)
	return nil
}
