package flood

import (
	"errors"
	"testing"
)

func TestFromMapOverridesKnownKeys(t *testing.T) {
	cfg := FromMap(map[string]string{
		"w":                 "12",
		"h":                 "7",
		"cell_size":         "30",
		"time_step":         "0.5",
		"flow_rate":         "0.25",
		"infiltration_rate": "2",
		"neighborhood":      "8",
		"stop_epsilon":      "0.001",
	})
	if cfg.GridWidth != 12 || cfg.GridHeight != 7 {
		t.Fatalf("grid = %dx%d, want 12x7", cfg.GridWidth, cfg.GridHeight)
	}
	if cfg.CellSize != 30 || cfg.TimeStep != 0.5 {
		t.Fatalf("cell size/time step = %v/%v", cfg.CellSize, cfg.TimeStep)
	}
	if cfg.FlowRate != 0.25 || cfg.InfiltrationRate != 2 {
		t.Fatalf("rates = %v/%v", cfg.FlowRate, cfg.InfiltrationRate)
	}
	if cfg.Neighborhood != Moore {
		t.Fatalf("neighborhood = %v, want moore", cfg.Neighborhood)
	}
	if cfg.StopEpsilon != 0.001 {
		t.Fatalf("stop epsilon = %v", cfg.StopEpsilon)
	}
}

func TestFromMapIgnoresInvalidValues(t *testing.T) {
	def := DefaultConfig()
	cfg := FromMap(map[string]string{
		"w":            "-3",
		"cell_size":    "abc",
		"time_step":    "0",
		"flow_rate":    "-1",
		"neighborhood": "hex",
	})
	if cfg != def {
		t.Fatalf("invalid overrides changed config: %+v", cfg)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(*Config){
		"width":     func(c *Config) { c.GridWidth = 0 },
		"cell size": func(c *Config) { c.CellSize = -1 },
		"time step": func(c *Config) { c.TimeStep = 0 },
		"flow rate": func(c *Config) { c.FlowRate = -0.5 },
		"epsilon":   func(c *Config) { c.StopEpsilon = -1 },
	}
	for name, mutate := range cases {
		cfg := DefaultConfig()
		mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%s: expected ErrInvalidConfig, got %v", name, err)
		}
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}
