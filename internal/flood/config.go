package flood

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	// ErrInvalidConfig reports configuration values the engine cannot run with.
	ErrInvalidConfig = errors.New("flood: invalid config")
	// ErrGridMismatch reports a cell slice whose length disagrees with the config.
	ErrGridMismatch = errors.New("flood: cell count does not match grid size")
)

// Neighborhood selects which adjacent cells exchange water.
type Neighborhood uint8

const (
	// VonNeumann exchanges water with the four edge-sharing neighbours.
	VonNeumann Neighborhood = iota
	// Moore also includes the four diagonal neighbours.
	Moore
)

func (n Neighborhood) String() string {
	switch n {
	case VonNeumann:
		return "von_neumann"
	case Moore:
		return "moore"
	default:
		return "unknown"
	}
}

// Neighbors returns the number of cells exchanging water with each cell.
func (n Neighborhood) Neighbors() int {
	if n == Moore {
		return 8
	}
	return 4
}

// ParseNeighborhood accepts "4", "8", "von_neumann" and "moore".
func ParseNeighborhood(s string) (Neighborhood, bool) {
	switch s {
	case "4", "von_neumann", "vonneumann":
		return VonNeumann, true
	case "8", "moore":
		return Moore, true
	}
	return VonNeumann, false
}

// Config is the immutable snapshot an Engine runs with.
type Config struct {
	GridWidth  int
	GridHeight int

	// CellSize is the physical length of one cell edge in metres.
	CellSize float64
	// TimeStep is the model time advanced by one driver step.
	TimeStep float64

	// FlowRate scales how much of the head difference moves per unit time.
	FlowRate float64
	// InfiltrationRate multiplies each cell's permeability.
	InfiltrationRate float64

	Neighborhood Neighborhood

	// StopEpsilon is the largest per-cell depth change still considered quiescent.
	StopEpsilon float64
	// DryDepth is the depth under which an infiltrating cell is drained to zero.
	DryDepth float64
}

// DefaultConfig returns the standard engine configuration.
func DefaultConfig() Config {
	return Config{
		GridWidth:        160,
		GridHeight:       100,
		CellSize:         125,
		TimeStep:         0.1,
		FlowRate:         1.5,
		InfiltrationRate: 1,
		Neighborhood:     VonNeumann,
		StopEpsilon:      1e-5,
		DryDepth:         1e-6,
	}
}

// Validate reports whether the engine can run with this configuration.
func (c Config) Validate() error {
	if c.GridWidth <= 0 || c.GridHeight <= 0 {
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidConfig, c.GridWidth, c.GridHeight)
	}
	if !(c.CellSize > 0) || math.IsInf(c.CellSize, 0) {
		return fmt.Errorf("%w: cell size %v", ErrInvalidConfig, c.CellSize)
	}
	if !(c.TimeStep > 0) || math.IsInf(c.TimeStep, 0) {
		return fmt.Errorf("%w: time step %v", ErrInvalidConfig, c.TimeStep)
	}
	if c.FlowRate < 0 || math.IsNaN(c.FlowRate) {
		return fmt.Errorf("%w: flow rate %v", ErrInvalidConfig, c.FlowRate)
	}
	if c.InfiltrationRate < 0 || math.IsNaN(c.InfiltrationRate) {
		return fmt.Errorf("%w: infiltration rate %v", ErrInvalidConfig, c.InfiltrationRate)
	}
	if c.StopEpsilon < 0 || c.DryDepth < 0 {
		return fmt.Errorf("%w: negative threshold", ErrInvalidConfig)
	}
	if c.Neighborhood != VonNeumann && c.Neighborhood != Moore {
		return fmt.Errorf("%w: neighborhood %d", ErrInvalidConfig, c.Neighborhood)
	}
	return nil
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	return ApplyMap(DefaultConfig(), cfg)
}

// ApplyMap overrides fields of base with any recognised keys in cfg. Values
// that fail to parse or fall outside their domain are ignored.
func ApplyMap(base Config, cfg map[string]string) Config {
	c := base
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.GridWidth = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.GridHeight = parsed
		}
	}
	if v, ok := cfg["cell_size"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.CellSize = parsed
		}
	}
	if v, ok := cfg["time_step"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.TimeStep = parsed
		}
	}
	if v, ok := cfg["flow_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.FlowRate = parsed
		}
	}
	if v, ok := cfg["infiltration_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.InfiltrationRate = parsed
		}
	}
	if v, ok := cfg["neighborhood"]; ok {
		if parsed, ok := ParseNeighborhood(v); ok {
			c.Neighborhood = parsed
		}
	}
	if v, ok := cfg["stop_epsilon"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.StopEpsilon = parsed
		}
	}
	if v, ok := cfg["dry_depth"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.DryDepth = parsed
		}
	}
	return c
}
