package flood

// CellOptions carries the resolved per-cell data supplied by grid population.
type CellOptions struct {
	X, Y          int
	IsEdge        bool
	IsRiver       bool
	BaseElevation float64
	WaterDepth    float64
	Permeability  float64
}

// Cell is the terrain and water state of one grid point. Coordinates, flags,
// elevation and permeability are fixed once the grid is populated; only the
// engine writes WaterDepth and Flux.
type Cell struct {
	X, Y    int
	IsEdge  bool
	IsRiver bool

	BaseElevation float64
	WaterDepth    float64
	Permeability  float64

	// Flux is the volume moved by transport through this cell during the
	// most recent step (outflow plus inflow).
	Flux float64

	initialWaterDepth float64
}

// NewCell builds a cell and records its starting water depth for Reset.
func NewCell(opts CellOptions) Cell {
	depth := opts.WaterDepth
	if depth < 0 {
		depth = 0
	}
	perm := opts.Permeability
	if opts.IsRiver {
		perm = 0
	}
	return Cell{
		X:                 opts.X,
		Y:                 opts.Y,
		IsEdge:            opts.IsEdge,
		IsRiver:           opts.IsRiver,
		BaseElevation:     opts.BaseElevation,
		WaterDepth:        depth,
		Permeability:      perm,
		initialWaterDepth: depth,
	}
}

// TotalElevation is the water surface height used for flow comparisons.
func (c Cell) TotalElevation() float64 {
	return c.BaseElevation + c.WaterDepth
}

// InitialWaterDepth returns the depth captured at construction.
func (c Cell) InitialWaterDepth() float64 { return c.initialWaterDepth }

// Reset restores the starting water depth and clears transient flow state.
func (c *Cell) Reset() {
	c.WaterDepth = c.initialWaterDepth
	c.Flux = 0
}

// ResetAll resets every cell in the grid.
func ResetAll(cells []Cell) {
	for i := range cells {
		cells[i].Reset()
	}
}
