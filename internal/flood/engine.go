package flood

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"flooding-model/internal/core"
)

type offset struct {
	dx, dy int
	// weight scales the head difference by cellSize/distance.
	weight float64
}

var vonNeumannOffsets = []offset{
	{dx: 0, dy: -1, weight: 1},
	{dx: -1, dy: 0, weight: 1},
	{dx: 1, dy: 0, weight: 1},
	{dx: 0, dy: 1, weight: 1},
}

var mooreOffsets = []offset{
	{dx: -1, dy: -1, weight: math.Sqrt2 / 2},
	{dx: 0, dy: -1, weight: 1},
	{dx: 1, dy: -1, weight: math.Sqrt2 / 2},
	{dx: -1, dy: 0, weight: 1},
	{dx: 1, dy: 0, weight: 1},
	{dx: -1, dy: 1, weight: math.Sqrt2 / 2},
	{dx: 0, dy: 1, weight: 1},
	{dx: 1, dy: 1, weight: math.Sqrt2 / 2},
}

// Budget accumulates the water (depth summed over cells) that crossed the
// domain boundary since the engine was created.
type Budget struct {
	// River is the inflow added at river cells.
	River float64
	// Infiltrated is the water absorbed by permeable ground.
	Infiltrated float64
	// Drained is the water that left through edge cells.
	Drained float64
}

// Net returns the overall change in stored water implied by the budget.
func (b Budget) Net() float64 {
	return b.River - b.Infiltrated - b.Drained
}

// Engine advances water depth over a borrowed grid of cells.
//
// Each step reads only the previous step's depths: local sources and sinks
// are applied into one buffer, transport reads that buffer and accumulates net
// transfers into another, and the result is committed to the cells at the end.
// Update must not be called concurrently, and callers should not read the
// cells while a step is in progress.
type Engine struct {
	cfg     Config
	cells   []Cell
	w, h    int
	offsets []offset

	riverWaterIncrement float64
	lastIncrement       float64

	prev   []float64
	local  []float64
	delta  []float64
	flux   []float64
	depths []float64

	steps    int
	maxDelta float64
	budget   Budget
}

// NewEngine binds an engine to cells, which must hold GridWidth*GridHeight
// entries in row-major order. The slice is shared, not copied.
func NewEngine(cells []Cell, cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	total := cfg.GridWidth * cfg.GridHeight
	if len(cells) != total {
		return nil, fmt.Errorf("%w: got %d cells, want %dx%d=%d", ErrGridMismatch, len(cells), cfg.GridWidth, cfg.GridHeight, total)
	}
	for i := range cells {
		x, y := i%cfg.GridWidth, i/cfg.GridWidth
		if cells[i].X != x || cells[i].Y != y {
			return nil, fmt.Errorf("%w: cell %d is at (%d,%d), want (%d,%d)", ErrGridMismatch, i, cells[i].X, cells[i].Y, x, y)
		}
	}
	offsets := vonNeumannOffsets
	if cfg.Neighborhood == Moore {
		offsets = mooreOffsets
	}
	return &Engine{
		cfg:     cfg,
		cells:   cells,
		w:       cfg.GridWidth,
		h:       cfg.GridHeight,
		offsets: offsets,
		prev:    make([]float64, total),
		local:   make([]float64, total),
		delta:   make([]float64, total),
		flux:    make([]float64, total),
		depths:  make([]float64, total),
	}, nil
}

// Config returns the configuration snapshot the engine runs with.
func (e *Engine) Config() Config { return e.cfg }

// Size reports the grid dimensions.
func (e *Engine) Size() core.Size { return core.Size{W: e.w, H: e.h} }

// Cells exposes the grid the engine mutates.
func (e *Engine) Cells() []Cell { return e.cells }

// Cell returns the cell at (x, y), or nil outside the grid.
func (e *Engine) Cell(x, y int) *Cell {
	if x < 0 || x >= e.w || y < 0 || y >= e.h {
		return nil
	}
	return &e.cells[y*e.w+x]
}

// RiverWaterIncrement returns the inflow rate applied to river cells.
func (e *Engine) RiverWaterIncrement() float64 { return e.riverWaterIncrement }

// SetRiverWaterIncrement sets the water added to each river cell per unit
// time. Negative and NaN values are treated as no inflow.
func (e *Engine) SetRiverWaterIncrement(v float64) {
	if !(v > 0) || math.IsInf(v, 0) {
		v = 0
	}
	e.riverWaterIncrement = v
}

// Steps reports how many updates have run.
func (e *Engine) Steps() int { return e.steps }

// MaxDepthChange reports the largest absolute depth change of the last step.
func (e *Engine) MaxDepthChange() float64 { return e.maxDelta }

// Budget returns the cumulative boundary exchange.
func (e *Engine) Budget() Budget { return e.budget }

// TotalWater sums the water depth over all cells.
func (e *Engine) TotalWater() float64 {
	for i := range e.cells {
		e.depths[i] = e.cells[i].WaterDepth
	}
	return floats.Sum(e.depths)
}

// SimulationDidStop reports whether the grid has settled: at least one step
// ran, no river inflow was applied or is pending, and no cell's depth changed
// by more than StopEpsilon during the last step.
func (e *Engine) SimulationDidStop() bool {
	if e.steps == 0 {
		return false
	}
	if e.riverWaterIncrement != 0 || e.lastIncrement != 0 {
		return false
	}
	return e.maxDelta <= e.cfg.StopEpsilon
}

// Update advances the simulation by dt. Non-positive or non-finite dt is
// ignored.
func (e *Engine) Update(dt float64) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return
	}
	for i := range e.cells {
		e.prev[i] = e.cells[i].WaterDepth
	}
	e.lastIncrement = e.riverWaterIncrement
	e.applySources(dt)
	e.transport(dt)
	e.commit()
}

// applySources computes each cell's water after infiltration, river inflow
// and edge discharge. It reads prev and writes local only.
func (e *Engine) applySources(dt float64) {
	inflow := e.riverWaterIncrement * dt
	for i := range e.cells {
		c := &e.cells[i]
		water := e.prev[i]
		if c.IsEdge {
			e.budget.Drained += water
			water = 0
		} else if c.Permeability > 0 && water > 0 {
			loss := water * c.Permeability * e.cfg.InfiltrationRate * dt
			if loss > water {
				loss = water
			}
			if water-loss < e.cfg.DryDepth {
				loss = water
			}
			e.budget.Infiltrated += loss
			water -= loss
		}
		if c.IsRiver && inflow > 0 {
			water += inflow
			e.budget.River += inflow
		}
		e.local[i] = water
	}
}

// transport moves water down the head gradient. Heads are taken from local,
// transfers accumulate in delta, so the result does not depend on the sweep
// order.
func (e *Engine) transport(dt float64) {
	for i := range e.delta {
		e.delta[i] = 0
		e.flux[i] = 0
	}
	coef := e.cfg.FlowRate * dt
	if limit := 1 / float64(len(e.offsets)+1); coef > limit {
		coef = limit
	}
	if coef <= 0 {
		return
	}

	var drops [8]float64
	var targets [8]int
	for y := 0; y < e.h; y++ {
		for x := 0; x < e.w; x++ {
			idx := y*e.w + x
			water := e.local[idx]
			if water <= 0 || e.cells[idx].IsEdge {
				continue
			}
			head := e.cells[idx].BaseElevation + water

			n := 0
			total := 0.0
			for _, o := range e.offsets {
				nx, ny := x+o.dx, y+o.dy
				if nx < 0 || nx >= e.w || ny < 0 || ny >= e.h {
					continue
				}
				nIdx := ny*e.w + nx
				diff := head - (e.cells[nIdx].BaseElevation + e.local[nIdx])
				if diff <= 0 {
					continue
				}
				diff *= o.weight
				drops[n] = diff
				targets[n] = nIdx
				total += diff
				n++
			}
			if n == 0 {
				continue
			}

			out := coef * total
			if out > water {
				out = water
			}
			remaining := out
			for k := 0; k < n; k++ {
				share := out * drops[k] / total
				if k == n-1 || share > remaining {
					share = remaining
				}
				remaining -= share
				e.delta[targets[k]] += share
				e.flux[targets[k]] += share
			}
			e.delta[idx] -= out
			e.flux[idx] += out
		}
	}
}

func (e *Engine) commit() {
	maxDelta := 0.0
	for i := range e.cells {
		depth := e.local[i] + e.delta[i]
		if !(depth > 0) {
			depth = 0
		}
		if change := math.Abs(depth - e.prev[i]); change > maxDelta {
			maxDelta = change
		}
		e.cells[i].WaterDepth = depth
		e.cells[i].Flux = e.flux[i]
	}
	e.maxDelta = maxDelta
	e.steps++
}
