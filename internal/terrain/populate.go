package terrain

import (
	"errors"
	"fmt"
	"math"

	"flooding-model/internal/core"
	"flooding-model/internal/flood"
)

var (
	// ErrLayerSize reports a layer whose dimensions differ from the grid.
	ErrLayerSize = errors.New("terrain: layer size does not match grid")
	// ErrLayerValue reports a value the engine cannot accept.
	ErrLayerValue = errors.New("terrain: invalid layer value")
)

// Layers holds the resolved per-cell source data. Only Elevation is required;
// missing layers read as zero.
type Layers struct {
	Elevation    *core.Field
	River        *core.Field
	WaterDepth   *core.Field
	Permeability *core.Field
}

// Options controls how layers are turned into cells.
type Options struct {
	// FillTerrainEdges marks the outer ring as drainage edges at elevation 0.
	FillTerrainEdges bool
	// ElevationVerticalTilt adds a north-south slope, as a percentage of the
	// elevation range. Positive values raise the southern rows.
	ElevationVerticalTilt float64

	MinElevation float64
	MaxElevation float64
}

// Populate builds the engine's cell grid from layers. The returned slice is
// owned by the caller; the engine only borrows it.
func Populate(w, h int, layers Layers, opts Options) ([]flood.Cell, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: grid %dx%d", ErrLayerSize, w, h)
	}
	if layers.Elevation == nil {
		return nil, fmt.Errorf("%w: elevation layer missing", ErrLayerSize)
	}
	named := []struct {
		name  string
		field *core.Field
	}{
		{"elevation", layers.Elevation},
		{"river", layers.River},
		{"water depth", layers.WaterDepth},
		{"permeability", layers.Permeability},
	}
	for _, l := range named {
		if l.field == nil {
			continue
		}
		if l.field.W != w || l.field.H != h {
			return nil, fmt.Errorf("%w: %s is %dx%d, grid is %dx%d", ErrLayerSize, l.name, l.field.W, l.field.H, w, h)
		}
	}

	tilt := opts.ElevationVerticalTilt / 100 * (opts.MaxElevation - opts.MinElevation)

	cells := make([]flood.Cell, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			isRiver := valueAt(layers.River, idx) > 0
			isEdge := opts.FillTerrainEdges && (x == 0 || x == w-1 || y == 0 || y == h-1)

			base := valueAt(layers.Elevation, idx)
			if math.IsNaN(base) || math.IsInf(base, 0) {
				return nil, fmt.Errorf("%w: elevation %v at (%d,%d)", ErrLayerValue, base, x, y)
			}
			if tilt != 0 {
				progress := float64(y) / float64(h)
				if tilt > 0 {
					base += math.Abs(tilt) * progress
				} else {
					base += math.Abs(tilt) * (1 - progress)
				}
			}
			if isEdge {
				base = 0
			}

			depth := valueAt(layers.WaterDepth, idx)
			if depth < 0 || math.IsNaN(depth) {
				return nil, fmt.Errorf("%w: water depth %v at (%d,%d)", ErrLayerValue, depth, x, y)
			}

			perm := 0.0
			if !isRiver {
				perm = valueAt(layers.Permeability, idx)
				if !(perm >= 0 && perm <= 1) {
					return nil, fmt.Errorf("%w: permeability %v at (%d,%d)", ErrLayerValue, perm, x, y)
				}
			}

			cells = append(cells, flood.NewCell(flood.CellOptions{
				X:             x,
				Y:             y,
				IsEdge:        isEdge,
				IsRiver:       isRiver,
				BaseElevation: base,
				WaterDepth:    depth,
				Permeability:  perm,
			}))
		}
	}
	return cells, nil
}

func valueAt(f *core.Field, idx int) float64 {
	if f == nil {
		return 0
	}
	return f.Values()[idx]
}
