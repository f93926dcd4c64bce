package terrain

import (
	"math"

	"github.com/aquilax/go-perlin"

	"flooding-model/internal/core"
)

// GenOptions shapes a synthetic river valley.
type GenOptions struct {
	Width  int
	Height int

	MinElevation float64
	MaxElevation float64

	// NoiseScale is the noise frequency per cell.
	NoiseScale float64
	Octaves    int32
	Alpha      float64
	Beta       float64

	// ValleyDepth lowers terrain near the river, as a fraction of the range.
	ValleyDepth float64
	// ValleyWidth is the falloff distance of the valley in cells.
	ValleyWidth float64

	RiverWidth   int
	RiverMeander float64
	// RiverDepth is the initial water depth in river cells.
	RiverDepth float64

	PermeabilityMin float64
	PermeabilityMax float64
	// PermeabilityScale is the permeability noise frequency per cell.
	PermeabilityScale float64
}

// DefaultGenOptions returns a valley roughly matching the bundled presets.
func DefaultGenOptions() GenOptions {
	return GenOptions{
		Width:             160,
		Height:            100,
		MinElevation:      0,
		MaxElevation:      45,
		NoiseScale:        0.035,
		Octaves:           4,
		Alpha:             2,
		Beta:              2,
		ValleyDepth:       0.6,
		ValleyWidth:       18,
		RiverWidth:        3,
		RiverMeander:      12,
		RiverDepth:        0.5,
		PermeabilityMin:   0,
		PermeabilityMax:   0.05,
		PermeabilityScale: 0.08,
	}
}

// Generate builds elevation, river, water depth and permeability layers from
// seeded Perlin noise. The same options and seed always yield the same layers.
func Generate(opts GenOptions, seed int64) Layers {
	w, h := opts.Width, opts.Height
	rng := core.NewRNG(seed)
	terrainNoise := perlin.NewPerlin(opts.Alpha, opts.Beta, opts.Octaves, rng.Int64())
	permNoise := perlin.NewPerlin(opts.Alpha, opts.Beta, opts.Octaves, rng.Int64())
	phase := rng.Float64() * 2 * math.Pi
	wavelength := float64(h) * (0.6 + 0.4*rng.Float64())

	elevation := core.NewField(w, h)
	river := core.NewField(w, h)
	water := core.NewField(w, h)
	perm := core.NewField(w, h)

	raw := elevation.Values()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			raw[y*w+x] = terrainNoise.Noise2D(float64(x)*opts.NoiseScale, float64(y)*opts.NoiseScale)
		}
	}
	normalize(elevation, opts.MinElevation, opts.MaxElevation)

	span := opts.MaxElevation - opts.MinElevation
	half := float64(opts.RiverWidth) / 2
	for y := 0; y < h; y++ {
		center := float64(w)/2 + opts.RiverMeander*math.Sin(phase+2*math.Pi*float64(y)/wavelength)
		for x := 0; x < w; x++ {
			idx := y*w + x
			dist := math.Abs(float64(x) + 0.5 - center)
			if dist <= half {
				river.Values()[idx] = 1
				water.Values()[idx] = opts.RiverDepth
				raw[idx] = opts.MinElevation
				continue
			}
			if opts.ValleyWidth > 0 {
				carve := opts.ValleyDepth * span * math.Exp(-(dist-half)/opts.ValleyWidth)
				raw[idx] = math.Max(opts.MinElevation, raw[idx]-carve)
			}
		}
	}

	pv := perm.Values()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pv[y*w+x] = permNoise.Noise2D(float64(x)*opts.PermeabilityScale, float64(y)*opts.PermeabilityScale)
		}
	}
	normalize(perm, opts.PermeabilityMin, opts.PermeabilityMax)

	return Layers{
		Elevation:    elevation,
		River:        river,
		WaterDepth:   water,
		Permeability: perm,
	}
}

// normalize rescales the field linearly onto [lo, hi].
func normalize(f *core.Field, lo, hi float64) {
	minV, maxV := f.MinMax()
	vals := f.Values()
	if maxV-minV == 0 {
		for i := range vals {
			vals[i] = lo
		}
		return
	}
	scale := (hi - lo) / (maxV - minV)
	for i, v := range vals {
		vals[i] = lo + (v-minV)*scale
	}
}
