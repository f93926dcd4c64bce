package app

import (
	"context"
	"fmt"
	"log"

	"flooding-model/internal/core"
	"flooding-model/internal/flood"
	"flooding-model/internal/model"
)

// Summary reports how a run ended.
type Summary struct {
	Frames       int
	Hours        int
	Settled      bool
	RiverStage   float64
	StoredWater  float64
	PeakFlooded  int
	FloodedCells int
	Budget       flood.Budget
}

// Runner drives a Simulation headlessly, optionally paced in real time.
type Runner struct {
	sim     *model.Simulation
	stepper *core.FixedStep
	logger  *log.Logger

	maxFrames int
	report    int
}

// New constructs a Runner for the provided simulation.
func New(sim *model.Simulation, cfg *Config, logger *log.Logger) *Runner {
	return &Runner{
		sim:       sim,
		stepper:   core.NewFixedStep(cfg.TPS),
		logger:    logger,
		maxFrames: cfg.Frames,
		report:    cfg.Report,
	}
}

// Setup builds the simulation selected by cfg from the registry and applies
// the storm inputs.
func Setup(cfg *Config, logger *log.Logger) (*model.Simulation, error) {
	factory, ok := core.Sims()[cfg.Preset]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q (available: %v)", cfg.Preset, model.PresetNames())
	}
	overrides := map[string]string(cfg.Overrides)
	if cfg.Seed != 0 {
		overrides = copyOverrides(cfg.Overrides)
		overrides["seed"] = fmt.Sprint(cfg.Seed)
	}
	built, err := factory(overrides)
	if err != nil {
		return nil, err
	}
	sim, ok := built.(*model.Simulation)
	if !ok {
		return nil, fmt.Errorf("preset %q did not build a flood simulation", cfg.Preset)
	}
	intensity, ok := model.ParseRainIntensity(cfg.Intensity)
	if !ok {
		return nil, fmt.Errorf("unknown rain intensity %q", cfg.Intensity)
	}
	sim.SetRainIntensity(intensity)
	sim.SetRainDurationInDays(cfg.Duration)
	sim.SetLogger(logger)
	return sim, nil
}

func copyOverrides(o Overrides) map[string]string {
	out := make(map[string]string, len(o)+1)
	for k, v := range o {
		out[k] = v
	}
	return out
}

// Run advances the simulation until it settles, the frame limit is reached
// or ctx is cancelled.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	r.sim.Start()
	var sum Summary
	for sum.Frames < r.maxFrames {
		if err := ctx.Err(); err != nil {
			r.fill(&sum)
			return sum, err
		}
		if !r.stepper.ShouldStep() {
			r.stepper.Wait()
		}
		running := r.sim.Tick()
		sum.Frames++

		flooded := floodedCells(r.sim.Cells())
		if flooded > sum.PeakFlooded {
			sum.PeakFlooded = flooded
		}
		if r.report > 0 && sum.Frames%r.report == 0 {
			r.logf("t=%4dh weather=%-12s stage=%.2f flooded=%d water=%.2f",
				r.sim.TimeInHours(), r.sim.Weather(), r.sim.RiverStage(), flooded, r.sim.Engine().TotalWater())
		}
		if !running {
			sum.Settled = true
			break
		}
	}
	r.fill(&sum)
	return sum, nil
}

func (r *Runner) fill(sum *Summary) {
	sum.Hours = r.sim.TimeInHours()
	sum.RiverStage = r.sim.RiverStage()
	sum.StoredWater = r.sim.Engine().TotalWater()
	sum.FloodedCells = floodedCells(r.sim.Cells())
	sum.Budget = r.sim.Engine().Budget()
}

func (r *Runner) logf(format string, args ...any) {
	if r.logger == nil {
		return
	}
	r.logger.Printf(format, args...)
}

func floodedCells(cells []flood.Cell) int {
	n := 0
	for _, c := range cells {
		if !c.IsRiver && c.WaterDepth > model.FloodDepth {
			n++
		}
	}
	return n
}
