package model

import (
	"fmt"
	"log"
	"math"

	"flooding-model/internal/core"
	"flooding-model/internal/flood"
	"flooding-model/internal/terrain"
)

const (
	minRainDurationInDays = 1
	maxRainDurationInDays = 4
)

// Simulation owns the cell grid and drives a flood.Engine through time. It
// derives the weather from the clock, holds the river back until its stage
// reaches flood level, and stops itself once the engine settles.
//
// Between calls the cell slice is safe to read; StateVersion changes whenever
// water state may have changed.
type Simulation struct {
	cfg    Config
	cells  []flood.Cell
	engine *flood.Engine
	logger *log.Logger

	time    float64
	steps   int
	started bool
	running bool

	rainIntensity      RainIntensity
	rainDurationInDays float64
	initialWaterLevel  float64
	riverStage         float64

	stateVersion         uint64
	baseElevationVersion uint64
	flooding             bool
}

// New builds a simulation and populates its grid.
func New(cfg Config) (*Simulation, error) {
	s := &Simulation{}
	s.ResetInputs()
	if err := s.Load(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// SetLogger enables lifecycle logging. A nil logger silences it.
func (s *Simulation) SetLogger(l *log.Logger) { s.logger = l }

func (s *Simulation) logf(format string, args ...any) {
	if s.logger == nil {
		return
	}
	s.logger.Printf(format, args...)
}

// Load replaces the configuration, repopulates the grid and restarts.
func (s *Simulation) Load(cfg Config) error {
	if err := cfg.Engine.Validate(); err != nil {
		return err
	}
	if cfg.SpeedMult <= 0 {
		cfg.SpeedMult = 1
	}
	layers := cfg.Layers
	if layers == nil {
		generated := terrain.Generate(cfg.generatorOptions(), cfg.Seed)
		layers = &generated
	}
	cells, err := terrain.Populate(cfg.Engine.GridWidth, cfg.Engine.GridHeight, *layers, cfg.Terrain)
	if err != nil {
		return fmt.Errorf("model: populate %q: %w", cfg.Name, err)
	}
	s.cfg = cfg
	s.cells = cells
	s.baseElevationVersion++
	return s.Restart()
}

// Restart rewinds the clock and water state without reloading terrain.
func (s *Simulation) Restart() error {
	s.running = false
	s.started = false
	s.flooding = false
	flood.ResetAll(s.cells)
	s.time = 0
	s.steps = 0
	s.riverStage = s.initialWaterLevel
	engine, err := flood.NewEngine(s.cells, s.cfg.Engine)
	if err != nil {
		return err
	}
	s.engine = engine
	s.stateVersion++
	return nil
}

// Reload restores default inputs and restarts.
func (s *Simulation) Reload() error {
	s.ResetInputs()
	return s.Restart()
}

// ResetInputs restores the default storm settings.
func (s *Simulation) ResetInputs() {
	s.rainIntensity = RainMedium
	s.rainDurationInDays = 2
	s.initialWaterLevel = 0.5
	s.riverStage = s.initialWaterLevel
}

// Name returns the simulation identifier.
func (s *Simulation) Name() string { return "flood:" + s.cfg.Name }

// Size reports the grid dimensions.
func (s *Simulation) Size() core.Size {
	return core.Size{W: s.cfg.Engine.GridWidth, H: s.cfg.Engine.GridHeight}
}

// Reset restarts the run. A non-zero seed different from the current one
// regenerates synthetic terrain first.
func (s *Simulation) Reset(seed int64) {
	if seed != 0 && seed != s.cfg.Seed && s.cfg.Layers == nil {
		cfg := s.cfg
		cfg.Seed = seed
		if err := s.Load(cfg); err != nil {
			s.logf("reset with seed %d failed: %v", seed, err)
		}
		return
	}
	if err := s.Restart(); err != nil {
		s.logf("restart failed: %v", err)
	}
}

// Ready reports whether the grid has been populated.
func (s *Simulation) Ready() bool { return s.engine != nil }

// Start marks the simulation as running.
func (s *Simulation) Start() {
	if !s.Ready() {
		return
	}
	if !s.started {
		s.started = true
		s.logf("%s: started (%s rain for %.0f days)", s.Name(), s.rainIntensity, s.rainDurationInDays)
	}
	s.running = true
}

// Stop pauses the simulation.
func (s *Simulation) Stop() { s.running = false }

// Tick advances one frame if the simulation is running and reports whether
// it is still running afterwards.
func (s *Simulation) Tick() bool {
	if !s.running {
		return false
	}
	s.Step()
	return s.running
}

// Step advances one frame of SpeedMult engine steps regardless of the
// running state.
func (s *Simulation) Step() {
	if s.engine == nil {
		return
	}
	dt := s.cfg.Engine.TimeStep
	for i := 0; i < s.cfg.SpeedMult; i++ {
		s.steps++
		s.time = float64(s.steps) * dt
		inc := s.CurrentRiverWaterIncrement()
		if s.riverStage < 1 {
			// No flooding until the river stage reaches its banks.
			s.riverStage += inc * s.cfg.RiverStageIncreaseSpeed
			s.engine.SetRiverWaterIncrement(0)
		} else {
			if !s.flooding {
				s.flooding = true
				s.logf("%s: river reached flood stage at %dh", s.Name(), s.TimeInHours())
			}
			s.engine.SetRiverWaterIncrement(inc)
		}
		// The engine runs even without inflow so the stage-rising phase
		// advances at the same pace as the flood itself.
		s.engine.Update(dt)
	}
	if s.running && s.engine.SimulationDidStop() && s.CurrentRiverWaterIncrement() == 0 {
		s.running = false
		s.logf("%s: settled after %dh", s.Name(), s.TimeInHours())
	}
	s.stateVersion++
}

// Config returns the active configuration.
func (s *Simulation) Config() Config { return s.cfg }

// Cells exposes the grid. It must only be read between frames.
func (s *Simulation) Cells() []flood.Cell { return s.cells }

// Engine exposes the active engine.
func (s *Simulation) Engine() *flood.Engine { return s.engine }

// CellAt returns the cell under a point given in metres, or nil outside the
// model.
func (s *Simulation) CellAt(xInM, yInM float64) *flood.Cell {
	gx := int(math.Floor(xInM / s.cfg.Engine.CellSize))
	gy := int(math.Floor(yInM / s.cfg.Engine.CellSize))
	w, h := s.cfg.Engine.GridWidth, s.cfg.Engine.GridHeight
	if gx < 0 || gx >= w || gy < 0 || gy >= h {
		return nil
	}
	return &s.cells[gy*w+gx]
}

// Time returns the elapsed model time.
func (s *Simulation) Time() float64 { return s.time }

// TimeInHours returns the elapsed whole hours.
func (s *Simulation) TimeInHours() int {
	return int(math.Floor(s.time * s.cfg.ModelTimeToHours))
}

// TimeInDays returns the elapsed time in days at hour resolution.
func (s *Simulation) TimeInDays() float64 {
	return float64(s.TimeInHours()) / 24
}

// Weather returns the current sky condition.
func (s *Simulation) Weather() Weather {
	return weatherAt(s.TimeInDays(), s.rainIntensity, s.rainDurationInDays)
}

// CurrentRiverWaterIncrement returns the inflow implied by the weather.
func (s *Simulation) CurrentRiverWaterIncrement() float64 {
	return rainStrength(s.Weather(), s.cfg.RainStrength)
}

// RiverStage returns the river level relative to its banks; flooding starts
// at 1.
func (s *Simulation) RiverStage() float64 { return s.riverStage }

// RainIntensity returns the configured storm intensity.
func (s *Simulation) RainIntensity() RainIntensity { return s.rainIntensity }

// RainDurationInDays returns the configured storm length.
func (s *Simulation) RainDurationInDays() float64 { return s.rainDurationInDays }

// InitialWaterLevel returns the river stage a restart begins from.
func (s *Simulation) InitialWaterLevel() float64 { return s.initialWaterLevel }

// SetRainIntensity selects the storm intensity.
func (s *Simulation) SetRainIntensity(v RainIntensity) {
	if v < RainLight {
		v = RainLight
	}
	if v > RainExtreme {
		v = RainExtreme
	}
	s.rainIntensity = v
}

// SetRainDurationInDays sets the storm length, clamped to the supported range.
func (s *Simulation) SetRainDurationInDays(v float64) {
	s.rainDurationInDays = math.Max(minRainDurationInDays, math.Min(maxRainDurationInDays, v))
}

// SetInitialWaterLevel sets the starting river stage and applies it now.
func (s *Simulation) SetInitialWaterLevel(v float64) {
	s.initialWaterLevel = v
	s.riverStage = v
}

// Running reports whether Tick advances the simulation.
func (s *Simulation) Running() bool { return s.running }

// Started reports whether Start has been called since the last restart.
func (s *Simulation) Started() bool { return s.started }

// StateVersion increases whenever water state may have changed.
func (s *Simulation) StateVersion() uint64 { return s.stateVersion }

// BaseElevationVersion increases whenever the terrain is repopulated.
func (s *Simulation) BaseElevationVersion() uint64 { return s.baseElevationVersion }
