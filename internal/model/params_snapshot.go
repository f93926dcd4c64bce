package model

import (
	"strconv"

	"flooding-model/internal/core"
)

func (s *Simulation) Parameters() core.ParameterSnapshot {
	cfg := s.cfg
	groups := []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				intParam("w", "Width", cfg.Engine.GridWidth),
				intParam("h", "Height", cfg.Engine.GridHeight),
				floatParam("cell_size", "Cell size (m)", cfg.Engine.CellSize),
				int64Param("seed", "Seed", cfg.Seed),
				boolParam("fill_terrain_edges", "Drain through edges", cfg.Terrain.FillTerrainEdges),
				floatParam("elevation_vertical_tilt", "Vertical tilt (%)", cfg.Terrain.ElevationVerticalTilt),
				floatParam("max_elevation", "Max elevation (m)", cfg.Terrain.MaxElevation),
			},
		},
		{
			Name: "Engine",
			Params: []core.Parameter{
				floatParam("time_step", "Time step", cfg.Engine.TimeStep),
				floatParam("flow_rate", "Flow rate", cfg.Engine.FlowRate),
				floatParam("infiltration_rate", "Infiltration rate", cfg.Engine.InfiltrationRate),
				intParam("neighborhood", "Neighbours", cfg.Engine.Neighborhood.Neighbors()),
				floatParam("stop_epsilon", "Stop epsilon", cfg.Engine.StopEpsilon),
			},
		},
		{
			Name: "Storm",
			Params: []core.Parameter{
				intParam("rain_intensity", "Rain intensity", int(s.rainIntensity)),
				floatParam("rain_duration_days", "Rain duration (days)", s.rainDurationInDays),
				floatParam("initial_water_level", "Initial water level", s.initialWaterLevel),
				floatParam(rainStrengthKeys[RainLight], "Light rain strength", cfg.RainStrength[RainLight]),
				floatParam(rainStrengthKeys[RainMedium], "Medium rain strength", cfg.RainStrength[RainMedium]),
				floatParam(rainStrengthKeys[RainHeavy], "Heavy rain strength", cfg.RainStrength[RainHeavy]),
				floatParam(rainStrengthKeys[RainExtreme], "Extreme rain strength", cfg.RainStrength[RainExtreme]),
			},
		},
		{
			Name: "Clock",
			Params: []core.Parameter{
				intParam("speed_mult", "Steps per frame", cfg.SpeedMult),
				floatParam("model_time_to_hours", "Model time to hours", cfg.ModelTimeToHours),
				floatParam("river_stage_increase_speed", "River stage increase speed", cfg.RiverStageIncreaseSpeed),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

var parameterControls = []core.ParameterControl{
	{Key: "rain_intensity", Label: "Rain intensity", Type: core.ParamTypeInt, Step: 1, Min: float64(RainLight), Max: float64(RainExtreme), HasMin: true, HasMax: true},
	{Key: "rain_duration_days", Label: "Rain duration (days)", Type: core.ParamTypeFloat, Step: 1, Min: minRainDurationInDays, Max: maxRainDurationInDays, HasMin: true, HasMax: true},
	{Key: "initial_water_level", Label: "Initial water level", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
	{Key: "speed_mult", Label: "Steps per frame", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 100, HasMin: true, HasMax: true},
	{Key: "river_stage_increase_speed", Label: "River stage increase speed", Type: core.ParamTypeFloat, Step: 0.1, Min: 0, HasMin: true},
}

// ParameterControls lists the inputs that may change while running.
func (s *Simulation) ParameterControls() []core.ParameterControl {
	out := make([]core.ParameterControl, len(parameterControls))
	copy(out, parameterControls)
	return out
}

func controlFor(key string) (core.ParameterControl, bool) {
	for _, c := range parameterControls {
		if c.Key == key {
			return c, true
		}
	}
	return core.ParameterControl{}, false
}

// SetFloatParameter updates a floating point input. Values are clamped to the
// control bounds.
func (s *Simulation) SetFloatParameter(key string, value float64) bool {
	ctrl, ok := controlFor(key)
	if !ok || ctrl.Type != core.ParamTypeFloat {
		return false
	}
	value = ctrl.Clamp(value)
	switch key {
	case "rain_duration_days":
		s.SetRainDurationInDays(value)
	case "initial_water_level":
		s.SetInitialWaterLevel(value)
	case "river_stage_increase_speed":
		s.cfg.RiverStageIncreaseSpeed = value
	default:
		return false
	}
	return true
}

// SetIntParameter updates an integer input. Values are clamped to the control
// bounds.
func (s *Simulation) SetIntParameter(key string, value int) bool {
	ctrl, ok := controlFor(key)
	if !ok || ctrl.Type != core.ParamTypeInt {
		return false
	}
	value = int(ctrl.Clamp(float64(value)))
	switch key {
	case "rain_intensity":
		s.SetRainIntensity(RainIntensity(value))
	case "speed_mult":
		s.cfg.SpeedMult = value
	default:
		return false
	}
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}
