package app

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"log"
	"strings"
	"testing"
)

func smallRunConfig() *Config {
	cfg := NewConfig()
	cfg.Overrides = Overrides{
		"w":          "24",
		"h":          "16",
		"cell_size":  "50",
		"speed_mult": "10",
	}
	cfg.Report = 0
	return cfg
}

func TestOverridesSet(t *testing.T) {
	o := Overrides{}
	if err := o.Set("flow_rate=2.5"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := o.Set(" w = 40 "); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if o["flow_rate"] != "2.5" || o["w"] != "40" {
		t.Fatalf("unexpected overrides %v", o)
	}
	if got := o.String(); got != "flow_rate=2.5,w=40" {
		t.Fatalf("String() = %q", got)
	}
	for _, bad := range []string{"flow_rate", "=3", ""} {
		if err := o.Set(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestBindParsesFlags(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("flood", flag.ContinueOnError)
	cfg.Bind(fs)
	args := []string{"-preset", "river_city", "-seed", "7", "-rain", "heavy", "-rain-days", "3", "-set", "flow_rate=2", "-set", "h=50"}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Preset != "river_city" || cfg.Seed != 7 || cfg.Intensity != "heavy" || cfg.Duration != 3 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Overrides["flow_rate"] != "2" || cfg.Overrides["h"] != "50" {
		t.Fatalf("unexpected overrides %v", cfg.Overrides)
	}
}

func TestSetupRejectsUnknownInputs(t *testing.T) {
	cfg := smallRunConfig()
	cfg.Preset = "atlantis"
	if _, err := Setup(cfg, nil); err == nil {
		t.Fatalf("expected error for unknown preset")
	}
	cfg = smallRunConfig()
	cfg.Intensity = "drizzle"
	if _, err := Setup(cfg, nil); err == nil {
		t.Fatalf("expected error for unknown intensity")
	}
}

func TestSetupAppliesSeedAndStorm(t *testing.T) {
	cfg := smallRunConfig()
	cfg.Seed = 99
	cfg.Intensity = "extreme"
	cfg.Duration = 9
	sim, err := Setup(cfg, nil)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if sim.Config().Seed != 99 {
		t.Fatalf("seed %d, want 99", sim.Config().Seed)
	}
	if got := sim.RainIntensity().String(); got != "extreme" {
		t.Fatalf("intensity %q, want extreme", got)
	}
	if sim.RainDurationInDays() != 4 {
		t.Fatalf("duration %v, want clamped to 4", sim.RainDurationInDays())
	}
	if _, ok := cfg.Overrides["seed"]; ok {
		t.Fatalf("Setup must not mutate the caller's overrides")
	}
}

func TestRunStopsAtFrameLimit(t *testing.T) {
	cfg := smallRunConfig()
	cfg.Frames = 5
	sim, err := Setup(cfg, nil)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	sum, err := New(sim, cfg, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Frames != 5 {
		t.Fatalf("frames %d, want 5", sum.Frames)
	}
	if sum.Settled {
		t.Fatalf("run should not settle during the storm")
	}
}

func TestRunSettlesAfterStorm(t *testing.T) {
	cfg := smallRunConfig()
	cfg.Frames = 100000
	cfg.Intensity = "light"
	cfg.Duration = 1
	cfg.Report = 50
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)
	sim, err := Setup(cfg, logger)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	sum, err := New(sim, cfg, logger).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !sum.Settled {
		t.Fatalf("expected the run to settle within %d frames, ran %d", cfg.Frames, sum.Frames)
	}
	if sum.Hours < 72 {
		t.Fatalf("settled at %dh, before the cloudy days passed", sum.Hours)
	}
	if sum.FloodedCells > sum.PeakFlooded {
		t.Fatalf("final flooded %d exceeds peak %d", sum.FloodedCells, sum.PeakFlooded)
	}
	if !strings.Contains(buf.String(), "weather=") {
		t.Fatalf("expected status lines, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "settled") {
		t.Fatalf("expected settle log, got %q", buf.String())
	}
}

func TestRunHonoursCancellation(t *testing.T) {
	cfg := smallRunConfig()
	sim, err := Setup(cfg, nil)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sum, err := New(sim, cfg, nil).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if sum.Frames != 0 {
		t.Fatalf("frames %d, want 0", sum.Frames)
	}
}
