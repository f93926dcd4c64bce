package core

import (
	"testing"
	"time"
)

func TestFixedStepPacesTicks(t *testing.T) {
	now := time.Unix(0, 0)
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return now }

	if !fs.ShouldStep() {
		t.Fatal("first call should step immediately")
	}
	if fs.ShouldStep() {
		t.Fatal("no time elapsed, should not step")
	}
	now = now.Add(50 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatal("half a tick elapsed, should not step")
	}
	now = now.Add(60 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("a full tick elapsed, should step")
	}
}

func TestFixedStepDropsBacklog(t *testing.T) {
	now := time.Unix(0, 0)
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return now }
	fs.ShouldStep()

	now = now.Add(time.Second)
	steps := 0
	for fs.ShouldStep() {
		steps++
	}
	if steps != 2 {
		t.Fatalf("stalled driver caught up %d ticks, want 2", steps)
	}
}

func TestFixedStepUnpaced(t *testing.T) {
	fs := NewFixedStep(0)
	if fs.Interval() != 0 {
		t.Fatalf("interval %v, want 0", fs.Interval())
	}
	for i := 0; i < 3; i++ {
		if !fs.ShouldStep() {
			t.Fatal("unpaced stepper should always step")
		}
	}
}

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(5)
	b := NewRNG(5)
	for i := 0; i < 10; i++ {
		if a.Float64() != b.Float64() || a.IntN(100) != b.IntN(100) {
			t.Fatal("same seed produced different sequences")
		}
	}
	if NewRNG(1).IntN(0) != 0 {
		t.Fatal("IntN(0) should return 0")
	}
}

func TestParameterControlClamp(t *testing.T) {
	c := ParameterControl{Min: 1, Max: 4, HasMin: true, HasMax: true}
	if c.Clamp(0) != 1 || c.Clamp(9) != 4 || c.Clamp(2) != 2 {
		t.Fatal("clamp outside bounds")
	}
	open := ParameterControl{}
	if open.Clamp(-100) != -100 {
		t.Fatal("unbounded control should not clamp")
	}
	snap := ParameterSnapshot{Groups: []ParameterGroup{{Params: []Parameter{{Key: "a", Value: "1"}}}}}
	if p, ok := snap.Lookup("a"); !ok || p.Value != "1" {
		t.Fatalf("Lookup = %+v, %v", p, ok)
	}
	if _, ok := snap.Lookup("b"); ok {
		t.Fatal("Lookup found a missing key")
	}
}
