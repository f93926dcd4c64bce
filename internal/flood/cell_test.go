package flood

import "testing"

func TestCellResetRestoresInitialDepth(t *testing.T) {
	c := NewCell(CellOptions{X: 2, Y: 3, BaseElevation: 4, WaterDepth: 0.75, Permeability: 0.2})
	c.WaterDepth = 3
	c.Flux = 1.5

	c.Reset()
	if c.WaterDepth != 0.75 {
		t.Fatalf("depth after reset = %v, want 0.75", c.WaterDepth)
	}
	if c.Flux != 0 {
		t.Fatalf("flux after reset = %v, want 0", c.Flux)
	}
	c.Reset()
	if c.WaterDepth != 0.75 {
		t.Fatalf("second reset changed depth to %v", c.WaterDepth)
	}
	if c.X != 2 || c.Y != 3 || c.BaseElevation != 4 || c.Permeability != 0.2 {
		t.Fatalf("reset touched static fields: %+v", c)
	}
}

func TestCellTotalElevationTracksDepth(t *testing.T) {
	c := NewCell(CellOptions{BaseElevation: 10, WaterDepth: 1})
	if got := c.TotalElevation(); got != 11 {
		t.Fatalf("total elevation = %v, want 11", got)
	}
	c.WaterDepth = 2.5
	if got := c.TotalElevation(); got != 12.5 {
		t.Fatalf("total elevation = %v, want 12.5", got)
	}
}

func TestRiverCellsAreImpermeable(t *testing.T) {
	c := NewCell(CellOptions{IsRiver: true, Permeability: 0.8})
	if c.Permeability != 0 {
		t.Fatalf("river permeability = %v, want 0", c.Permeability)
	}
}

func TestNegativeInitialDepthClamped(t *testing.T) {
	c := NewCell(CellOptions{WaterDepth: -1})
	if c.WaterDepth != 0 || c.InitialWaterDepth() != 0 {
		t.Fatalf("negative depth not clamped: depth=%v initial=%v", c.WaterDepth, c.InitialWaterDepth())
	}
}

func TestResetAllOnlyTouchesWater(t *testing.T) {
	cells := []Cell{
		NewCell(CellOptions{X: 0, IsEdge: true, WaterDepth: 0.1}),
		NewCell(CellOptions{X: 1, IsRiver: true, BaseElevation: 3}),
	}
	cells[0].WaterDepth = 5
	cells[1].WaterDepth = 6
	cells[1].Flux = 2

	ResetAll(cells)

	if cells[0].WaterDepth != 0.1 || cells[1].WaterDepth != 0 || cells[1].Flux != 0 {
		t.Fatalf("unexpected state after ResetAll: %+v", cells)
	}
	if !cells[0].IsEdge || !cells[1].IsRiver || cells[1].BaseElevation != 3 {
		t.Fatalf("ResetAll modified static fields: %+v", cells)
	}
}
