package core

import "testing"

func TestFieldIndexingAndBounds(t *testing.T) {
	f := NewField(4, 3)
	f.Set(3, 2, 7)
	if got := f.Values()[f.Index(3, 2)]; got != 7 {
		t.Fatalf("value at (3,2) = %v, want 7", got)
	}
	if got := f.At(3, 2); got != 7 {
		t.Fatalf("At(3,2) = %v, want 7", got)
	}
	f.Set(4, 0, 9)
	f.Set(-1, 0, 9)
	for i, v := range f.Values() {
		if v == 9 {
			t.Fatalf("out of range Set wrote index %d", i)
		}
	}
	if f.At(0, 3) != 0 {
		t.Fatal("out of range At should read 0")
	}
}

func TestFieldFromRejectsWrongLength(t *testing.T) {
	if FieldFrom(2, 2, make([]float64, 3)) != nil {
		t.Fatal("expected nil for mismatched slice")
	}
	vals := []float64{1, 2, 3, 4, 5, 6}
	f := FieldFrom(3, 2, vals)
	if f == nil {
		t.Fatal("expected field for matching slice")
	}
	vals[4] = 10
	if f.At(1, 1) != 10 {
		t.Fatal("FieldFrom should share the slice")
	}
}

func TestFieldMinMaxAndFill(t *testing.T) {
	f := FieldFrom(3, 1, []float64{2, -1, 5})
	lo, hi := f.MinMax()
	if lo != -1 || hi != 5 {
		t.Fatalf("MinMax = %v,%v, want -1,5", lo, hi)
	}
	f.Fill(3)
	lo, hi = f.MinMax()
	if lo != 3 || hi != 3 {
		t.Fatalf("after Fill MinMax = %v,%v", lo, hi)
	}
}

func TestNewFieldClampsDimensions(t *testing.T) {
	f := NewField(0, -2)
	if f.W != 1 || f.H != 1 || len(f.Values()) != 1 {
		t.Fatalf("unexpected field %dx%d len %d", f.W, f.H, len(f.Values()))
	}
	if (Size{W: 0, H: 5}).Cells() != 0 || (Size{W: 3, H: 5}).Cells() != 15 {
		t.Fatal("Size.Cells miscounted")
	}
}
