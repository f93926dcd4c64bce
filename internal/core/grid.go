package core

// Field stores a 2D layer of float64 values in row-major order.
type Field struct {
	W, H int
	data []float64
}

// NewField allocates a zeroed field with the given dimensions.
func NewField(w, h int) *Field {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Field{W: w, H: h, data: make([]float64, w*h)}
}

// FieldFrom wraps an existing row-major slice. It returns nil when the slice
// length does not match the dimensions.
func FieldFrom(w, h int, values []float64) *Field {
	if w <= 0 || h <= 0 || len(values) != w*h {
		return nil
	}
	return &Field{W: w, H: h, data: values}
}

// Values exposes the backing slice so callers can read/write values directly.
func (f *Field) Values() []float64 { return f.data }

// Size reports the field dimensions.
func (f *Field) Size() Size { return Size{W: f.W, H: f.H} }

// Index returns the linear slice index for coordinates (x, y).
func (f *Field) Index(x, y int) int { return y*f.W + x }

// InBounds reports whether (x, y) lies inside the field.
func (f *Field) InBounds(x, y int) bool {
	return x >= 0 && x < f.W && y >= 0 && y < f.H
}

// At returns the value at (x, y), or 0 outside the field.
func (f *Field) At(x, y int) float64 {
	if !f.InBounds(x, y) {
		return 0
	}
	return f.data[f.Index(x, y)]
}

// Set stores v at (x, y). Out of range coordinates are ignored.
func (f *Field) Set(x, y int, v float64) {
	if !f.InBounds(x, y) {
		return
	}
	f.data[f.Index(x, y)] = v
}

// Fill sets every value of the field to v.
func (f *Field) Fill(v float64) {
	for i := range f.data {
		f.data[i] = v
	}
}

// MinMax returns the smallest and largest values stored in the field.
func (f *Field) MinMax() (float64, float64) {
	if len(f.data) == 0 {
		return 0, 0
	}
	lo, hi := f.data[0], f.data[0]
	for _, v := range f.data[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
