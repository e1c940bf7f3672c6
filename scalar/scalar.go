// Package scalar defines analytic two-variable functions with their partial
// derivatives, used to build height-mapped surfaces and gradient fields.
package scalar

import "math"

// Func is a real function of two real variables.
type Func func(x, y float64) float64

// Field bundles a function with its exact partial derivatives.
// Entries are immutable once constructed.
type Field struct {
	Name  string
	Value Func
	DX    Func // ∂f/∂x
	DY    Func // ∂f/∂y
}

// Gradient returns (∂f/∂x, ∂f/∂y) at (x, y).
func (f Field) Gradient(x, y float64) (gx, gy float64) {
	return f.DX(x, y), f.DY(x, y)
}

// At returns f(x, y).
func (f Field) At(x, y float64) float64 {
	return f.Value(x, y)
}

var catalog = []Field{
	{
		Name:  "sin(x)cos(y)",
		Value: func(x, y float64) float64 { return math.Sin(x) * math.Cos(y) },
		DX:    func(x, y float64) float64 { return math.Cos(x) * math.Cos(y) },
		DY:    func(x, y float64) float64 { return -math.Sin(x) * math.Sin(y) },
	},
	{
		Name:  "x² - y²",
		Value: func(x, y float64) float64 { return x*x - y*y },
		DX:    func(x, y float64) float64 { return 2 * x },
		DY:    func(x, y float64) float64 { return -2 * y },
	},
	{
		Name:  "sin(√(x²+y²))/√(x²+y²)",
		Value: sinc,
		DX:    func(x, y float64) float64 { return sincSlope(x, y) * x },
		DY:    func(x, y float64) float64 { return sincSlope(x, y) * y },
	},
	{
		Name:  "e^(-(x²+y²))",
		Value: func(x, y float64) float64 { return math.Exp(-(x*x + y*y)) },
		DX:    func(x, y float64) float64 { return -2 * x * math.Exp(-(x*x + y*y)) },
		DY:    func(x, y float64) float64 { return -2 * y * math.Exp(-(x*x + y*y)) },
	},
	{
		Name:  "xy/4",
		Value: func(x, y float64) float64 { return x * y / 4 },
		DX:    func(x, y float64) float64 { return y / 4 },
		DY:    func(x, y float64) float64 { return x / 4 },
	},
	{
		Name:  "(cos(x)+sin(y))/2",
		Value: func(x, y float64) float64 { return (math.Cos(x) + math.Sin(y)) / 2 },
		DX:    func(x, y float64) float64 { return -math.Sin(x) / 2 },
		DY:    func(x, y float64) float64 { return math.Cos(y) / 2 },
	},
}

// sinc is sin(r)/r with the removable singularity at r = 0 filled in.
func sinc(x, y float64) float64 {
	r := math.Hypot(x, y)
	if r == 0 {
		return 1
	}
	return math.Sin(r) / r
}

// sincSlope returns (1/r)·d/dr[sin(r)/r], so that ∂f/∂x = x·sincSlope.
// The gradient is zero at the origin.
func sincSlope(x, y float64) float64 {
	r := math.Hypot(x, y)
	if r == 0 {
		return 0
	}
	return (math.Cos(r)/r - math.Sin(r)/(r*r)) / r
}

// Catalog returns the fixed list of selectable fields. Index order is stable.
func Catalog() []Field {
	out := make([]Field, len(catalog))
	copy(out, catalog)
	return out
}

// Len returns the number of catalog entries.
func Len() int {
	return len(catalog)
}

// At returns the catalog entry at index i.
func At(i int) (Field, bool) {
	if i < 0 || i >= len(catalog) {
		return Field{}, false
	}
	return catalog[i], true
}

// Lookup returns the catalog entry with the given name.
func Lookup(name string) (Field, int, bool) {
	for i, f := range catalog {
		if f.Name == name {
			return f, i, true
		}
	}
	return Field{}, -1, false
}

// Names returns the catalog entry names in index order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, f := range catalog {
		names[i] = f.Name
	}
	return names
}
