package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/tracer/scalar"
)

// Arrow geometry, in surface units.
const (
	ArrowLength     = 0.3
	ArrowHeadLength = 0.1
	ArrowHeadWidth  = 0.08

	// MinGradient is the magnitude below which a gradient counts as zero.
	MinGradient = 0.01
)

// Arrow is a gradient marker in the surface's Y-up world space:
// Origin is (x, f(x,y), y) and Dir is the unit planar gradient (gx, 0, gy).
type Arrow struct {
	Origin     r3.Vec
	Dir        r3.Vec
	Length     float64
	HeadLength float64
	HeadWidth  float64
	Magnitude  float64 // |∇f| before normalization
}

// Tip returns the end point of the arrow shaft.
func (a Arrow) Tip() r3.Vec {
	return r3.Add(a.Origin, r3.Scale(a.Length, a.Dir))
}

// GradientStride returns the grid step between arrows for a resolution.
func GradientStride(resolution int) int {
	s := resolution / 8
	if s < 1 {
		return 1
	}
	return s
}

// Gradients samples ∇f every GradientStride grid points along each axis and
// returns one arrow per sample whose gradient is not numerically zero.
func Gradients(f scalar.Field, size float64, resolution int) []Arrow {
	step := GradientStride(resolution)
	var arrows []Arrow

	for i := 0; i <= resolution; i += step {
		x := GridPoint(i, resolution, size)
		for j := 0; j <= resolution; j += step {
			y := GridPoint(j, resolution, size)
			if a, ok := ArrowAt(f, x, y); ok {
				arrows = append(arrows, a)
			}
		}
	}
	return arrows
}

// ArrowAt builds the gradient arrow at (x, y). It reports false when the
// gradient magnitude is below MinGradient.
func ArrowAt(f scalar.Field, x, y float64) (Arrow, bool) {
	gx, gy := f.Gradient(x, y)
	mag := math.Hypot(gx, gy)
	if mag < MinGradient {
		return Arrow{}, false
	}
	return Arrow{
		Origin:     r3.Vec{X: x, Y: f.Value(x, y), Z: y},
		Dir:        r3.Unit(r3.Vec{X: gx, Y: 0, Z: gy}),
		Length:     ArrowLength,
		HeadLength: ArrowHeadLength,
		HeadWidth:  ArrowHeadWidth,
		Magnitude:  mag,
	}, true
}
