// Package mesh samples a scalar field over a regular grid into a colored
// triangle mesh and a sparse gradient arrow field.
package mesh

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/tracer/scalar"
)

// Mesh is a height-mapped surface. Vertices hold the mathematical (x, y, z=f(x,y))
// in row-major order with y varying fastest.
type Mesh struct {
	Resolution int
	Size       float64 // domain half-width
	Vertices   []r3.Vec
	Colors     []color.RGBA
	Triangles  [][3]int
}

// Index returns the flat vertex index of grid point (i, j).
func (m *Mesh) Index(i, j int) int {
	return i*(m.Resolution+1) + j
}

// HeightRange returns the minimum and maximum vertex height.
func (m *Mesh) HeightRange() (lo, hi float64) {
	if len(m.Vertices) == 0 {
		return 0, 0
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range m.Vertices {
		lo = math.Min(lo, v.Z)
		hi = math.Max(hi, v.Z)
	}
	return lo, hi
}

// GridPoint maps grid index i in [0, resolution] to its domain coordinate.
func GridPoint(i, resolution int, size float64) float64 {
	return (float64(i)/float64(resolution) - 0.5) * 2 * size
}

// Sample evaluates f on a (resolution+1)² grid spanning [-size, size]² and
// triangulates it, two triangles per cell.
func Sample(f scalar.Field, size float64, resolution int) *Mesh {
	n := resolution + 1
	m := &Mesh{
		Resolution: resolution,
		Size:       size,
		Vertices:   make([]r3.Vec, 0, n*n),
		Colors:     make([]color.RGBA, 0, n*n),
		Triangles:  make([][3]int, 0, 2*resolution*resolution),
	}

	for i := 0; i <= resolution; i++ {
		x := GridPoint(i, resolution, size)
		for j := 0; j <= resolution; j++ {
			y := GridPoint(j, resolution, size)
			z := f.Value(x, y)

			m.Vertices = append(m.Vertices, r3.Vec{X: x, Y: y, Z: z})
			m.Colors = append(m.Colors, HeightColor(z))

			if i < resolution && j < resolution {
				a := i*n + j
				b := a + n
				m.Triangles = append(m.Triangles, [3]int{a, b, a + 1}, [3]int{b, b + 1, a + 1})
			}
		}
	}
	return m
}

// Unindexed expands the triangle list into per-corner positions and colors,
// three entries per triangle. With doubleSided set every triangle is emitted
// again with reversed winding after the front faces.
func (m *Mesh) Unindexed(doubleSided bool) ([]r3.Vec, []color.RGBA) {
	n := 3 * len(m.Triangles)
	if doubleSided {
		n *= 2
	}
	pos := make([]r3.Vec, 0, n)
	cols := make([]color.RGBA, 0, n)
	emit := func(idx ...int) {
		for _, k := range idx {
			pos = append(pos, m.Vertices[k])
			cols = append(cols, m.Colors[k])
		}
	}
	for _, t := range m.Triangles {
		emit(t[0], t[1], t[2])
	}
	if doubleSided {
		for _, t := range m.Triangles {
			emit(t[0], t[2], t[1])
		}
	}
	return pos, cols
}
