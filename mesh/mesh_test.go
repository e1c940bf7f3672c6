package mesh

import (
	"math"
	"testing"

	"github.com/pthm-cable/tracer/scalar"
)

func mustField(t *testing.T, name string) scalar.Field {
	t.Helper()
	f, _, ok := scalar.Lookup(name)
	if !ok {
		t.Fatalf("catalog entry %q missing", name)
	}
	return f
}

func TestSampleCounts(t *testing.T) {
	f := mustField(t, "sin(x)cos(y)")
	tests := []struct {
		resolution int
		vertices   int
		triangles  int
	}{
		{1, 4, 2},
		{4, 25, 32},
		{20, 441, 800},
		{50, 2601, 5000},
	}
	for _, tt := range tests {
		m := Sample(f, 6, tt.resolution)
		if len(m.Vertices) != tt.vertices || len(m.Colors) != tt.vertices {
			t.Errorf("R=%d: %d vertices / %d colors, want %d", tt.resolution, len(m.Vertices), len(m.Colors), tt.vertices)
		}
		if len(m.Triangles) != tt.triangles {
			t.Errorf("R=%d: %d triangles, want %d", tt.resolution, len(m.Triangles), tt.triangles)
		}
	}
}

func TestSampleLayout(t *testing.T) {
	f := mustField(t, "x² - y²")
	const R = 4
	m := Sample(f, 6, R)

	// Corners
	first := m.Vertices[0]
	if first.X != -6 || first.Y != -6 || first.Z != 0 {
		t.Errorf("vertex 0 = %+v, want (-6, -6, 0)", first)
	}
	last := m.Vertices[len(m.Vertices)-1]
	if last.X != 6 || last.Y != 6 {
		t.Errorf("last vertex = %+v, want (6, 6, _)", last)
	}

	// y is the fast axis
	v := m.Vertices[m.Index(1, 2)]
	if v.X != -3 || v.Y != 0 || v.Z != 9 {
		t.Errorf("vertex (1,2) = %+v, want (-3, 0, 9)", v)
	}

	// First cell winding
	if m.Triangles[0] != [3]int{0, 5, 1} || m.Triangles[1] != [3]int{5, 6, 1} {
		t.Errorf("first cell triangles = %v %v, want [0 5 1] [5 6 1]", m.Triangles[0], m.Triangles[1])
	}

	for k, tri := range m.Triangles {
		for _, idx := range tri {
			if idx < 0 || idx >= len(m.Vertices) {
				t.Fatalf("triangle %d references vertex %d out of range", k, idx)
			}
		}
	}
}

func TestHeightRange(t *testing.T) {
	m := Sample(mustField(t, "e^(-(x²+y²))"), 6, 4)
	lo, hi := m.HeightRange()
	if hi != 1 {
		t.Errorf("max height = %v, want 1 at the center vertex", hi)
	}
	if lo <= 0 || lo > 1e-10 {
		t.Errorf("min height = %v, want tiny positive value at the corners", lo)
	}
}

func TestHeightColorRamp(t *testing.T) {
	low := HeightColor(-1)
	high := HeightColor(1)
	if low.B <= low.R {
		t.Errorf("low color %+v should be blue", low)
	}
	if high.R <= high.B {
		t.Errorf("high color %+v should be warm", high)
	}
	if HeightColor(-5) != low || HeightColor(5) != high {
		t.Error("heights outside [-1, 1] should saturate")
	}
	if low.A != 255 {
		t.Errorf("alpha = %d, want opaque", low.A)
	}
}

func TestArrowAtSaddle(t *testing.T) {
	a, ok := ArrowAt(mustField(t, "x² - y²"), 1, 1)
	if !ok {
		t.Fatal("expected an arrow at (1,1)")
	}
	if math.Abs(a.Magnitude-2*math.Sqrt2) > 1e-12 {
		t.Errorf("magnitude = %v, want 2√2", a.Magnitude)
	}
	// Anchored at (x, z, y)
	if a.Origin.X != 1 || a.Origin.Y != 0 || a.Origin.Z != 1 {
		t.Errorf("origin = %+v, want (1, 0, 1)", a.Origin)
	}
	want := 1 / math.Sqrt2
	if math.Abs(a.Dir.X-want) > 1e-12 || a.Dir.Y != 0 || math.Abs(a.Dir.Z+want) > 1e-12 {
		t.Errorf("dir = %+v, want (%v, 0, %v)", a.Dir, want, -want)
	}
	if a.Length != ArrowLength {
		t.Errorf("length = %v, want %v", a.Length, ArrowLength)
	}
	tip := a.Tip()
	if math.Abs(tip.X-(1+0.3*want)) > 1e-12 {
		t.Errorf("tip = %+v", tip)
	}
}

func TestArrowAtFlatPoint(t *testing.T) {
	if _, ok := ArrowAt(mustField(t, "e^(-(x²+y²))"), 0, 0); ok {
		t.Error("no arrow expected at the gaussian peak")
	}
}

func TestGradientsSkipFlatSamples(t *testing.T) {
	f := mustField(t, "e^(-(x²+y²))")
	const R = 16
	arrows := Gradients(f, 6, R)

	// Stride 2 → 9x9 samples; the center is flat and far samples are below threshold.
	if len(arrows) == 0 || len(arrows) >= 81 {
		t.Fatalf("got %d arrows, want some but fewer than 81", len(arrows))
	}
	for _, a := range arrows {
		if a.Origin.X == 0 && a.Origin.Z == 0 {
			t.Error("arrow emitted at the flat center")
		}
		if a.Magnitude < MinGradient {
			t.Errorf("arrow with magnitude %v below threshold", a.Magnitude)
		}
		if math.Abs(math.Hypot(a.Dir.X, a.Dir.Z)-1) > 1e-12 {
			t.Errorf("direction %+v not unit length", a.Dir)
		}
	}
}

func TestGradientsSaddleFullGrid(t *testing.T) {
	// Every sample of x²-y² off the origin has |∇f| ≥ 2·(grid spacing) ≫ 0.01.
	arrows := Gradients(mustField(t, "x² - y²"), 6, 8)
	if len(arrows) != 80 {
		t.Errorf("got %d arrows, want 80 (81 samples minus the origin)", len(arrows))
	}
}

func TestGradientStride(t *testing.T) {
	tests := []struct{ resolution, want int }{
		{4, 1}, {8, 1}, {20, 2}, {50, 6}, {100, 12},
	}
	for _, tt := range tests {
		if got := GradientStride(tt.resolution); got != tt.want {
			t.Errorf("GradientStride(%d) = %d, want %d", tt.resolution, got, tt.want)
		}
	}
}

func TestUnindexedKeepsVertexColors(t *testing.T) {
	m := Sample(mustField(t, "sin(x)cos(y)"), 6, 3)
	tris := len(m.Triangles)

	tests := []struct {
		name        string
		doubleSided bool
		want        int
	}{
		{"front only", false, 3 * tris},
		{"double sided", true, 6 * tris},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, cols := m.Unindexed(tt.doubleSided)
			if len(pos) != tt.want || len(cols) != tt.want {
				t.Fatalf("got %d positions and %d colors, want %d", len(pos), len(cols), tt.want)
			}
			for i, tri := range m.Triangles {
				for c, k := range tri {
					if pos[3*i+c] != m.Vertices[k] || cols[3*i+c] != m.Colors[k] {
						t.Fatalf("triangle %d corner %d does not match vertex %d", i, c, k)
					}
				}
			}
			if !tt.doubleSided {
				return
			}
			back := 3 * tris
			for i, tri := range m.Triangles {
				order := [3]int{tri[0], tri[2], tri[1]}
				for c, k := range order {
					if pos[back+3*i+c] != m.Vertices[k] || cols[back+3*i+c] != m.Colors[k] {
						t.Fatalf("back face %d corner %d does not match vertex %d", i, c, k)
					}
				}
			}
		})
	}
}
