package scalar

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/diff/fd"
	fscalar "gonum.org/v1/gonum/floats/scalar"
)

func TestGradientsMatchFiniteDifferences(t *testing.T) {
	settings := &fd.Settings{Formula: fd.Central}

	for _, f := range Catalog() {
		t.Run(f.Name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(42))
			value := func(p []float64) float64 { return f.Value(p[0], p[1]) }

			for i := 0; i < 50; i++ {
				x := (rng.Float64() - 0.5) * 11
				y := (rng.Float64() - 0.5) * 11

				num := fd.Gradient(nil, value, []float64{x, y}, settings)
				gx, gy := f.Gradient(x, y)

				if !approxEqual(gx, num[0]) {
					t.Errorf("∂f/∂x at (%.3f, %.3f) = %v, finite difference %v", x, y, gx, num[0])
				}
				if !approxEqual(gy, num[1]) {
					t.Errorf("∂f/∂y at (%.3f, %.3f) = %v, finite difference %v", x, y, gy, num[1])
				}
			}
		})
	}
}

// approxEqual compares with relative tolerance, falling back to absolute near zero.
func approxEqual(analytic, numeric float64) bool {
	return fscalar.EqualWithinAbsOrRel(analytic, numeric, 1e-3, 1e-3)
}

func TestSincSingularity(t *testing.T) {
	f, _, ok := Lookup("sin(√(x²+y²))/√(x²+y²)")
	if !ok {
		t.Fatal("sinc entry missing from catalog")
	}
	if v := f.At(0, 0); v != 1 {
		t.Errorf("f(0,0) = %v, want 1", v)
	}
	gx, gy := f.Gradient(0, 0)
	if gx != 0 || gy != 0 {
		t.Errorf("gradient at origin = (%v, %v), want (0, 0)", gx, gy)
	}
	// Continuous approach to the limit
	if v := f.At(1e-6, 0); math.Abs(v-1) > 1e-9 {
		t.Errorf("f near origin = %v, want ~1", v)
	}
}

func TestSaddleGradient(t *testing.T) {
	f, _, ok := Lookup("x² - y²")
	if !ok {
		t.Fatal("saddle entry missing from catalog")
	}
	gx, gy := f.Gradient(1, 1)
	if gx != 2 || gy != -2 {
		t.Errorf("gradient at (1,1) = (%v, %v), want (2, -2)", gx, gy)
	}
	if mag := math.Hypot(gx, gy); math.Abs(mag-2.828) > 0.001 {
		t.Errorf("|∇f| = %v, want ~2.83", mag)
	}
}

func TestGaussianPeakFlat(t *testing.T) {
	f, _, ok := Lookup("e^(-(x²+y²))")
	if !ok {
		t.Fatal("gaussian entry missing from catalog")
	}
	gx, gy := f.Gradient(0, 0)
	if math.Hypot(gx, gy) != 0 {
		t.Errorf("gradient at peak = (%v, %v), want zero", gx, gy)
	}
}

func TestCatalogIndexing(t *testing.T) {
	names := Names()
	if len(names) != Len() {
		t.Fatalf("Names() has %d entries, Len() = %d", len(names), Len())
	}
	for i, name := range names {
		f, ok := At(i)
		if !ok || f.Name != name {
			t.Errorf("At(%d) = %q, want %q", i, f.Name, name)
		}
		_, idx, ok := Lookup(name)
		if !ok || idx != i {
			t.Errorf("Lookup(%q) index = %d, want %d", name, idx, i)
		}
	}
	if _, ok := At(Len()); ok {
		t.Error("At(Len()) should be out of range")
	}
	if _, _, ok := Lookup("tan(x)"); ok {
		t.Error("Lookup of unknown name should fail")
	}
}

func TestCatalogIsCopy(t *testing.T) {
	c := Catalog()
	c[0].Name = "mutated"
	if f, _ := At(0); f.Name == "mutated" {
		t.Error("Catalog() exposed internal storage")
	}
}
