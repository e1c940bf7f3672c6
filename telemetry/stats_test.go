package telemetry

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		mean     float64
		p90      float64
		checkStd bool
		std      float64
	}{
		{"empty slice", []float64{}, 0, 0, true, 0},
		{"single element", []float64{5}, 5, 5, true, 0},
		{"ramp", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 5.5, 9, false, 0},
		{"constant", []float64{74, 74, 74, 74}, 74, 74, true, 0},
		{"unsorted input", []float64{10, 1, 9, 2, 8, 3, 7, 4, 6, 5}, 5.5, 9, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std, p90 := Summarize(tt.values)
			if math.Abs(mean-tt.mean) > 0.001 {
				t.Errorf("mean = %v, want %v", mean, tt.mean)
			}
			if math.Abs(p90-tt.p90) > 1 {
				t.Errorf("p90 = %v, want ~%v", p90, tt.p90)
			}
			if tt.checkStd && math.Abs(std-tt.std) > 0.001 {
				t.Errorf("std = %v, want %v", std, tt.std)
			}
		})
	}
}

func TestSummarizeDoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Summarize(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input reordered: %v", values)
	}
}

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(4)

	for frame := int64(1); frame <= 4; frame++ {
		c.RecordFrame(int(frame) * 10)
		if frame < 4 && c.ShouldFlush(frame) {
			t.Fatalf("flush requested early at frame %d", frame)
		}
	}
	c.RecordMeshRebuild(57)
	c.RecordMeshRebuild(80)

	if !c.ShouldFlush(4) {
		t.Fatal("expected flush at frame 4")
	}
	s := c.Flush(4)
	if s.ParticlesEnd != 40 {
		t.Errorf("ParticlesEnd = %d, want 40", s.ParticlesEnd)
	}
	if math.Abs(s.ParticlesMean-25) > 1e-9 {
		t.Errorf("ParticlesMean = %v, want 25", s.ParticlesMean)
	}
	if s.MeshRebuilds != 2 || s.Arrows != 80 {
		t.Errorf("rebuilds = %d arrows = %d, want 2 and 80", s.MeshRebuilds, s.Arrows)
	}

	// Next window starts clean
	if c.ShouldFlush(5) {
		t.Error("new window should not flush immediately")
	}
	s = c.Flush(8)
	if s.MeshRebuilds != 0 || s.WindowStart != 4 {
		t.Errorf("second window = %+v", s)
	}
}
