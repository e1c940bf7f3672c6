package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of frames.
type WindowStats struct {
	WindowStart int64 `csv:"-"`
	WindowEnd   int64 `csv:"frame"`

	// Live particles summed over all channels, sampled every frame
	ParticlesEnd  int     `csv:"particles"`
	ParticlesMean float64 `csv:"particles_mean"`
	ParticlesStd  float64 `csv:"particles_std"`
	ParticlesP90  float64 `csv:"particles_p90"`

	// Surface
	MeshRebuilds int `csv:"mesh_rebuilds"`
	Arrows       int `csv:"arrows"`
}

// Summarize returns mean, standard deviation and the 90th percentile of values.
func Summarize(values []float64) (mean, std, p90 float64) {
	switch len(values) {
	case 0:
		return 0, 0, 0
	case 1:
		return values[0], 0, values[0]
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, std = stat.MeanStdDev(sorted, nil)
	p90 = stat.Quantile(0.9, stat.LinInterp, sorted, nil)
	return mean, std, p90
}

// LogStats logs the window statistics.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"frame", s.WindowEnd,
		"particles", s.ParticlesEnd,
		"particles_mean", s.ParticlesMean,
		"particles_p90", s.ParticlesP90,
		"mesh_rebuilds", s.MeshRebuilds,
		"arrows", s.Arrows,
	)
}
