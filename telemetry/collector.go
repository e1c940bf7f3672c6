// Package telemetry collects frame timing and particle statistics and writes them out.
package telemetry

// Collector accumulates per-frame samples within fixed windows and produces WindowStats.
type Collector struct {
	windowFrames int64
	windowStart  int64

	particles    []float64
	lastCount    int
	meshRebuilds int
	arrows       int
}

// NewCollector creates a collector that flushes every windowFrames frames.
func NewCollector(windowFrames int) *Collector {
	if windowFrames < 1 {
		windowFrames = 1
	}
	return &Collector{
		windowFrames: int64(windowFrames),
		particles:    make([]float64, 0, windowFrames),
	}
}

// RecordFrame records the live particle total for one frame.
func (c *Collector) RecordFrame(particles int) {
	c.particles = append(c.particles, float64(particles))
	c.lastCount = particles
}

// RecordMeshRebuild records a surface rebuild and its arrow count.
func (c *Collector) RecordMeshRebuild(arrows int) {
	c.meshRebuilds++
	c.arrows = arrows
}

// ShouldFlush returns true if the current window is complete.
func (c *Collector) ShouldFlush(frame int64) bool {
	return frame-c.windowStart >= c.windowFrames
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(frame int64) WindowStats {
	mean, std, p90 := Summarize(c.particles)
	s := WindowStats{
		WindowStart:   c.windowStart,
		WindowEnd:     frame,
		ParticlesEnd:  c.lastCount,
		ParticlesMean: mean,
		ParticlesStd:  std,
		ParticlesP90:  p90,
		MeshRebuilds:  c.meshRebuilds,
		Arrows:        c.arrows,
	}

	c.windowStart = frame
	c.particles = c.particles[:0]
	c.meshRebuilds = 0
	return s
}
