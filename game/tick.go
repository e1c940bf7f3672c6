package game

import (
	"log/slog"

	"github.com/pthm-cable/tracer/mesh"
	"github.com/pthm-cable/tracer/scalar"
	"github.com/pthm-cable/tracer/telemetry"
)

// Tick advances the simulation by one frame. Until the surface size is known
// it does nothing and retries on the next call.
func (d *FrameDriver) Tick() {
	if !d.tryInit() {
		return
	}

	d.perf.StartTick()

	d.perf.StartPhase(telemetry.PhaseWalkers)
	d.stepWalkers()
	d.applyPointer()

	d.perf.StartPhase(telemetry.PhaseTrails)
	d.updateTrails()

	d.perf.StartPhase(telemetry.PhaseMesh)
	if d.surfaceDirty {
		d.rebuildSurface()
	}

	d.perf.StartPhase(telemetry.PhaseTelemetry)
	d.frame++
	d.recordTelemetry()

	d.perf.EndTick()
}

// stepWalkers advances every walker and moves its channel's target with it.
func (d *FrameDriver) stepWalkers() {
	query := d.walkerFilter.Query()
	for query.Next() {
		w, target := query.Get()
		target.Pos = w.Step(d.rng)
	}
}

// applyPointer overrides the pointer channel's target while the pointer is live.
func (d *FrameDriver) applyPointer() {
	if !d.pointerLive {
		return
	}
	query := d.pointerFilter.Query()
	for query.Next() {
		_, target := query.Get()
		target.Pos = d.pointer
	}
}

func (d *FrameDriver) updateTrails() {
	query := d.trailFilter.Query()
	for query.Next() {
		target, tr := query.Get()
		tr.Field.Update(target.Pos)
	}
}

// rebuildSurface replaces the mesh and arrows wholesale. Parameter changes
// between two frames coalesce into one rebuild with the latest values.
func (d *FrameDriver) rebuildSurface() {
	f, _ := scalar.At(d.surface.function)
	size := d.cfg.Surface.Size
	res := d.surface.resolution

	d.mesh = mesh.Sample(f, size, res)
	d.arrows = nil
	if d.surface.showGradients {
		d.arrows = mesh.Gradients(f, size, res)
	}
	d.surfaceDirty = false
	d.meshRebuilds++
	d.collector.RecordMeshRebuild(len(d.arrows))

	lo, hi := d.mesh.HeightRange()
	slog.Info("surface rebuilt",
		"function", f.Name,
		"resolution", res,
		"vertices", len(d.mesh.Vertices),
		"triangles", len(d.mesh.Triangles),
		"arrows", len(d.arrows),
		"z_min", lo,
		"z_max", hi,
	)
}

func (d *FrameDriver) recordTelemetry() {
	d.collector.RecordFrame(d.Particles())
	if !d.collector.ShouldFlush(d.frame) {
		return
	}

	stats := d.collector.Flush(d.frame)
	perf := d.perf.Stats()
	if d.logStats {
		stats.LogStats()
		slog.Info("perf", "frame", d.frame, "stats", perf)
	}
	if err := d.output.WriteWindow(stats); err != nil {
		slog.Warn("telemetry write failed", "error", err)
	}
	if err := d.output.WritePerf(perf, d.frame); err != nil {
		slog.Warn("perf write failed", "error", err)
	}
}
