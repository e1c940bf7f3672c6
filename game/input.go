package game

import (
	"log/slog"

	"github.com/pthm-cable/tracer/scalar"
	"github.com/pthm-cable/tracer/vec"
)

// Input entry points. The input source calls these between frames.

// Resize records a new surface size and propagates it to the walkers.
func (d *FrameDriver) Resize(width, height float64) {
	if width == d.width && height == d.height {
		return
	}
	d.width = width
	d.height = height
	if !d.ready || width <= 0 || height <= 0 {
		return
	}

	bounds := d.walkBounds()
	query := d.walkerFilter.Query()
	for query.Next() {
		w, target := query.Get()
		w.Resize(bounds)
		target.Pos = w.Pos
	}
}

// PointerMove records the pointer position. In the surface view a held
// pointer rotates the camera.
func (d *FrameDriver) PointerMove(x, y float64) {
	p := vec.New(x, y)
	if d.dragging && d.view == ViewSurface {
		delta := p.Sub(d.dragLast)
		d.Drag(delta.X, delta.Y)
	}
	d.dragLast = p
	d.pointer = p
	d.pointerLive = true
}

// PointerDown starts a drag.
func (d *FrameDriver) PointerDown(x, y float64) {
	d.dragging = true
	d.dragLast = vec.New(x, y)
	d.pointer = d.dragLast
	d.pointerLive = true
}

// PointerUp ends a drag.
func (d *FrameDriver) PointerUp() {
	d.dragging = false
}

// PointerLeave hands the pointer channel back to its walker.
func (d *FrameDriver) PointerLeave() {
	d.pointerLive = false
	d.dragging = false
}

// Drag rotates the surface camera by a pointer delta in pixels. It is the
// entry point for input sources that report relative motion.
func (d *FrameDriver) Drag(dx, dy float64) {
	if d.view != ViewSurface {
		return
	}
	d.camera.Rotate(dx, dy)
}

// Wheel zooms the surface camera. Positive delta moves closer.
func (d *FrameDriver) Wheel(delta float64) {
	if d.view != ViewSurface || delta == 0 {
		return
	}
	d.camera.Zoom(delta)
}

// SetView switches between the trails and surface views.
func (d *FrameDriver) SetView(v View) {
	if v != ViewTrails && v != ViewSurface {
		slog.Warn("ignoring unknown view", "view", v)
		return
	}
	d.view = v
	d.dragging = false
}

// ResetCamera returns the surface camera to its configured pose.
func (d *FrameDriver) ResetCamera() {
	d.camera.Reset()
}

// SelectFunction selects a catalog entry by index. Unknown indices are ignored.
func (d *FrameDriver) SelectFunction(i int) {
	if _, ok := scalar.At(i); !ok {
		slog.Warn("ignoring unknown function index", "index", i, "catalog_size", scalar.Len())
		return
	}
	if i == d.surface.function {
		return
	}
	d.surface.function = i
	d.surfaceDirty = true
}

// SetResolution sets the grid resolution, clamped to the configured range.
func (d *FrameDriver) SetResolution(r int) {
	lo, hi := d.cfg.Surface.MinResolution, d.cfg.Surface.MaxResolution
	if r < lo || r > hi {
		slog.Warn("clamping resolution", "requested", r, "min", lo, "max", hi)
		r = max(lo, min(r, hi))
	}
	if r == d.surface.resolution {
		return
	}
	d.surface.resolution = r
	d.surfaceDirty = true
}

// SetShowGradients toggles the gradient arrow field.
func (d *FrameDriver) SetShowGradients(show bool) {
	if show == d.surface.showGradients {
		return
	}
	d.surface.showGradients = show
	d.surfaceDirty = true
}
