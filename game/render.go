package game

import (
	"image/color"

	"github.com/pthm-cable/tracer/camera"
	"github.com/pthm-cable/tracer/mesh"
	"github.com/pthm-cable/tracer/vec"
)

// Surface receives draw commands. The driver never reads pixels back.
type Surface interface {
	Clear(c color.RGBA)
	Circle(center vec.Vec2, radius float64, c color.RGBA)

	// 3D scene, bracketed by BeginScene/EndScene
	BeginScene(cam *camera.Orbit)
	Mesh(m *mesh.Mesh)
	Arrow(a mesh.Arrow, c color.RGBA)
	EndScene()
}

// Draw emits the active view to s. It does nothing before init.
func (d *FrameDriver) Draw(s Surface) {
	if !d.ready {
		return
	}
	d.perf.RecordFrame()

	switch d.view {
	case ViewSurface:
		d.drawSurface(s)
	default:
		d.drawTrails(s)
	}
}

func (d *FrameDriver) drawTrails(s Surface) {
	s.Clear(d.cfg.Derived.TrailsBackground)

	circles := d.circles[:0]
	for _, e := range d.channels {
		circles = d.trailMap.Get(e).Field.Emit(circles)
	}
	for i := range circles {
		c := &circles[i]
		s.Circle(c.Center, c.Radius, c.Color)
	}
	d.circles = circles
}

func (d *FrameDriver) drawSurface(s Surface) {
	s.Clear(d.cfg.Derived.SurfaceBackground)

	s.BeginScene(d.camera)
	if d.mesh != nil {
		s.Mesh(d.mesh)
	}
	if d.surface.showGradients {
		for _, a := range d.arrows {
			s.Arrow(a, d.cfg.Derived.ArrowColor)
		}
	}
	s.EndScene()
}
