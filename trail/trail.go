// Package trail implements decaying particle trails that chase a moving attractor.
package trail

import (
	"image/color"

	"github.com/pthm-cable/tracer/vec"
)

// Particle is a single fading trail element.
type Particle struct {
	Pos   vec.Vec2
	Vel   vec.Vec2
	Size  float64
	Alpha int // may go negative on the frame it dies
	Color color.RGBA
}

// Circle is the render data for one particle.
type Circle struct {
	Center vec.Vec2
	Radius float64
	Color  color.RGBA
}

// Params holds the per-channel tuning constants.
type Params struct {
	InitialSize  float64
	InitialAlpha int
	DecayRate    int      // alpha lost per frame
	AccelFactor  float64  // fraction of the distance to the target added to velocity
	Friction     float64  // velocity damping, must be < 1
	Drift        vec.Vec2 // constant displacement per frame
	Escape       Escape
}

// Field is one channel's ordered particle collection. Spawn order is preserved.
type Field struct {
	Particles []Particle
	Color     color.RGBA
	Params
}

// NewField creates an empty field.
func NewField(c color.RGBA, p Params) *Field {
	if p.Escape == nil {
		p.Escape = EscapeLeftTop
	}
	return &Field{
		Particles: make([]Particle, 0, expectedLive(p)),
		Color:     c,
		Params:    p,
	}
}

// expectedLive estimates the steady-state particle count for preallocation.
func expectedLive(p Params) int {
	if p.DecayRate <= 0 {
		return 64
	}
	return p.InitialAlpha/p.DecayRate + 1
}

// Update runs one frame: spawn at target, integrate toward target, decay, cull.
func (f *Field) Update(target vec.Vec2) {
	f.spawn(target)

	// Forward compaction keeps spawn order and never revisits a removed slot.
	alive := 0
	for i := range f.Particles {
		p := &f.Particles[i]

		dir := vec.Sub(target, p.Pos)
		acc := vec.Scale(f.AccelFactor, dir)
		p.Vel = vec.Scale(f.Friction, vec.Add(p.Vel, acc))
		next := vec.Add(vec.Add(p.Pos, p.Vel), f.Drift)

		p.Alpha -= f.DecayRate
		p.Color.A = alphaByte(p.Alpha)

		if p.Alpha <= 0 || f.Escape(next, p.Size) {
			continue
		}

		p.Pos = next
		f.Particles[alive] = *p
		alive++
	}
	f.Particles = f.Particles[:alive]
}

func (f *Field) spawn(at vec.Vec2) {
	c := f.Color
	c.A = alphaByte(f.InitialAlpha)
	f.Particles = append(f.Particles, Particle{
		Pos:   at,
		Size:  f.InitialSize,
		Alpha: f.InitialAlpha,
		Color: c,
	})
}

// Emit appends render data for every live particle to dst.
func (f *Field) Emit(dst []Circle) []Circle {
	for i := range f.Particles {
		p := &f.Particles[i]
		dst = append(dst, Circle{Center: p.Pos, Radius: p.Size / 2, Color: p.Color})
	}
	return dst
}

// Len returns the number of live particles.
func (f *Field) Len() int {
	return len(f.Particles)
}

// Reset drops every particle.
func (f *Field) Reset() {
	f.Particles = f.Particles[:0]
}

func alphaByte(a int) uint8 {
	if a < 0 {
		return 0
	}
	if a > 255 {
		return 255
	}
	return uint8(a)
}
