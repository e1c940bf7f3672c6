// Package walk implements a bounded Gaussian random walk used as an
// autonomous attractor source.
package walk

import (
	"math"

	"github.com/pthm-cable/tracer/vec"
)

const twoPi = 2 * math.Pi

// Bounds is the axis-aligned region a walker is confined to.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Contains reports whether p lies inside b (edges included).
func (b Bounds) Contains(p vec.Vec2) bool {
	return p.X >= b.XMin && p.X <= b.XMax && p.Y >= b.YMin && p.Y <= b.YMax
}

// Clamp returns p moved to the nearest point inside b.
func (b Bounds) Clamp(p vec.Vec2) vec.Vec2 {
	return vec.New(clamp(p.X, b.XMin, b.XMax), clamp(p.Y, b.YMin, b.YMax))
}

// Params holds the step distribution of a walker.
type Params struct {
	StepMean      float64
	StepStdDev    float64
	HeadingStdDev float64
}

// Walker is a Markov random walk with Gaussian step length and heading.
// Position stays within Bounds after every Step.
type Walker struct {
	Pos     vec.Vec2
	Heading float64 // radians, [0, 2π)
	Params
	Bounds Bounds
}

// New creates a walker at a uniformly random point inside bounds with a random heading.
func New(p Params, bounds Bounds, src Uniform) Walker {
	return Walker{
		Pos: vec.New(
			bounds.XMin+src.Float64()*(bounds.XMax-bounds.XMin),
			bounds.YMin+src.Float64()*(bounds.YMax-bounds.YMin),
		),
		Heading: src.Float64() * twoPi,
		Params:  p,
		Bounds:  bounds,
	}
}

// Step advances the walk by one tick and returns the new position.
func (w *Walker) Step(src Uniform) vec.Vec2 {
	w.Heading = wrapHeading(Gaussian(src, w.Heading, w.HeadingStdDev))

	// Negative lengths are allowed; they walk backwards.
	length := Gaussian(src, w.StepMean, w.StepStdDev)
	w.Pos = vec.Add(w.Pos, vec.New(length*math.Cos(w.Heading), length*math.Sin(w.Heading)))

	w.reflect()
	return w.Pos
}

// reflect mirrors the heading on each axis the walker crossed and clamps it back
// inside. Both axes may fire on the same step.
func (w *Walker) reflect() {
	b := w.Bounds
	if w.Pos.X < b.XMin || w.Pos.X > b.XMax {
		w.Heading = wrapHeading(math.Pi - w.Heading)
		w.Pos.X = clamp(w.Pos.X, b.XMin, b.XMax)
	}
	if w.Pos.Y < b.YMin || w.Pos.Y > b.YMax {
		w.Heading = wrapHeading(-w.Heading)
		w.Pos.Y = clamp(w.Pos.Y, b.YMin, b.YMax)
	}
}

// Resize replaces the bounds and pulls the walker inside them.
func (w *Walker) Resize(b Bounds) {
	w.Bounds = b
	w.Pos = b.Clamp(w.Pos)
}

// wrapHeading reduces h into [0, 2π).
func wrapHeading(h float64) float64 {
	h = math.Mod(h, twoPi)
	if h < 0 {
		h += twoPi
	}
	return h
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
