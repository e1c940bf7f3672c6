// Package vec provides the 2D vector value type used by the trail and walk systems.
package vec

import "math"

// Vec2 is an immutable 2D vector. Every operation returns a new value.
type Vec2 struct {
	X, Y float64
}

// Zero is the zero vector.
var Zero = Vec2{}

// New returns the vector (x, y).
func New(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns u + v.
func Add(u, v Vec2) Vec2 {
	return Vec2{X: u.X + v.X, Y: u.Y + v.Y}
}

// Sub returns u - v.
func Sub(u, v Vec2) Vec2 {
	return Vec2{X: u.X - v.X, Y: u.Y - v.Y}
}

// Scale returns s * v.
func Scale(s float64, v Vec2) Vec2 {
	return Vec2{X: s * v.X, Y: s * v.Y}
}

// Normalize returns v scaled to unit length.
// The zero vector normalizes to itself.
func Normalize(v Vec2) Vec2 {
	l := math.Hypot(v.X, v.Y)
	if l == 0 {
		return Zero
	}
	return Scale(1/l, v)
}

// Add returns v + u.
func (v Vec2) Add(u Vec2) Vec2 { return Add(v, u) }

// Sub returns v - u.
func (v Vec2) Sub(u Vec2) Vec2 { return Sub(v, u) }

// Scale returns s * v.
func (v Vec2) Scale(s float64) Vec2 { return Scale(s, v) }

// Normalize returns the unit vector in the direction of v.
func (v Vec2) Normalize() Vec2 { return Normalize(v) }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the distance between v and u.
func (v Vec2) Dist(u Vec2) float64 {
	return Sub(v, u).Len()
}

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}
