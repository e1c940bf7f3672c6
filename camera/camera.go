// Package camera provides an orbit camera for viewing the scalar surface.
package camera

import "math"

// Orbit looks at the origin from a point on a sphere.
// Drag rotates around the origin, wheel changes the distance.
type Orbit struct {
	// Pitch is the elevation above the ground plane, clamped to [-π/2, π/2]
	Pitch float64
	// Yaw is the rotation around the vertical axis
	Yaw float64

	// Distance from the origin
	Radius float64

	// Distance constraints
	MinRadius, MaxRadius float64

	// Fovy is the vertical field of view in degrees
	Fovy float64

	// Input sensitivity
	RotateSpeed float64 // radians per pixel dragged
	ZoomStep    float64 // radius fraction per wheel notch

	home pose
}

// pose is what a camera returns to on Reset.
type pose struct {
	Pitch, Yaw, Radius float64
}

// New creates a camera at the given pose with default input sensitivity.
func New(pitch, yaw, radius, minRadius, maxRadius float64) *Orbit {
	c := &Orbit{
		Radius:      radius,
		MinRadius:   minRadius,
		MaxRadius:   maxRadius,
		Fovy:        60,
		RotateSpeed: 0.005,
		ZoomStep:    0.1,
	}
	c.Pitch = clamp(pitch, -math.Pi/2, math.Pi/2)
	c.Yaw = yaw
	c.Radius = clamp(radius, minRadius, maxRadius)
	c.home = pose{Pitch: c.Pitch, Yaw: c.Yaw, Radius: c.Radius}
	return c
}

// Rotate applies a pointer drag of (dx, dy) screen pixels.
// Horizontal drag turns around the vertical axis, vertical drag tilts.
func (c *Orbit) Rotate(dx, dy float64) {
	c.Yaw += dx * c.RotateSpeed
	c.Pitch = clamp(c.Pitch+dy*c.RotateSpeed, -math.Pi/2, math.Pi/2)
}

// Zoom applies wheel movement. Positive delta moves closer.
func (c *Orbit) Zoom(delta float64) {
	c.Radius = clamp(c.Radius*(1-delta*c.ZoomStep), c.MinRadius, c.MaxRadius)
}

// Position returns the eye position in Y-up world coordinates.
func (c *Orbit) Position() (x, y, z float64) {
	cp := math.Cos(c.Pitch)
	x = c.Radius * cp * math.Sin(c.Yaw)
	y = c.Radius * math.Sin(c.Pitch)
	z = c.Radius * cp * math.Cos(c.Yaw)
	return x, y, z
}

// Reset returns the camera to the pose it was created with.
func (c *Orbit) Reset() {
	c.Pitch = c.home.Pitch
	c.Yaw = c.home.Yaw
	c.Radius = c.home.Radius
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
