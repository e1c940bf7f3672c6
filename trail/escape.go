package trail

import (
	"fmt"

	"github.com/pthm-cable/tracer/vec"
)

// Escape reports whether a particle of the given size at next has left the
// renderable area and should be dropped.
type Escape func(next vec.Vec2, size float64) bool

// EscapeLeft drops particles that leave past the left edge.
func EscapeLeft(next vec.Vec2, size float64) bool {
	return next.X < -size
}

// EscapeLeftTop drops particles that leave past the left or top edge.
func EscapeLeftTop(next vec.Vec2, size float64) bool {
	return next.X < -size || next.Y < -size
}

// EscapeNever keeps particles until they fade out.
func EscapeNever(vec.Vec2, float64) bool {
	return false
}

// ParseEscape maps a config name to an escape predicate.
func ParseEscape(name string) (Escape, error) {
	switch name {
	case "", "left_top":
		return EscapeLeftTop, nil
	case "left":
		return EscapeLeft, nil
	case "none":
		return EscapeNever, nil
	}
	return nil, fmt.Errorf("unknown escape mode %q", name)
}
