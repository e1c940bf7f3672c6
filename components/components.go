// Package components defines ECS components for the trail channels.
package components

import (
	"github.com/pthm-cable/tracer/trail"
	"github.com/pthm-cable/tracer/vec"
)

// Channel identifies a color-tagged particle stream.
type Channel struct {
	Name  string
	Index int // position in the configured channel list, stable for the session
}

// Target is the attractor position the channel's particles chase this frame.
type Target struct {
	Pos vec.Vec2
}

// Trail holds the channel's particle field.
type Trail struct {
	Field *trail.Field
}

// Pointer tags the channel that follows the pointer while it is live.
// A walker on the same entity drives the target otherwise.
type Pointer struct{}
