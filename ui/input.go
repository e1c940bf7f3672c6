package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tracer/scalar"
)

// ResolutionStep is the resolution change per key press.
const ResolutionStep = 10

// Input polls raylib once per frame and forwards events to a Driver.
type Input struct {
	onScreen bool
	lastX    float32
	lastY    float32
}

// NewInput creates an input poller.
func NewInput() *Input {
	return &Input{}
}

// Poll forwards this frame's window, pointer and keyboard events.
// Pointer presses and wheel movement over panel are left to the UI.
func (in *Input) Poll(d Driver, panel rl.Rectangle) {
	// Driver ignores unchanged sizes; a zero size defers scene init.
	d.Resize(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))

	in.pollPointer(d, panel)
	in.pollKeys(d)
}

func (in *Input) pollPointer(d Driver, panel rl.Rectangle) {
	if !rl.IsCursorOnScreen() {
		if in.onScreen {
			d.PointerLeave()
		}
		in.onScreen = false
		return
	}

	mouse := rl.GetMousePosition()
	overPanel := rl.CheckCollisionPointRec(mouse, panel)
	x, y := float64(mouse.X), float64(mouse.Y)

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !overPanel {
		d.PointerDown(x, y)
	}
	if !in.onScreen || mouse.X != in.lastX || mouse.Y != in.lastY {
		d.PointerMove(x, y)
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		d.PointerUp()
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 && !overPanel {
		d.Wheel(float64(wheel))
	}

	in.onScreen = true
	in.lastX, in.lastY = mouse.X, mouse.Y
}

func (in *Input) pollKeys(d Driver) {
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		d.SetView(otherView(d.View()))
	}
	if rl.IsKeyPressed(rl.KeyG) {
		d.SetShowGradients(!d.ShowGradients())
	}
	if rl.IsKeyPressed(rl.KeyR) {
		d.ResetCamera()
	}

	// Function selection: [ and ]
	if rl.IsKeyPressed(rl.KeyLeftBracket) {
		d.SelectFunction(cycle(d.FunctionIndex(), -1, scalar.Len()))
	}
	if rl.IsKeyPressed(rl.KeyRightBracket) {
		d.SelectFunction(cycle(d.FunctionIndex(), 1, scalar.Len()))
	}

	// Resolution: - and =
	if rl.IsKeyPressed(rl.KeyMinus) {
		d.SetResolution(d.Resolution() - ResolutionStep)
	}
	if rl.IsKeyPressed(rl.KeyEqual) {
		d.SetResolution(d.Resolution() + ResolutionStep)
	}
}
