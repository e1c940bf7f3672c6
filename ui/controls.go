package ui

import (
	"fmt"
	"math"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tracer/config"
	"github.com/pthm-cable/tracer/game"
	"github.com/pthm-cable/tracer/scalar"
)

// Driver is the subset of the frame driver the UI reads and controls.
type Driver interface {
	Resize(width, height float64)
	PointerMove(x, y float64)
	PointerDown(x, y float64)
	PointerUp()
	PointerLeave()
	Wheel(delta float64)

	View() game.View
	SetView(v game.View)
	ResetCamera()

	FunctionIndex() int
	SelectFunction(i int)
	Resolution() int
	SetResolution(r int)
	ShowGradients() bool
	SetShowGradients(show bool)

	ChannelCount() int
	ChannelName(i int) string
	ChannelParticles(i int) int
}

// ControlsPanel renders the right-side control panel.
type ControlsPanel struct {
	renderer *Renderer
	width    int32
	visible  bool

	functions string // raygui item list
	minRes    int
	maxRes    int

	channelColors []rl.Color
	capacity      []int // steady-state particle count per channel

	bounds rl.Rectangle
}

// NewControlsPanel creates a control panel for the given configuration.
func NewControlsPanel(cfg *config.Config, width int32) *ControlsPanel {
	c := &ControlsPanel{
		renderer:  NewRenderer(),
		width:     width,
		visible:   true,
		functions: strings.Join(scalar.Names(), ";"),
		minRes:    cfg.Surface.MinResolution,
		maxRes:    cfg.Surface.MaxResolution,
	}
	for i, ch := range cfg.Channels {
		c.channelColors = append(c.channelColors, cfg.Derived.ChannelColors[i])
		c.capacity = append(c.capacity, (ch.InitialAlpha+ch.DecayRate-1)/ch.DecayRate)
	}
	return c
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Bounds returns the area covered by the panel on the last Draw.
// Pointer input over it is not forwarded to the scene.
func (c *ControlsPanel) Bounds() rl.Rectangle {
	return c.bounds
}

// Draw renders the panel anchored to the top-right corner and applies any
// control changes to d.
func (c *ControlsPanel) Draw(d Driver, screenWidth int32) {
	if !c.visible {
		c.bounds = rl.Rectangle{}
		return
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	x := screenWidth - c.width - padding
	y := padding

	height := lineHeight*3 + padding*2 + 34
	if d.View() == game.ViewSurface {
		height += 4*34 + lineHeight
	} else {
		height += int32(d.ChannelCount())*lineHeight + lineHeight
	}
	r.DrawPanel(x, y, c.width, height)
	c.bounds = rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(c.width), Height: float32(height)}

	inner := c.width - padding*2
	x += padding
	y += padding

	rl.DrawText("Controls", x, y, 16, rl.White)
	y += lineHeight + 4

	viewLabel := "Show surface [Tab]"
	if d.View() == game.ViewSurface {
		viewLabel = "Show trails [Tab]"
	}
	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(inner), Height: 26}, viewLabel) {
		d.SetView(otherView(d.View()))
	}
	y += 34

	if d.View() == game.ViewSurface {
		c.drawSurfaceControls(d, x, y, inner)
		return
	}
	c.drawChannels(d, x, y, inner)
}

func (c *ControlsPanel) drawSurfaceControls(d Driver, x, y, width int32) {
	r := c.renderer

	y = r.DrawSectionHeader(x, y, "Surface")

	active := gui.ComboBox(rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(width), Height: 24}, c.functions, int32(d.FunctionIndex()))
	if int(active) != d.FunctionIndex() {
		d.SelectFunction(int(active))
	}
	y += 34

	res := d.Resolution()
	rl.DrawText(fmt.Sprintf("Resolution: %d", res), x, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += 14
	v := gui.SliderBar(
		rl.Rectangle{X: float32(x + 24), Y: float32(y), Width: float32(width - 56), Height: 16},
		fmt.Sprint(c.minRes), fmt.Sprint(c.maxRes),
		float32(res), float32(c.minRes), float32(c.maxRes),
	)
	if next := int(math.Round(float64(v))); next != res {
		d.SetResolution(next)
	}
	y += 20

	show := gui.CheckBox(rl.Rectangle{X: float32(x), Y: float32(y), Width: 16, Height: 16}, "Gradient arrows [G]", d.ShowGradients())
	if show != d.ShowGradients() {
		d.SetShowGradients(show)
	}
	y += 34

	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(width), Height: 24}, "Reset camera [R]") {
		d.ResetCamera()
	}
}

func (c *ControlsPanel) drawChannels(d Driver, x, y, width int32) {
	r := c.renderer
	y = r.DrawSectionHeader(x, y, "Channels")
	for i := range d.ChannelCount() {
		n := d.ChannelParticles(i)
		fill := float32(0)
		if c.capacity[i] > 0 {
			fill = float32(n) / float32(c.capacity[i])
		}
		y = r.DrawSwatchBar(x, y, d.ChannelName(i), c.channelColors[i], fill, formatCount(n), width)
	}
}

func otherView(v game.View) game.View {
	if v == game.ViewSurface {
		return game.ViewTrails
	}
	return game.ViewSurface
}

// cycle steps i by delta within [0, n), wrapping at both ends.
func cycle(i, delta, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i+delta)%n + n) % n
}
