package game

import (
	"image/color"
	"math"
	"testing"

	"github.com/pthm-cable/tracer/camera"
	"github.com/pthm-cable/tracer/config"
	"github.com/pthm-cable/tracer/mesh"
	"github.com/pthm-cable/tracer/vec"
)

// recordingSurface captures draw calls for inspection.
type recordingSurface struct {
	clears  []color.RGBA
	circles int
	meshes  int
	arrows  int
	scenes  int
	open    bool
}

func (r *recordingSurface) Clear(c color.RGBA)                   { r.clears = append(r.clears, c) }
func (r *recordingSurface) Circle(vec.Vec2, float64, color.RGBA) { r.circles++ }
func (r *recordingSurface) BeginScene(*camera.Orbit)             { r.open = true }
func (r *recordingSurface) Mesh(*mesh.Mesh)                      { r.meshes++ }
func (r *recordingSurface) Arrow(mesh.Arrow, color.RGBA)         { r.arrows++ }
func (r *recordingSurface) EndScene() {
	r.open = false
	r.scenes++
}

func newTestDriver(t *testing.T) (*FrameDriver, *config.Config) {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	d, err := NewFrameDriver(cfg, Options{Seed: 42})
	if err != nil {
		t.Fatalf("NewFrameDriver: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d, cfg
}

// readyDriver returns a driver that has completed its first tick.
func readyDriver(t *testing.T) (*FrameDriver, *config.Config) {
	t.Helper()
	d, cfg := newTestDriver(t)
	d.Resize(800, 600)
	d.Tick()
	if !d.Ready() {
		t.Fatal("driver not ready after Resize and Tick")
	}
	return d, cfg
}

func TestDeferredInit(t *testing.T) {
	d, cfg := newTestDriver(t)

	for range 3 {
		d.Tick()
	}
	if d.Ready() || d.Frame() != 0 || d.ChannelCount() != 0 {
		t.Fatalf("ticked without a surface: ready=%v frame=%d channels=%d", d.Ready(), d.Frame(), d.ChannelCount())
	}
	var s recordingSurface
	d.Draw(&s)
	if len(s.clears) != 0 || s.circles != 0 {
		t.Errorf("Draw before init emitted %d clears and %d circles", len(s.clears), s.circles)
	}

	d.Resize(0, 600)
	d.Tick()
	if d.Ready() {
		t.Fatal("initialized with zero width")
	}

	d.Resize(800, 600)
	d.Tick()
	if !d.Ready() {
		t.Fatal("not initialized after valid Resize")
	}
	if d.ChannelCount() != len(cfg.Channels) {
		t.Errorf("ChannelCount = %d, want %d", d.ChannelCount(), len(cfg.Channels))
	}
	if d.Frame() != 1 {
		t.Errorf("Frame = %d, want 1", d.Frame())
	}
	if n := d.Particles(); n < 1 || n > len(cfg.Channels) {
		t.Errorf("Particles after first frame = %d, want 1..%d", n, len(cfg.Channels))
	}
	if d.Mesh() == nil || d.MeshRebuilds() != 1 {
		t.Errorf("first frame should build the mesh once, got %d rebuilds", d.MeshRebuilds())
	}
}

func TestChannelNames(t *testing.T) {
	d, cfg := readyDriver(t)
	for i, ch := range cfg.Channels {
		if got := d.ChannelName(i); got != ch.Name {
			t.Errorf("ChannelName(%d) = %q, want %q", i, got, ch.Name)
		}
	}
}

func TestPointerOverridesTarget(t *testing.T) {
	d, cfg := readyDriver(t)
	if cfg.Channels[0].Source != config.SourcePointer {
		t.Fatalf("defaults: channel 0 source = %q", cfg.Channels[0].Source)
	}

	d.PointerMove(123, 321)
	d.Tick()
	if got := d.ChannelTarget(0); got != vec.New(123, 321) {
		t.Errorf("pointer channel target = %+v, want (123, 321)", got)
	}
	if got := d.ChannelTarget(1); got == vec.New(123, 321) {
		t.Error("walker channel followed the pointer")
	}

	d.PointerLeave()
	if d.PointerLive() {
		t.Fatal("pointer still live after leave")
	}
	d.Tick()
	if got := d.ChannelTarget(0); got == vec.New(123, 321) {
		t.Error("pointer channel did not fall back to its walker")
	}
}

func TestTargetsStayInBounds(t *testing.T) {
	d, _ := readyDriver(t)
	check := func(w, h float64) {
		t.Helper()
		for i := range d.ChannelCount() {
			p := d.ChannelTarget(i)
			if p.X < 0 || p.X > w || p.Y < 0 || p.Y > h {
				t.Fatalf("channel %d target %+v outside %vx%v", i, p, w, h)
			}
		}
	}

	for range 200 {
		d.Tick()
		check(800, 600)
	}

	d.Resize(200, 100)
	check(200, 100)
	for range 200 {
		d.Tick()
		check(200, 100)
	}
}

func TestParticleCountBounded(t *testing.T) {
	d, cfg := readyDriver(t)
	for range 500 {
		d.Tick()
	}
	// Each channel spawns one particle per frame and holds at most
	// ceil(alpha/decay) of them.
	limit := 0
	for _, ch := range cfg.Channels {
		limit += (ch.InitialAlpha + ch.DecayRate - 1) / ch.DecayRate
	}
	if n := d.Particles(); n == 0 || n > limit {
		t.Errorf("Particles = %d, want 1..%d", n, limit)
	}
}

func TestSurfaceRebuildCoalesced(t *testing.T) {
	d, _ := readyDriver(t)

	d.SelectFunction(1)
	d.SetResolution(30)
	d.SetResolution(40)
	d.Tick()

	if d.MeshRebuilds() != 2 {
		t.Fatalf("MeshRebuilds = %d, want 2", d.MeshRebuilds())
	}
	if d.Mesh().Resolution != 40 {
		t.Errorf("mesh resolution = %d, want 40", d.Mesh().Resolution)
	}
	if d.FunctionIndex() != 1 {
		t.Errorf("FunctionIndex = %d, want 1", d.FunctionIndex())
	}

	d.Tick()
	d.SetResolution(40)
	d.SelectFunction(1)
	d.Tick()
	if d.MeshRebuilds() != 2 {
		t.Errorf("unchanged parameters triggered a rebuild (%d)", d.MeshRebuilds())
	}
}

func TestSetResolutionClamps(t *testing.T) {
	d, cfg := newTestDriver(t)
	tests := []struct {
		in, want int
	}{
		{5, cfg.Surface.MinResolution},
		{1000, cfg.Surface.MaxResolution},
		{64, 64},
	}
	for _, tt := range tests {
		d.SetResolution(tt.in)
		if got := d.Resolution(); got != tt.want {
			t.Errorf("SetResolution(%d) -> %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSelectFunctionIgnoresUnknown(t *testing.T) {
	d, _ := readyDriver(t)
	before := d.FunctionIndex()
	d.SelectFunction(-1)
	d.SelectFunction(99)
	d.Tick()
	if d.FunctionIndex() != before || d.MeshRebuilds() != 1 {
		t.Errorf("unknown index changed state: function=%d rebuilds=%d", d.FunctionIndex(), d.MeshRebuilds())
	}
}

func TestGradientToggle(t *testing.T) {
	d, _ := readyDriver(t)
	if len(d.Arrows()) == 0 {
		t.Fatal("default surface should have gradient arrows")
	}

	d.SetShowGradients(false)
	d.Tick()
	if len(d.Arrows()) != 0 {
		t.Errorf("arrows present with gradients hidden: %d", len(d.Arrows()))
	}

	d.SetView(ViewSurface)
	var s recordingSurface
	d.Draw(&s)
	if s.arrows != 0 {
		t.Errorf("drew %d arrows with gradients hidden", s.arrows)
	}
}

func TestDrawTrails(t *testing.T) {
	d, cfg := readyDriver(t)
	for range 20 {
		d.Tick()
	}

	var s recordingSurface
	d.Draw(&s)
	if len(s.clears) != 1 || s.clears[0] != cfg.Derived.TrailsBackground {
		t.Errorf("clears = %v, want one %v", s.clears, cfg.Derived.TrailsBackground)
	}
	if s.circles != d.Particles() {
		t.Errorf("drew %d circles for %d particles", s.circles, d.Particles())
	}
	if s.scenes != 0 || s.meshes != 0 {
		t.Error("trails view drew the 3D scene")
	}
}

func TestDrawSurface(t *testing.T) {
	d, cfg := readyDriver(t)
	d.SetView(ViewSurface)

	var s recordingSurface
	d.Draw(&s)
	if len(s.clears) != 1 || s.clears[0] != cfg.Derived.SurfaceBackground {
		t.Errorf("clears = %v, want one %v", s.clears, cfg.Derived.SurfaceBackground)
	}
	if s.scenes != 1 || s.open {
		t.Errorf("scene not bracketed: scenes=%d open=%v", s.scenes, s.open)
	}
	if s.meshes != 1 {
		t.Errorf("meshes = %d, want 1", s.meshes)
	}
	if s.arrows != len(d.Arrows()) {
		t.Errorf("drew %d arrows, have %d", s.arrows, len(d.Arrows()))
	}
	if s.circles != 0 {
		t.Error("surface view drew particles")
	}
}

func TestDragRotatesOnlyInSurfaceView(t *testing.T) {
	d, _ := readyDriver(t)
	cam := d.Camera()
	yaw := cam.Yaw

	d.PointerDown(0, 0)
	d.PointerMove(50, 0)
	d.PointerUp()
	if cam.Yaw != yaw {
		t.Errorf("trails view drag rotated camera: yaw %v -> %v", yaw, cam.Yaw)
	}

	d.SetView(ViewSurface)
	d.PointerDown(0, 0)
	d.PointerMove(50, 0)
	d.PointerUp()
	want := yaw + 50*cam.RotateSpeed
	if math.Abs(cam.Yaw-want) > 1e-12 {
		t.Errorf("yaw = %v, want %v", cam.Yaw, want)
	}

	d.PointerMove(100, 0)
	if math.Abs(cam.Yaw-want) > 1e-12 {
		t.Error("move without button rotated camera")
	}
}

func TestDragClampsPitch(t *testing.T) {
	d, _ := readyDriver(t)
	d.SetView(ViewSurface)
	d.Drag(0, 1e6)
	if got := d.Camera().Pitch; got != math.Pi/2 {
		t.Errorf("pitch = %v, want π/2", got)
	}
	d.Drag(0, -1e6)
	if got := d.Camera().Pitch; got != -math.Pi/2 {
		t.Errorf("pitch = %v, want -π/2", got)
	}
}

func TestWheelZooms(t *testing.T) {
	d, _ := readyDriver(t)
	cam := d.Camera()
	r := cam.Radius

	d.Wheel(1)
	if cam.Radius != r {
		t.Error("wheel zoomed in trails view")
	}

	d.SetView(ViewSurface)
	d.Wheel(1)
	if cam.Radius >= r {
		t.Errorf("radius %v not reduced from %v", cam.Radius, r)
	}

	d.ResetCamera()
	if cam.Radius != r {
		t.Errorf("ResetCamera radius = %v, want %v", cam.Radius, r)
	}
}

func TestParseView(t *testing.T) {
	tests := []struct {
		in      string
		want    View
		wantErr bool
	}{
		{"trails", ViewTrails, false},
		{"surface", ViewSurface, false},
		{"3d", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseView(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseView(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseView(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if !tt.wantErr && got.String() != tt.in {
			t.Errorf("%v.String() = %q", got, got.String())
		}
	}
}
