// Package game drives the per-frame simulation: walkers, particle trails and
// the sampled surface. FrameDriver is the only owner of that state.
package game

import (
	"fmt"
	"image/color"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tracer/camera"
	"github.com/pthm-cable/tracer/components"
	"github.com/pthm-cable/tracer/config"
	"github.com/pthm-cable/tracer/mesh"
	"github.com/pthm-cable/tracer/scalar"
	"github.com/pthm-cable/tracer/telemetry"
	"github.com/pthm-cable/tracer/trail"
	"github.com/pthm-cable/tracer/vec"
	"github.com/pthm-cable/tracer/walk"
)

// View selects what Draw renders.
type View uint8

const (
	ViewTrails View = iota
	ViewSurface
)

func (v View) String() string {
	switch v {
	case ViewTrails:
		return "trails"
	case ViewSurface:
		return "surface"
	}
	return fmt.Sprintf("View(%d)", uint8(v))
}

// ParseView maps a flag value to a View.
func ParseView(s string) (View, error) {
	switch s {
	case "trails":
		return ViewTrails, nil
	case "surface":
		return ViewSurface, nil
	}
	return 0, fmt.Errorf("unknown view %q (want trails or surface)", s)
}

// Options configures a FrameDriver beyond the loaded config.
type Options struct {
	Seed      int64
	LogStats  bool
	OutputDir string
	View      View
}

// FrameDriver owns all animation state. Input callbacks and the frame tick are
// the only mutation paths and must not run concurrently.
type FrameDriver struct {
	cfg *config.Config
	rng *rand.Rand

	// Channel arena
	world         *ecs.World
	channelMapper *ecs.Map3[components.Channel, components.Target, components.Trail]
	walkerMap     *ecs.Map[walk.Walker]
	pointerMap    *ecs.Map[components.Pointer]
	trailMap      *ecs.Map[components.Trail]
	targetMap     *ecs.Map[components.Target]
	walkerFilter  *ecs.Filter2[walk.Walker, components.Target]
	pointerFilter *ecs.Filter2[components.Pointer, components.Target]
	trailFilter   *ecs.Filter2[components.Target, components.Trail]
	channels      []ecs.Entity // config order, used for draw order

	// Surface state
	surface      surfaceParams
	surfaceDirty bool
	mesh         *mesh.Mesh
	arrows       []mesh.Arrow
	camera       *camera.Orbit
	view         View
	meshRebuilds int

	// Input state
	width, height float64
	pointer       vec.Vec2
	pointerLive   bool
	dragging      bool
	dragLast      vec.Vec2

	// Lifecycle
	ready       bool
	deferLogged bool
	frame       int64

	// Telemetry
	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	logStats  bool

	circles []trail.Circle // scratch for Draw
}

type surfaceParams struct {
	function      int
	resolution    int
	showGradients bool
}

// NewFrameDriver creates a driver. Channels are created lazily once the
// surface size is known (see Resize and Tick).
func NewFrameDriver(cfg *config.Config, opts Options) (*FrameDriver, error) {
	_, fn, ok := scalar.Lookup(cfg.Surface.Function)
	if !ok {
		return nil, fmt.Errorf("unknown surface function %q", cfg.Surface.Function)
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	world := ecs.NewWorld()
	cc := cfg.Camera
	cam := camera.New(cc.Pitch, cc.Yaw, cc.Radius, cc.MinRadius, cc.MaxRadius)
	cam.Fovy = cc.Fovy
	cam.RotateSpeed = cc.RotateSpeed
	cam.ZoomStep = cc.ZoomStep

	d := &FrameDriver{
		cfg:           cfg,
		rng:           rand.New(rand.NewSource(opts.Seed)),
		world:         world,
		channelMapper: ecs.NewMap3[components.Channel, components.Target, components.Trail](world),
		walkerMap:     ecs.NewMap[walk.Walker](world),
		pointerMap:    ecs.NewMap[components.Pointer](world),
		trailMap:      ecs.NewMap[components.Trail](world),
		targetMap:     ecs.NewMap[components.Target](world),
		walkerFilter:  ecs.NewFilter2[walk.Walker, components.Target](world),
		pointerFilter: ecs.NewFilter2[components.Pointer, components.Target](world),
		trailFilter:   ecs.NewFilter2[components.Target, components.Trail](world),
		surface: surfaceParams{
			function:      fn,
			resolution:    cfg.Surface.Resolution,
			showGradients: cfg.Surface.ShowGradients,
		},
		surfaceDirty: true,
		camera:       cam,
		view:         opts.View,
		perf:         telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		collector:    telemetry.NewCollector(cfg.Telemetry.WindowFrames),
		output:       output,
		logStats:     opts.LogStats,
	}
	return d, nil
}

// tryInit creates the channels once a surface size is known.
func (d *FrameDriver) tryInit() bool {
	if d.ready {
		return true
	}
	if d.width <= 0 || d.height <= 0 {
		if !d.deferLogged {
			slog.Debug("surface not ready, deferring init")
			d.deferLogged = true
		}
		return false
	}

	bounds := d.walkBounds()
	for i, ch := range d.cfg.Channels {
		d.channels = append(d.channels, d.createChannel(i, ch, d.cfg.Derived.ChannelColors[i], bounds))
	}
	d.ready = true

	slog.Info("scene initialized",
		"width", d.width,
		"height", d.height,
		"channels", len(d.channels),
	)
	return true
}

// ChannelParams converts a channel config into trail and walker parameters.
func ChannelParams(ch config.ChannelConfig) (trail.Params, walk.Params, error) {
	escape, err := trail.ParseEscape(ch.Escape)
	if err != nil {
		return trail.Params{}, walk.Params{}, err
	}
	tp := trail.Params{
		InitialSize:  ch.InitialSize,
		InitialAlpha: ch.InitialAlpha,
		DecayRate:    ch.DecayRate,
		AccelFactor:  ch.Accel,
		Friction:     ch.Friction,
		Drift:        vec.New(ch.Drift[0], ch.Drift[1]),
		Escape:       escape,
	}
	wp := walk.Params{
		StepMean:      ch.Walker.StepMean,
		StepStdDev:    ch.Walker.StepStdDev,
		HeadingStdDev: ch.Walker.HeadingStdDev,
	}
	return tp, wp, nil
}

// createChannel builds one channel entity with its walker and optional pointer tag.
func (d *FrameDriver) createChannel(index int, ch config.ChannelConfig, c color.RGBA, bounds walk.Bounds) ecs.Entity {
	// Escape names are checked by config.Validate
	tp, wp, _ := ChannelParams(ch)

	field := trail.NewField(c, tp)
	w := walk.New(wp, bounds, d.rng)

	entity := d.channelMapper.NewEntity(
		&components.Channel{Name: ch.Name, Index: index},
		&components.Target{Pos: w.Pos},
		&components.Trail{Field: field},
	)
	d.walkerMap.Add(entity, &w)
	if ch.Source == config.SourcePointer {
		d.pointerMap.Add(entity, &components.Pointer{})
	}
	return entity
}

func (d *FrameDriver) walkBounds() walk.Bounds {
	return walk.Bounds{XMin: 0, XMax: d.width, YMin: 0, YMax: d.height}
}

// Close closes telemetry output.
func (d *FrameDriver) Close() error {
	return d.output.Close()
}

// Ready reports whether the channels have been created.
func (d *FrameDriver) Ready() bool { return d.ready }

// Frame returns the number of completed ticks.
func (d *FrameDriver) Frame() int64 { return d.frame }

// View returns the active view.
func (d *FrameDriver) View() View { return d.view }

// Camera returns the surface view camera.
func (d *FrameDriver) Camera() *camera.Orbit { return d.camera }

// FunctionIndex returns the selected catalog index.
func (d *FrameDriver) FunctionIndex() int { return d.surface.function }

// Resolution returns the requested grid resolution.
func (d *FrameDriver) Resolution() int { return d.surface.resolution }

// ShowGradients reports whether gradient arrows are drawn.
func (d *FrameDriver) ShowGradients() bool { return d.surface.showGradients }

// Mesh returns the current surface mesh, nil before the first rebuild.
func (d *FrameDriver) Mesh() *mesh.Mesh { return d.mesh }

// Arrows returns the current gradient arrows.
func (d *FrameDriver) Arrows() []mesh.Arrow { return d.arrows }

// MeshRebuilds returns how many times the surface has been rebuilt.
func (d *FrameDriver) MeshRebuilds() int { return d.meshRebuilds }

// PointerLive reports whether pointer input currently drives the pointer channel.
func (d *FrameDriver) PointerLive() bool { return d.pointerLive }

// ChannelCount returns the number of channels (zero before init).
func (d *FrameDriver) ChannelCount() int { return len(d.channels) }

// ChannelName returns the configured name of channel i.
func (d *FrameDriver) ChannelName(i int) string {
	return d.cfg.Channels[i].Name
}

// ChannelParticles returns the live particle count of channel i.
func (d *FrameDriver) ChannelParticles(i int) int {
	return d.trailMap.Get(d.channels[i]).Field.Len()
}

// ChannelTarget returns the current attractor position of channel i.
func (d *FrameDriver) ChannelTarget(i int) vec.Vec2 {
	return d.targetMap.Get(d.channels[i]).Pos
}

// Particles returns the live particle total across channels.
func (d *FrameDriver) Particles() int {
	total := 0
	for _, e := range d.channels {
		total += d.trailMap.Get(e).Field.Len()
	}
	return total
}

// Perf returns the rolling performance statistics.
func (d *FrameDriver) Perf() telemetry.PerfStats {
	return d.perf.Stats()
}
