package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tracer/config"
	"github.com/pthm-cable/tracer/game"
	"github.com/pthm-cable/tracer/renderer"
	"github.com/pthm-cable/tracer/scalar"
	"github.com/pthm-cable/tracer/ui"
)

const controlsLegend = "Drag: orbit | Wheel: zoom | Tab: view | [ ]: function | - =: resolution | G: arrows | R: reset camera | H: panel | P: perf"

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	viewName := flag.String("view", "trails", "Initial view: trails or surface")
	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	view, err := game.ParseView(*viewName)
	if err != nil {
		slog.Error("invalid view", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	opts := game.Options{
		Seed:      rngSeed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
		View:      view,
	}

	if *headless {
		runHeadless(cfg, opts, *maxTicks)
		return
	}
	runWindow(cfg, opts, *maxTicks)
}

// runHeadless ticks the simulation at the configured screen size without raylib.
func runHeadless(cfg *config.Config, opts game.Options, maxTicks int) {
	d, err := game.NewFrameDriver(cfg, opts)
	if err != nil {
		slog.Error("failed to create driver", "error", err)
		os.Exit(1)
	}
	defer d.Close()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_ticks", maxTicks,
		"channels", len(cfg.Channels),
	)

	d.Resize(float64(cfg.Screen.Width), float64(cfg.Screen.Height))
	for {
		d.Tick()

		if maxTicks > 0 && int(d.Frame()) >= maxTicks {
			slog.Info("max ticks reached", "tick", d.Frame(), "particles", d.Particles())
			return
		}
	}
}

func runWindow(cfg *config.Config, opts game.Options, maxTicks int) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	d, err := game.NewFrameDriver(cfg, opts)
	if err != nil {
		slog.Error("failed to create driver", "error", err)
		return
	}
	defer d.Close()

	surface := renderer.NewSurface()
	defer surface.Close()
	hud := ui.NewHUD()
	panel := ui.NewControlsPanel(cfg, 260)
	perfPanel := ui.NewPerfPanel(10, 80)
	input := ui.NewInput()
	showPerf := false

	for !rl.WindowShouldClose() {
		input.Poll(d, panel.Bounds())
		if rl.IsKeyPressed(rl.KeyH) {
			panel.Toggle()
		}
		if rl.IsKeyPressed(rl.KeyP) {
			showPerf = !showPerf
		}

		d.Tick()

		rl.BeginDrawing()
		if !d.Ready() {
			rl.ClearBackground(cfg.Derived.TrailsBackground)
		}
		d.Draw(surface)

		f, _ := scalar.At(d.FunctionIndex())
		hud.Draw(ui.HUDData{
			Title:      cfg.Screen.Title,
			View:       d.View().String(),
			Frame:      d.Frame(),
			FPS:        rl.GetFPS(),
			Particles:  d.Particles(),
			Function:   f.Name,
			Resolution: d.Resolution(),
			Arrows:     len(d.Arrows()),
		})
		if showPerf {
			perfPanel.Draw(d.Perf())
		}
		panel.Draw(d, int32(rl.GetScreenWidth()))
		hud.DrawControls(int32(rl.GetScreenHeight()), controlsLegend)
		rl.EndDrawing()

		if maxTicks > 0 && int(d.Frame()) >= maxTicks {
			break
		}
	}
}
