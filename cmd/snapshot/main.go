// Snapshot tool - advances the scene off screen and writes one frame to PNG.
//
// Usage: go run ./cmd/snapshot -view surface -ticks 300 -out frame.png
package main

import (
	"flag"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tracer/config"
	"github.com/pthm-cable/tracer/game"
	"github.com/pthm-cable/tracer/renderer"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "snapshot.png", "Output PNG path")
	viewName := flag.String("view", "trails", "View to render: trails or surface")
	ticks := flag.Int("ticks", 300, "Frames to simulate before capturing")
	seed := flag.Int64("seed", 1, "RNG seed")
	width := flag.Int("width", 0, "Render width (0 = config screen width)")
	height := flag.Int("height", 0, "Render height (0 = config screen height)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	view, err := game.ParseView(*viewName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	w, h := *width, *height
	if w == 0 {
		w = cfg.Screen.Width
	}
	if h == 0 {
		h = cfg.Screen.Height
	}

	d, err := game.NewFrameDriver(cfg, game.Options{Seed: *seed, View: view})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create driver: %v\n", err)
		os.Exit(1)
	}
	defer d.Close()

	d.Resize(float64(w), float64(h))
	for range *ticks {
		d.Tick()
	}

	// Hidden window for the GL context
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(w), int32(h), "Snapshot")
	defer rl.CloseWindow()

	target := rl.LoadRenderTexture(int32(w), int32(h))
	defer rl.UnloadRenderTexture(target)

	surface := renderer.NewSurface()
	defer surface.Close()

	rl.BeginTextureMode(target)
	d.Draw(surface)
	rl.EndTextureMode()

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)

	success := rl.ExportImage(*img, *outPath)
	rl.UnloadImage(img)

	if success {
		fmt.Printf("Frame %d (%s) rendered to: %s (%dx%d, %d particles)\n", d.Frame(), view, *outPath, w, h, d.Particles())
	} else {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}
}
