// Surface preview tool - top-down heat map of the scalar catalog with sliders.
//
// Usage: go run ./cmd/surfacepreview
package main

import (
	"fmt"
	"image/color"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tracer/mesh"
	"github.com/pthm-cable/tracer/scalar"
)

const (
	windowWidth  = 1000
	windowHeight = 640
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
	gridSize     = 256
)

// PreviewParams holds the sampling parameters.
type PreviewParams struct {
	Function   int
	Size       float32
	Resolution int
	Arrows     bool
}

func defaultParams() PreviewParams {
	return PreviewParams{Function: 0, Size: 6, Resolution: 50, Arrows: true}
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Surface Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultParams()

	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	pixels := make([]color.RGBA, gridSize*gridSize)
	var arrows []mesh.Arrow
	var lo, hi float64
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			f, _ := scalar.At(params.Function)
			lo, hi = fillHeatmap(pixels, f, float64(params.Size))
			rl.UpdateTexture(texture, pixels)
			arrows = mesh.Gradients(f, float64(params.Size), params.Resolution)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: gridSize, Height: gridSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)
		if params.Arrows {
			drawArrows(arrows, float64(params.Size))
		}

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Min: %.3f  Max: %.3f", lo, hi), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Arrows: %d  Stride: %d", len(arrows), mesh.GradientStride(params.Resolution)), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Surface Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		rl.DrawText("Function", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		for i, name := range scalar.Names() {
			label := name
			if i == params.Function {
				label = "> " + name
			}
			if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 20), Height: 24}, label) && i != params.Function {
				params.Function = i
				needsRegen = true
			}
			panelY += 28
		}
		panelY += 10

		rl.DrawText("Size (domain half-width)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSize := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"1", "12",
			params.Size, 1, 12,
		)
		rl.DrawText(fmt.Sprintf("%.1f", params.Size), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newSize != params.Size {
			params.Size = newSize
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Resolution (arrow spacing)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newRes := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"20", "100",
			float32(params.Resolution), 20, 100,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Resolution), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int(newRes) != params.Resolution {
			params.Resolution = int(newRes)
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(params.Arrows, "Hide Arrows", "Show Arrows")) {
			params.Arrows = !params.Arrows
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			needsRegen = true
		}
		panelY += 55

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range yamlLines(params) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(strings.Join(yamlLines(params), "\n"))
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

func yamlLines(p PreviewParams) []string {
	f, _ := scalar.At(p.Function)
	return []string{
		"surface:",
		fmt.Sprintf("  size: %.1f", p.Size),
		fmt.Sprintf("  resolution: %d", p.Resolution),
		fmt.Sprintf("  function: %q", f.Name),
		fmt.Sprintf("  show_gradients: %t", p.Arrows),
	}
}

// fillHeatmap samples f over [-size, size]² into pixels using the surface
// height ramp and returns the sampled value range. Row 0 is +y.
func fillHeatmap(pixels []color.RGBA, f scalar.Field, size float64) (lo, hi float64) {
	lo, hi = f.At(-size, size), f.At(-size, size)
	for py := 0; py < gridSize; py++ {
		y := mesh.GridPoint(gridSize-1-py, gridSize-1, size)
		for px := 0; px < gridSize; px++ {
			x := mesh.GridPoint(px, gridSize-1, size)
			z := f.At(x, y)
			lo, hi = min(lo, z), max(hi, z)
			pixels[py*gridSize+px] = mesh.HeightColor(z)
		}
	}
	return lo, hi
}

// drawArrows projects gradient arrows onto the preview square.
func drawArrows(arrows []mesh.Arrow, size float64) {
	scale := float64(previewSize) / (2 * size)
	toScreen := func(x, y float64) rl.Vector2 {
		return rl.NewVector2(float32(10+(x+size)*scale), float32(10+(size-y)*scale))
	}
	for _, a := range arrows {
		// Arrow Z holds the math y coordinate.
		tip := a.Tip()
		from := toScreen(a.Origin.X, a.Origin.Z)
		to := toScreen(tip.X, tip.Z)
		rl.DrawLineEx(from, to, 2, rl.Color{R: 0xff, G: 0x33, B: 0x66, A: 255})
		rl.DrawCircleV(to, 2.5, rl.Color{R: 0xff, G: 0x33, B: 0x66, A: 255})
	}
}
