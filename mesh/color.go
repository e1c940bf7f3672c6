package mesh

import (
	"image/color"

	"github.com/crazy3lf/colorconv"
)

// Height color ramp: hue runs from 0.6 (blue) at z=-1 toward 0.2 at z=+1.
const (
	rampHueStart  = 0.6
	rampHueSpan   = 0.4
	rampSaturate  = 0.8
	rampLightness = 0.5
)

// HeightColor maps a surface height to the cold-to-warm ramp.
// Heights outside [-1, 1] saturate at the ends of the ramp.
func HeightColor(z float64) color.RGBA {
	t := (z + 1) / 2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	hue := rampHueStart - t*rampHueSpan

	r, g, b, err := colorconv.HSLToRGB(hue*360, rampSaturate, rampLightness)
	if err != nil {
		return color.RGBA{A: 255}
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
