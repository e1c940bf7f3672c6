package walk

import "math"

// Uniform is a source of uniform draws in [0, 1). *rand.Rand satisfies it.
type Uniform interface {
	Float64() float64
}

// Gaussian draws a sample from Normal(mean, stddev) using the Box-Muller
// transform on two independent uniform draws.
func Gaussian(src Uniform, mean, stddev float64) float64 {
	// 1-u keeps the log argument in (0, 1]
	u1 := 1 - src.Float64()
	u2 := src.Float64()
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return mean + stddev*z
}
