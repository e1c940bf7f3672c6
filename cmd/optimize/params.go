package main

import "github.com/pthm-cable/tracer/config"

// ParamSpec defines a single tunable channel parameter.
type ParamSpec struct {
	Name    string
	Min     float64
	Max     float64
	Default float64
}

// ParamVector holds the parameter specifications for optimization.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the tunable parameter set, seeded from ch.
func NewParamVector(ch config.ChannelConfig) *ParamVector {
	pv := &ParamVector{
		Specs: []ParamSpec{
			{Name: "accel", Min: 0.001, Max: 0.5},
			{Name: "friction", Min: 0.5, Max: 0.99},
			{Name: "step_mean", Min: 0.5, Max: 20},
		},
	}
	for i, v := range pv.Clamp(pv.ExtractFromChannel(ch)) {
		pv.Specs[i].Default = v
	}
	return pv
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToChannel writes clamped parameter values into ch.
// Order must match Specs order.
func (pv *ParamVector) ApplyToChannel(ch *config.ChannelConfig, values []float64) {
	clamped := pv.Clamp(values)
	ch.Accel = clamped[0]
	ch.Friction = clamped[1]
	ch.Walker.StepMean = clamped[2]
}

// ExtractFromChannel reads the current parameter values from ch.
func (pv *ParamVector) ExtractFromChannel(ch config.ChannelConfig) []float64 {
	return []float64{ch.Accel, ch.Friction, ch.Walker.StepMean}
}
