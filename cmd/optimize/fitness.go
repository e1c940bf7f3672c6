package main

import (
	"image/color"
	"math"
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/tracer/config"
	"github.com/pthm-cable/tracer/game"
	"github.com/pthm-cable/tracer/trail"
	"github.com/pthm-cable/tracer/vec"
	"github.com/pthm-cable/tracer/walk"
)

// divergedLoss is returned when a trail blows up or never forms.
const divergedLoss = 1e6

// FitnessEvaluator runs a single channel headless and scores how close its
// trail spread is to the requested one.
type FitnessEvaluator struct {
	params       *ParamVector
	base         config.ChannelConfig
	frames       int
	warmup       int
	seeds        []int64
	bounds       walk.Bounds
	wantSpread   float64
	jitterWeight float64

	mu         sync.Mutex
	lastSpread float64 // mean spread from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, base config.ChannelConfig, frames int, seeds []int64, bounds walk.Bounds, wantSpread float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:       params,
		base:         base,
		frames:       frames,
		warmup:       min(frames/4, 200),
		seeds:        seeds,
		bounds:       bounds,
		wantSpread:   wantSpread,
		jitterWeight: 0.25,
	}
}

// LastSpread returns the mean spread from the most recent evaluation.
func (fe *FitnessEvaluator) LastSpread() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSpread
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	loss   float64
	spread float64
}

// Evaluate computes the loss for raw parameter values (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	ch := fe.base
	fe.params.ApplyToChannel(&ch, x)

	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.score(fe.runChannel(ch, s))
		}(i, seed)
	}
	wg.Wait()

	var totalLoss, totalSpread float64
	for _, r := range results {
		totalLoss += r.loss
		totalSpread += r.spread
	}
	n := float64(len(fe.seeds))

	fe.mu.Lock()
	fe.lastSpread = totalSpread / n
	fe.mu.Unlock()

	return totalLoss / n
}

// runChannel chases a walker with one trail and records the mean particle
// distance from the target every frame after warmup.
func (fe *FitnessEvaluator) runChannel(ch config.ChannelConfig, seed int64) []float64 {
	tp, wp, err := game.ChannelParams(ch)
	if err != nil {
		return nil
	}
	rng := rand.New(rand.NewSource(seed))
	field := trail.NewField(color.RGBA{}, tp)
	w := walk.New(wp, fe.bounds, rng)

	spreads := make([]float64, 0, fe.frames-fe.warmup)
	for f := 0; f < fe.frames; f++ {
		target := w.Step(rng)
		field.Update(target)
		if f < fe.warmup {
			continue
		}
		spreads = append(spreads, meanDistance(field.Particles, target))
	}
	return spreads
}

// score turns a spread series into a loss: squared relative error of the
// mean plus a penalty on its coefficient of variation.
func (fe *FitnessEvaluator) score(spreads []float64) seedResult {
	if len(spreads) == 0 {
		return seedResult{loss: divergedLoss}
	}
	mean, std := stat.MeanStdDev(spreads, nil)
	if math.IsNaN(mean) || math.IsInf(mean, 0) || mean == 0 {
		return seedResult{loss: divergedLoss}
	}

	rel := (mean - fe.wantSpread) / fe.wantSpread
	cv := std / mean
	return seedResult{
		loss:   rel*rel + fe.jitterWeight*cv*cv,
		spread: mean,
	}
}

func meanDistance(particles []trail.Particle, target vec.Vec2) float64 {
	if len(particles) == 0 {
		return 0
	}
	var sum float64
	for i := range particles {
		sum += particles[i].Pos.Dist(target)
	}
	return sum / float64(len(particles))
}
