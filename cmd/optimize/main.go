// Package main provides CMA-ES tuning of a channel's chase dynamics so its
// trail settles at a requested spread around the attractor.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/tracer/config"
	"github.com/pthm-cable/tracer/walk"
)

// evalRow is one line of the optimization log.
type evalRow struct {
	Eval     int     `csv:"eval"`
	Loss     float64 `csv:"loss"`
	Spread   float64 `csv:"spread"`
	Accel    float64 `csv:"accel"`
	Friction float64 `csv:"friction"`
	StepMean float64 `csv:"step_mean"`
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	channelName := flag.String("channel", "tide", "Name of the channel to tune")
	spread := flag.Float64("spread", 60, "Target mean particle distance from the attractor, in pixels")
	frames := flag.Int("frames", 2000, "Frames simulated per evaluation")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 150, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if *spread <= 0 {
		log.Fatal("--spread must be positive")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	chIndex := -1
	for i, ch := range baseCfg.Channels {
		if ch.Name == *channelName {
			chIndex = i
		}
	}
	if chIndex < 0 {
		log.Fatalf("no channel named %q", *channelName)
	}
	base := baseCfg.Channels[chIndex]

	params := NewParamVector(base)

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	bounds := walk.Bounds{XMax: float64(baseCfg.Screen.Width), YMax: float64(baseCfg.Screen.Height)}
	evaluator := NewFitnessEvaluator(params, base, *frames, evalSeeds, bounds, *spread)

	dim := params.Dim()
	initX := params.Normalize(params.DefaultVector())

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}
	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0,
	}

	var rows []evalRow
	bestLoss := 1e9
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			clamped := params.Clamp(params.Denormalize(x))
			loss := evaluator.Evaluate(clamped)

			if loss < bestLoss {
				bestLoss = loss
				bestParams = clamped
			}
			rows = append(rows, evalRow{
				Eval:     len(rows) + 1,
				Loss:     loss,
				Spread:   evaluator.LastSpread(),
				Accel:    clamped[0],
				Friction: clamped[1],
				StepMean: clamped[2],
			})

			n := len(rows)
			elapsed := time.Since(startTime)
			remaining := time.Duration(*maxEvals-n) * (elapsed / time.Duration(n))
			fmt.Printf("Eval %d/%d: loss=%.4f spread=%.1f (best=%.4f) | elapsed: %s, ETA: %s\n",
				n, *maxEvals, loss, evaluator.LastSpread(), bestLoss,
				formatDuration(elapsed), formatDuration(remaining))
			return loss
		},
	}

	fmt.Printf("Tuning channel %q toward spread %.1f px: %d parameters, population=%d, max_evals=%d\n",
		base.Name, *spread, dim, popSize, *maxEvals)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}

	fmt.Printf("\nOptimization complete after %d evaluations in %s\n", len(rows), formatDuration(time.Since(startTime)))
	if bestParams == nil {
		log.Fatal("no evaluation completed, nothing to save")
	}
	fmt.Printf("Best loss: %.4f\n", bestLoss)
	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Name, bestParams[i])
	}

	logPath := filepath.Join(*outputDir, "optimize_log.csv")
	if err := writeLog(logPath, rows); err != nil {
		log.Printf("failed to write log: %v", err)
	}

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := writeBestConfig(*configPath, configOutPath, chIndex, params, bestParams); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}

// writeBestConfig reloads the base config, applies best to channel chIndex
// and writes the result to outPath.
func writeBestConfig(configPath, outPath string, chIndex int, params *ParamVector, best []float64) error {
	if len(best) != params.Dim() {
		return fmt.Errorf("best parameters have %d values, want %d", len(best), params.Dim())
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("reloading base config: %w", err)
	}
	if chIndex < 0 || chIndex >= len(cfg.Channels) {
		return fmt.Errorf("channel index %d out of range", chIndex)
	}
	params.ApplyToChannel(&cfg.Channels[chIndex], best)
	return cfg.WriteYAML(outPath)
}

func writeLog(path string, rows []evalRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.MarshalFile(&rows, f)
}
