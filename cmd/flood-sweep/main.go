package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"sort"
	"time"

	"github.com/gosuri/uiprogress"
	"golang.org/x/sync/errgroup"

	"flooding-model/internal/model"
)

type paramSet struct {
	flowRate         float64
	infiltrationRate float64
	intensity        model.RainIntensity
}

func (p paramSet) String() string {
	return fmt.Sprintf("flow=%.2f infiltration=%.2f rain=%s", p.flowRate, p.infiltrationRate, p.intensity)
}

type scenarioResult struct {
	params paramSet
	model.FloodResult
}

func main() {
	preset := flag.String("preset", "synthetic", "landscape preset to sweep")
	frames := flag.Int("frames", 2000, "maximum frames to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of scenarios run concurrently")
	top := flag.Int("top", 5, "number of results to print")
	flag.Parse()

	baseCfg, err := model.PresetConfig(*preset, nil)
	if err != nil {
		log.Fatal(err)
	}

	flowOptions := []float64{0.5, 1.0, 1.5, 2.5}
	infiltrationOptions := []float64{0.25, 0.5, 1.0, 2.0}
	intensityOptions := []model.RainIntensity{model.RainLight, model.RainMedium, model.RainHeavy, model.RainExtreme}

	var sets []paramSet
	for _, flow := range flowOptions {
		for _, infiltration := range infiltrationOptions {
			for _, intensity := range intensityOptions {
				sets = append(sets, paramSet{
					flowRate:         flow,
					infiltrationRate: infiltration,
					intensity:        intensity,
				})
			}
		}
	}

	fmt.Printf("Sweeping %d parameter sets on %q (%d workers, %d frames)\n", len(sets), *preset, *workers, *frames)

	uiprogress.Start()
	bar := uiprogress.AddBar(len(sets)).AppendCompleted().PrependElapsed()

	start := time.Now()
	results := make([]scenarioResult, len(sets))
	var g errgroup.Group
	g.SetLimit(*workers)
	for i, params := range sets {
		g.Go(func() error {
			res, err := runScenario(baseCfg, params, *frames)
			if err != nil {
				return fmt.Errorf("%s: %w", params, err)
			}
			results[i] = res
			bar.Incr()
			return nil
		})
	}
	err = g.Wait()
	uiprogress.Stop()
	if err != nil {
		log.Fatal(err)
	}
	elapsed := time.Since(start)

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].PeakFloodedCells > results[j].PeakFloodedCells
	})

	fmt.Printf("\nTop %d results by flooded area (elapsed %s):\n", *top, elapsed.Round(time.Millisecond))
	for i := 0; i < len(results) && i < *top; i++ {
		printResult(i+1, results[i])
	}

	unsettled := 0
	for _, res := range results {
		if !res.Settled {
			unsettled++
		}
	}
	if unsettled > 0 {
		fmt.Printf("\n%d of %d scenarios did not settle within %d frames\n", unsettled, len(results), *frames)
	}
}

func runScenario(base model.Config, params paramSet, frames int) (scenarioResult, error) {
	cfg := base
	cfg.Engine.FlowRate = params.flowRate
	cfg.Engine.InfiltrationRate = params.infiltrationRate
	res, err := model.RunScenario(cfg, params.intensity, frames)
	if err != nil {
		return scenarioResult{}, err
	}
	return scenarioResult{params: params, FloodResult: res}, nil
}

func printResult(rank int, res scenarioResult) {
	fmt.Printf("%2d) flooded=%d@%d depth=%.2f stored=%.1f floodStart=%d frames=%d settled=%t drained=%.1f infiltrated=%.1f params=%s\n",
		rank, res.PeakFloodedCells, res.PeakFloodedFrame, res.PeakDepth, res.PeakStoredWater,
		res.FloodStartFrame, res.FramesSimulated, res.Settled, res.Budget.Drained, res.Budget.Infiltrated, res.params)
}
