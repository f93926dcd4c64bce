package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"

	"flooding-model/internal/app"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger := log.New(os.Stderr, "flood: ", log.LstdFlags)

	sim, err := app.Setup(cfg, logger)
	if err != nil {
		log.Fatalf("setup: %v", err)
	}
	size := sim.Size()
	logger.Printf("%s %dx%d cells (%.0fm), rain=%s for %.0f days",
		sim.Name(), size.W, size.H, sim.Config().Engine.CellSize, sim.RainIntensity(), sim.RainDurationInDays())
	for _, group := range sim.Parameters().Groups {
		for _, p := range group.Params {
			logger.Printf("  %-8s %-28s %s", group.Name, p.Label, p.Value)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := app.New(sim, cfg, logger)
	sum, err := runner.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("run: %v", err)
	}
	logger.Printf("frames=%d hours=%d settled=%t stage=%.2f", sum.Frames, sum.Hours, sum.Settled, sum.RiverStage)
	logger.Printf("flooded now=%d peak=%d stored=%.3f", sum.FloodedCells, sum.PeakFlooded, sum.StoredWater)
	logger.Printf("budget river=%.3f infiltrated=%.3f drained=%.3f net=%.3f",
		sum.Budget.River, sum.Budget.Infiltrated, sum.Budget.Drained, sum.Budget.Net())
}
