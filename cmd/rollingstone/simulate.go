package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rolling-stone/internal/config"
	"github.com/vovakirdan/rolling-stone/internal/runner"
)

var (
	flagSimDuration float64
	flagSimSpeed    float64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Drive the track generator headless",
	Long: `Move a virtual player at constant speed along a generated track, check the
generator invariants every frame and print pool statistics.

Exits non-zero if any invariant broke.

Examples:
  rollingstone simulate
  rollingstone simulate --duration 600 --speed 30 --seed 7`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().Float64Var(&flagSimDuration, "duration", 120, "Simulated seconds")
	simulateCmd.Flags().Float64Var(&flagSimSpeed, "speed", 0, "Player speed in units per second (0 = config max forward speed)")
}

func runSimulate(_ *cobra.Command, _ []string) {
	logger := newLogger(nil)

	cfg, preset, err := loadConfig()
	if err != nil {
		logger.Fatal("config", "err", err)
	}
	config.ApplyPreset(&cfg, preset)

	s := seed()
	rep, err := runner.Simulate(cfg, runner.SimOptions{
		Seed:     s,
		Duration: flagSimDuration,
		Speed:    flagSimSpeed,
		Logger:   logger,
	})

	fmt.Printf("Seed:              %d\n", s)
	fmt.Printf("Frames:            %d\n", rep.Frames)
	fmt.Printf("Distance:          %.1f\n", rep.Distance)
	fmt.Printf("Track state:       %s\n", rep.Track.State)
	fmt.Printf("Segments spawned:  %d\n", rep.Track.Spawned)
	fmt.Printf("Segments recycled: %d\n", rep.Track.Recycled)
	fmt.Printf("Active now/peak:   %d/%d\n", rep.Track.Active, rep.PeakActive)
	fmt.Printf("Segment pools:     %d created, %d active, %d pooled\n",
		rep.Track.Pools.Created, rep.Track.Pools.Active, rep.Track.Pools.Pooled)
	fmt.Printf("Emitters:          %d\n", rep.Emitters)
	fmt.Printf("Balls:             %d spawned, %d returned, %d skipped, %d created\n",
		rep.Hazards.Spawned, rep.Hazards.Returned, rep.Hazards.Skipped, rep.Hazards.Created)
	fmt.Printf("Invariant breaks:  %d\n", rep.Violations)

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
