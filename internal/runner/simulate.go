package runner

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rolling-stone/internal/config"
	"github.com/vovakirdan/rolling-stone/internal/core"
	"github.com/vovakirdan/rolling-stone/internal/hazard"
	"github.com/vovakirdan/rolling-stone/internal/registry"
	"github.com/vovakirdan/rolling-stone/internal/scripting"
	"github.com/vovakirdan/rolling-stone/internal/track"
)

// SimOptions drive a headless run.
type SimOptions struct {
	Seed     int64
	Duration float64 // simulated seconds
	Speed    float64 // units per second; 0 uses the player's max forward speed
	FrameDT  float64 // seconds per frame; 0 uses the fixed step
	Logger   *log.Logger
}

// SimReport is what a headless run observed.
type SimReport struct {
	Frames       int
	Distance     float64
	Track        track.Stats
	PeakActive   int
	Hazards      hazard.Stats // summed over every emitter seen
	Emitters     int
	Violations   int   // frames on which the generator invariants failed
	FirstProblem error // first invariant failure, nil when none
}

type emitterSource interface {
	Emitter() *hazard.Emitter
}

// Simulate moves a virtual player at constant speed along a freshly
// generated track and checks the generator invariants after every frame.
// Difficulty is held at the configured base values.
func Simulate(cfg config.RunnerConfig, opts SimOptions) (SimReport, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.With("component", "simulate")

	speed := opts.Speed
	if speed <= 0 {
		speed = cfg.Player.MaxForwardSpeed
	}
	dt := opts.FrameDT
	if dt <= 0 {
		dt = cfg.Game.FixedStep
	}
	if dt <= 0 || opts.Duration <= 0 {
		return SimReport{}, errors.New("runner: simulate: need a positive duration and frame step")
	}

	engine, err := scripting.NewEngine(logger)
	if err != nil {
		return SimReport{}, fmt.Errorf("runner: simulate: %w", err)
	}
	defer engine.Close()
	if err := engine.LoadDir(cfg.Scripts.Dir); err != nil {
		logger.Warn("user scripts not loaded", "dir", cfg.Scripts.Dir, "err", err)
	}

	env := &registry.Env{
		Config:  cfg,
		Rng:     rand.New(rand.NewSource(opts.Seed)),
		Logger:  logger,
		Scripts: engine,
		Tuning:  registry.FixedTuning{},
	}
	prefabs, err := registry.Catalog(env, cfg.Segments)
	if err != nil {
		return SimReport{}, fmt.Errorf("runner: simulate: %w", err)
	}

	z := 1.0
	gen := track.New(trackConfig(cfg.Track), prefabs, track.ProgressFunc(func() float64 { return z }), opts.Seed, logger)
	defer gen.Teardown()

	loop := core.NewLoop(cfg.Game.FixedStep, cfg.Game.MaxSubSteps)
	loop.Add(track.NewDriver(gen))
	if err := loop.Init(); err != nil {
		return SimReport{}, fmt.Errorf("runner: simulate: %w", err)
	}

	var rep SimReport
	seen := make(map[*hazard.Emitter]bool)
	for t := 0.0; t < opts.Duration; t += dt {
		z += speed * dt
		loop.Frame(dt)
		rep.Frames++

		if err := gen.Verify(z); err != nil {
			rep.Violations++
			if rep.FirstProblem == nil {
				rep.FirstProblem = fmt.Errorf("frame %d at z=%.1f: %w", rep.Frames, z, err)
			}
		}
		rep.PeakActive = max(rep.PeakActive, gen.Len())
		for i := 0; i < gen.Len(); i++ {
			for _, a := range gen.At(i).Attachments() {
				if src, ok := a.(emitterSource); ok {
					seen[src.Emitter()] = true
				}
			}
		}
	}

	rep.Distance = z - 1
	rep.Track = gen.Stats()
	rep.Emitters = len(seen)
	for e := range seen {
		s := e.Stats()
		rep.Hazards.Spawned += s.Spawned
		rep.Hazards.Skipped += s.Skipped
		rep.Hazards.Returned += s.Returned
		rep.Hazards.Created += s.Created
		rep.Hazards.Active += s.Active
		rep.Hazards.Pooled += s.Pooled
	}

	if rep.FirstProblem != nil {
		return rep, errors.Join(fmt.Errorf("runner: simulate: %d frames broke invariants", rep.Violations), rep.FirstProblem)
	}
	return rep, nil
}
