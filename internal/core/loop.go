package core

import "errors"

// Component is the lifecycle every simulated part of the runner follows.
// The loop calls the methods in a fixed order: Init once, OnActivate when the
// owning context (re)starts, FixedTick on the physics clock and Tick on the
// frame clock.
type Component interface {
	Init() error
	OnActivate()
	FixedTick(dt float64)
	Tick(dt float64)
}

// NopComponent implements Component with empty methods so concrete
// components only override what they use.
type NopComponent struct{}

func (NopComponent) Init() error       { return nil }
func (NopComponent) OnActivate()       {}
func (NopComponent) FixedTick(float64) {}
func (NopComponent) Tick(float64)      {}

// Loop drives components with two clocks: a fixed-interval physics step fed
// from an accumulator, and the variable frame delta.
type Loop struct {
	step       float64
	maxSteps   int
	acc        float64
	components []Component

	Frames     uint64
	FixedSteps uint64
}

// NewLoop creates a loop with the given physics step (seconds) and a cap on
// physics steps per frame, which bounds catch-up after a stall.
func NewLoop(step float64, maxSteps int) *Loop {
	if step <= 0 {
		step = 1.0 / 50
	}
	if maxSteps <= 0 {
		maxSteps = 5
	}
	return &Loop{step: step, maxSteps: maxSteps}
}

// Add appends a component. Components run in insertion order.
func (l *Loop) Add(c Component) {
	l.components = append(l.components, c)
}

// Step returns the fixed physics interval in seconds.
func (l *Loop) Step() float64 {
	return l.step
}

// Init initializes every component and activates it. A failing component
// does not stop the others; all errors are joined.
func (l *Loop) Init() error {
	var errs []error
	for _, c := range l.components {
		if err := c.Init(); err != nil {
			errs = append(errs, err)
		}
	}
	l.Activate()
	return errors.Join(errs...)
}

// Activate calls OnActivate on every component and clears the accumulator.
func (l *Loop) Activate() {
	l.acc = 0
	for _, c := range l.components {
		c.OnActivate()
	}
}

// Frame advances the loop by a frame delta. It runs as many fixed steps as
// the accumulator holds (at most maxSteps, the rest is dropped), then one
// frame tick. Returns the number of fixed steps taken.
func (l *Loop) Frame(dt float64) int {
	if dt < 0 {
		dt = 0
	}
	l.acc += dt

	steps := 0
	for l.acc >= l.step && steps < l.maxSteps {
		for _, c := range l.components {
			c.FixedTick(l.step)
		}
		l.acc -= l.step
		steps++
	}
	if l.acc >= l.step {
		l.acc = 0
	}
	l.FixedSteps += uint64(steps)

	for _, c := range l.components {
		c.Tick(dt)
	}
	l.Frames++
	return steps
}

// Alpha returns how far the accumulator is into the next physics step,
// in [0, 1), for render interpolation.
func (l *Loop) Alpha() float64 {
	return l.acc / l.step
}
