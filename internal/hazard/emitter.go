package hazard

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/rolling-stone/internal/core"
	"github.com/vovakirdan/rolling-stone/internal/pool"
)

// Config tunes an emitter. Positions are local to the emitter origin.
type Config struct {
	PoolSize int     // fixed number of balls; the pool never grows
	Interval float64 // seconds between emissions

	LateralMin, LateralMax float64 // X velocity change on launch
	ForwardMin, ForwardMax float64 // Z velocity change on launch
	Torque                 float64 // angular velocity magnitude on launch
	Jitter                 float64 // random X/Z offset around the anchor

	Radius      float64
	Gravity     float64
	Restitution float64

	// Floor is the slab balls roll on. A zero box means none.
	Floor core.Box
	// DespawnY adds a kill plane at this local height.
	DespawnY float64

	// SpawnOnEnable emits immediately on the first tick after Enable.
	SpawnOnEnable bool
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		PoolSize:      10,
		Interval:      1.0,
		LateralMin:    -1.5,
		LateralMax:    1.5,
		ForwardMin:    -0.5,
		ForwardMax:    0.5,
		Torque:        2,
		Jitter:        0.25,
		Radius:        0.5,
		Gravity:       9.81,
		Restitution:   0.3,
		DespawnY:      -10,
		SpawnOnEnable: true,
	}
}

// Stats summarizes emitter activity.
type Stats struct {
	pool.Stats
	Spawned  uint64
	Skipped  uint64 // emissions dropped because every ball was in flight
	Returned uint64
}

// Emitter launches balls from a fixed-size pool at a fixed interval.
type Emitter struct {
	cfg        Config
	anchors    []mgl64.Vec3
	boundaries []Boundary
	origin     mgl64.Vec3
	balls      *pool.Pool[*Ball]
	rng        *rand.Rand
	logger     *log.Logger
	err        error

	enabled bool
	paused  bool
	acc     float64

	spawned  uint64
	skipped  uint64
	returned uint64
}

// New creates an emitter. Without anchors the emitter origin is used, which
// is logged once. A pool size or interval that is not positive disables the
// emitter.
func New(cfg Config, anchors []mgl64.Vec3, rng *rand.Rand, logger *log.Logger) *Emitter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	e := &Emitter{
		cfg:    cfg,
		rng:    rng,
		logger: logger.With("component", "hazard"),
	}

	if cfg.PoolSize <= 0 || cfg.Interval <= 0 {
		e.err = fmt.Errorf("hazard: pool size %d, interval %g: %w", cfg.PoolSize, cfg.Interval, core.ErrConfigurationMissing)
		e.logger.Error("emitter disabled", "err", e.err)
		return e
	}

	if len(anchors) == 0 {
		e.logger.Warn("no spawn anchors, using emitter origin")
		anchors = []mgl64.Vec3{{}}
	}
	e.anchors = anchors
	e.boundaries = []Boundary{KillPlane(cfg.DespawnY)}

	nextID := 0
	e.balls = pool.New(func() *Ball {
		nextID++
		return &Ball{ID: nextID, Radius: cfg.Radius, Rotation: mgl64.QuatIdent()}
	}, pool.Options{Policy: pool.PolicyRefuse, Max: cfg.PoolSize})
	if err := e.balls.Prewarm(cfg.PoolSize); err != nil {
		e.err = fmt.Errorf("hazard: prewarm: %w", err)
		e.logger.Error("emitter disabled", "err", e.err)
	}
	return e
}

// Err returns why the emitter is disabled, or nil.
func (e *Emitter) Err() error { return e.err }

// AddBoundary registers another trigger volume.
func (e *Emitter) AddBoundary(b Boundary) {
	e.boundaries = append(e.boundaries, b)
}

// SetOrigin moves the emitter. Balls in flight are not moved.
func (e *Emitter) SetOrigin(o mgl64.Vec3) { e.origin = o }

// SetInterval changes the cadence. The current phase is kept; a shorter
// interval takes effect on the next tick.
func (e *Emitter) SetInterval(s float64) {
	if s > 0 {
		e.cfg.Interval = s
	}
}

// Interval returns the seconds between emissions.
func (e *Emitter) Interval() float64 { return e.cfg.Interval }

// Origin returns the emitter position.
func (e *Emitter) Origin() mgl64.Vec3 { return e.origin }

// Enabled reports whether the emitter is running (paused or not).
func (e *Emitter) Enabled() bool { return e.enabled }

// Enable starts the cadence.
func (e *Emitter) Enable() {
	if e.err != nil || e.enabled {
		return
	}
	e.enabled = true
	e.paused = false
	e.acc = 0
	if e.cfg.SpawnOnEnable {
		e.acc = e.cfg.Interval
	}
}

// Disable stops the cadence and returns every ball in flight.
func (e *Emitter) Disable() {
	if e.err != nil {
		return
	}
	e.enabled = false
	e.paused = false
	e.acc = 0
	for i := 0; i < e.balls.Len(); i++ {
		if b, st := e.balls.At(i); st == pool.Active {
			_ = e.balls.Release(b)
			e.returned++
		}
	}
}

// Pause freezes the cadence without losing its phase.
func (e *Emitter) Pause() { e.paused = true }

// Resume continues a paused cadence.
func (e *Emitter) Resume() { e.paused = false }

// Tick advances the cadence by a frame delta and emits at most once.
// Leftover time beyond one interval is dropped so a long frame or a resume
// never produces a burst.
func (e *Emitter) Tick(dt float64) {
	if e.err != nil || !e.enabled || e.paused {
		return
	}
	e.acc += dt
	if e.acc < e.cfg.Interval {
		return
	}
	e.acc -= e.cfg.Interval
	if e.acc >= e.cfg.Interval {
		e.acc = math.Mod(e.acc, e.cfg.Interval)
	}
	e.emit()
}

// FixedTick integrates balls in flight and applies boundaries.
func (e *Emitter) FixedTick(dt float64) {
	if e.err != nil || e.paused {
		return
	}
	for i := 0; i < e.balls.Len(); i++ {
		b, st := e.balls.At(i)
		if st != pool.Active {
			continue
		}
		b.integrate(dt, e.cfg.Gravity)
		e.collideFloor(b)
		for _, bound := range e.boundaries {
			if bound.Triggers(e.origin, b.Position) {
				_ = e.balls.Release(b)
				e.returned++
				break
			}
		}
	}
}

func (e *Emitter) collideFloor(b *Ball) {
	f := e.cfg.Floor
	if f.Min == f.Max {
		return
	}
	local := b.Position.Sub(e.origin)
	if local.X() < f.Min.X() || local.X() > f.Max.X() || local.Z() < f.Min.Z() || local.Z() > f.Max.Z() {
		return
	}
	top := f.Max.Y() + b.Radius
	if local.Y() < top && local.Y() > f.Min.Y() && b.Velocity.Y() < 0 {
		b.Position[1] = e.origin.Y() + top
		b.Velocity[1] = -b.Velocity.Y() * e.cfg.Restitution
	}
}

// emit launches one ball, or skips when every ball is in flight.
func (e *Emitter) emit() *Ball {
	b, err := e.balls.Acquire()
	if err != nil {
		if !errors.Is(err, pool.ErrUnderrun) {
			e.logger.Error("acquire failed", "err", err)
		}
		e.skipped++
		return nil
	}

	pos := e.origin.Add(e.anchors[e.rng.Intn(len(e.anchors))])
	if j := e.cfg.Jitter; j > 0 {
		pos[0] += uniform(e.rng, -j, j)
		pos[2] += uniform(e.rng, -j, j)
	}

	b.reset(pos)
	b.Rotation = randomRotation(e.rng)
	b.Velocity = mgl64.Vec3{
		uniform(e.rng, e.cfg.LateralMin, e.cfg.LateralMax),
		0,
		uniform(e.rng, e.cfg.ForwardMin, e.cfg.ForwardMax),
	}
	if e.cfg.Torque > 0 {
		b.AngularVelocity = onUnitSphere(e.rng).Mul(e.cfg.Torque)
	}

	e.spawned++
	return b
}

// ReturnToPool sends a ball back by ID. Returning a ball that is already
// pooled reports pool.ErrDoubleRelease and changes nothing; an unknown ID
// reports pool.ErrForeign.
func (e *Emitter) ReturnToPool(id int) error {
	if e.err != nil {
		return e.err
	}
	if id < 1 || id > e.balls.Len() {
		return pool.ErrForeign
	}
	b, _ := e.balls.At(id - 1)
	if err := e.balls.Release(b); err != nil {
		return err
	}
	e.returned++
	return nil
}

// InFlight appends the active balls to dst.
func (e *Emitter) InFlight(dst []*Ball) []*Ball {
	if e.err != nil {
		return dst
	}
	for i := 0; i < e.balls.Len(); i++ {
		if b, st := e.balls.At(i); st == pool.Active {
			dst = append(dst, b)
		}
	}
	return dst
}

// Stats returns a snapshot of emitter activity.
func (e *Emitter) Stats() Stats {
	s := Stats{Spawned: e.spawned, Skipped: e.skipped, Returned: e.returned}
	if e.balls != nil {
		s.Stats = e.balls.Stats()
	}
	return s
}
