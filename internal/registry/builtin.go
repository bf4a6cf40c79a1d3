package registry

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/rolling-stone/internal/chunk"
	"github.com/vovakirdan/rolling-stone/internal/config"
	"github.com/vovakirdan/rolling-stone/internal/core"
	"github.com/vovakirdan/rolling-stone/internal/hazard"
	"github.com/vovakirdan/rolling-stone/internal/obstacle"
	"github.com/vovakirdan/rolling-stone/internal/track"
)

func init() {
	Register("plain", "Straight", plainKind)
	Register("side_to_side", "Side to side sweepers", sideToSideKind)
	Register("crusher", "Crushers", crusherKind)
	Register("rotator", "Spinning bar", rotatorKind)
	Register("falling_balls", "Falling balls", fallingBallsKind)
	Register("chunk", "Random obstacle field", chunkKind)
	Register("scripted", "Lua scripted mover", scriptedKind)
}

func plainKind(*Env, config.SegmentSpec) (func(*track.Segment), error) {
	return nil, nil
}

// spread returns count evenly spaced Z positions inside length.
func spread(count int, length float64) []float64 {
	if count < 1 {
		count = 1
	}
	zs := make([]float64, count)
	for i := range zs {
		zs[i] = length * float64(i+1) / float64(count+1)
	}
	return zs
}

func sideToSideKind(env *Env, spec config.SegmentSpec) (func(*track.Segment), error) {
	o := env.Config.Obstacles
	amp := spec.Param("amplitude", o.Amplitude)
	freq := spec.Param("frequency", o.Frequency)
	size := mgl64.Vec3{spec.Param("size_x", 2), spec.Param("size_y", 1.5), spec.Param("size_z", 1)}
	zs := spread(int(spec.Param("count", 2)), spec.Length)

	return func(seg *track.Segment) {
		for _, z := range zs {
			rest := core.BoxAround(mgl64.Vec3{0, size.Y() / 2, z}, size)
			seg.Attach(obstacle.New(spec.Name, rest, obstacle.SideToSide(amp, freq), env.Rng))
		}
	}, nil
}

func crusherKind(env *Env, spec config.SegmentSpec) (func(*track.Segment), error) {
	o := env.Config.Obstacles
	amp := spec.Param("amplitude", o.CrusherAmplitude)
	freq := spec.Param("frequency", o.CrusherFrequency)
	size := mgl64.Vec3{spec.Param("size_x", 3), 2, 2}
	height := spec.Param("height", amp+1)
	zs := spread(int(spec.Param("count", 1)), spec.Length)

	return func(seg *track.Segment) {
		for _, z := range zs {
			rest := core.BoxAround(mgl64.Vec3{0, height, z}, size)
			seg.Attach(obstacle.New(spec.Name, rest, obstacle.Crusher(amp, freq), env.Rng))
		}
	}, nil
}

func rotatorKind(env *Env, spec config.SegmentSpec) (func(*track.Segment), error) {
	speed := spec.Param("speed", env.Config.Obstacles.RotatorSpeed)
	width := spec.Width
	if width <= 0 {
		width = env.Config.Track.Width
	}
	length := spec.Param("bar_length", width*0.75)

	return func(seg *track.Segment) {
		rest := core.BoxAround(mgl64.Vec3{0, 0.5, spec.Length / 2}, mgl64.Vec3{length, 1, 1})
		seg.Attach(obstacle.New(spec.Name, rest, &obstacle.Rotator{Speed: speed, RandomStart: true}, env.Rng))
	}, nil
}

func scriptedKind(env *Env, spec config.SegmentSpec) (func(*track.Segment), error) {
	fn := spec.Script
	if fn == "" {
		fn = "wobble"
	}
	var mover func() obstacle.Mover
	switch {
	case env.Scripts == nil:
		env.Logger.Warn("no script engine, scripted segment is static", "segment", spec.Name)
		mover = func() obstacle.Mover { return obstacle.Static{} }
	case !env.Scripts.Has(fn):
		env.Logger.Warn("motion function not loaded, scripted segment is static", "segment", spec.Name, "func", fn)
		mover = func() obstacle.Mover { return obstacle.Static{} }
	default:
		mover = func() obstacle.Mover { return &obstacle.Scripted{Engine: env.Scripts, Func: fn} }
	}
	size := mgl64.Vec3{spec.Param("size_x", 1.5), spec.Param("size_y", 1.5), spec.Param("size_z", 1.5)}

	return func(seg *track.Segment) {
		rest := core.BoxAround(mgl64.Vec3{0, size.Y() / 2, spec.Length / 2}, size)
		seg.Attach(obstacle.New(spec.Name, rest, mover(), env.Rng))
	}, nil
}

// emitterAttachment runs a falling ball emitter while its segment is placed.
type emitterAttachment struct {
	e      *hazard.Emitter
	base   float64
	tuning Tuning
}

func (a *emitterAttachment) Activate(seg *track.Segment) {
	a.e.SetOrigin(seg.Origin)
	a.e.SetInterval(a.tuning.HazardInterval(a.base))
	a.e.Enable()
}

func (a *emitterAttachment) Deactivate()          { a.e.Disable() }
func (a *emitterAttachment) FixedTick(dt float64) { a.e.FixedTick(dt) }
func (a *emitterAttachment) Tick(dt float64)      { a.e.Tick(dt) }

// AppendBalls appends the balls in flight.
func (a *emitterAttachment) AppendBalls(dst []*hazard.Ball) []*hazard.Ball {
	return a.e.InFlight(dst)
}

// Emitter exposes the wrapped emitter for statistics.
func (a *emitterAttachment) Emitter() *hazard.Emitter { return a.e }

func fallingBallsKind(env *Env, spec config.SegmentSpec) (func(*track.Segment), error) {
	h := env.Config.Hazards
	cfg := hazard.Config{
		PoolSize:      int(spec.Param("pool_size", float64(h.PoolSize))),
		Interval:      spec.Param("interval", h.Interval),
		LateralMin:    h.LateralMin,
		LateralMax:    h.LateralMax,
		ForwardMin:    h.ForwardMin,
		ForwardMax:    h.ForwardMax,
		Torque:        h.Torque,
		Jitter:        h.Jitter,
		Radius:        h.Radius,
		Gravity:       h.Gravity,
		Restitution:   hazard.DefaultConfig().Restitution,
		DespawnY:      h.DespawnY,
		SpawnOnEnable: h.SpawnOnEnable,
	}
	anchors := make([]mgl64.Vec3, 0, len(h.Anchors))
	for _, a := range h.Anchors {
		anchors = append(anchors, vec3(a, mgl64.Vec3{}))
	}

	return func(seg *track.Segment) {
		c := cfg
		c.Floor = seg.Ground().Translate(seg.Origin.Mul(-1))
		e := hazard.New(c, anchors, env.Rng, env.Logger)
		seg.Attach(&emitterAttachment{e: e, base: c.Interval, tuning: env.Tuning})
	}, nil
}

// chunkAttachment rebuilds random content every time its segment is placed.
type chunkAttachment struct {
	name    string
	b       *chunk.Builder
	base    float64
	tuning  Tuning
	shift   mgl64.Vec3
	solids  []obstacle.Solid
	present bool
}

func (a *chunkAttachment) Activate(seg *track.Segment) {
	a.b.SetDensity(a.tuning.ChunkDensity(a.base))
	content := a.b.Build()

	offset := seg.Origin.Add(a.shift)
	a.solids = a.solids[:0]
	for _, box := range content.Obstacles {
		a.solids = append(a.solids, obstacle.Solid{Name: a.name, Box: box.Translate(offset)})
	}
	a.present = true
}

func (a *chunkAttachment) Deactivate()       { a.present = false }
func (a *chunkAttachment) FixedTick(float64) {}
func (a *chunkAttachment) Tick(float64)      {}

// AppendSolids appends the chunk obstacles while placed.
func (a *chunkAttachment) AppendSolids(dst []obstacle.Solid) []obstacle.Solid {
	if !a.present {
		return dst
	}
	return append(dst, a.solids...)
}

func chunkKind(env *Env, spec config.SegmentSpec) (func(*track.Segment), error) {
	c := env.Config.Chunk
	cfg := chunk.Config{
		Width:           c.Width,
		Depth:           spec.Length,
		GroundY:         c.GroundY,
		GroundThickness: track.GroundThickness,
		Lift:            c.Lift,
		Slots:           int(spec.Param("slots", float64(c.Slots))),
		Density:         spec.Param("density", c.Density),
		ObstacleSize:    vec3(c.ObstacleSize, chunk.DefaultConfig().ObstacleSize),
	}

	return func(seg *track.Segment) {
		seg.Attach(&chunkAttachment{
			name:   spec.Name,
			b:      chunk.New(cfg, env.Rng),
			base:   cfg.Density,
			tuning: env.Tuning,
			// Chunk content spans 0..width; centre it on the track axis.
			shift:  mgl64.Vec3{-cfg.Width / 2, 0, 0},
			solids: make([]obstacle.Solid, 0, cfg.Slots),
		})
	}, nil
}
