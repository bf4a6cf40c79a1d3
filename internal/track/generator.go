package track

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

// Config holds the generator tuning.
type Config struct {
	Lookahead       float64    // track kept ahead of the player
	RecycleMargin   float64    // distance past a segment's exit before it is recycled
	InitialSegments int        // segments placed by BuildInitial on activation
	Prewarm         int        // instances created per prefab up front
	MaxSpawnPerTick int        // guard against catalogs that barely advance
	Origin          mgl64.Vec3 // reference position of the first entry anchor
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Lookahead:       40,
		RecycleMargin:   30,
		InitialSegments: 10,
		Prewarm:         0,
		MaxSpawnPerTick: 64,
	}
}

// State is the generator lifecycle.
type State uint8

const (
	StateEmpty State = iota
	StateBuilding
	StateSteady
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateBuilding:
		return "building"
	case StateSteady:
		return "steady"
	default:
		return "unknown"
	}
}

// Progress supplies the player's position along the travel axis.
type Progress interface {
	Progress() float64
}

// ProgressFunc adapts a function to Progress.
type ProgressFunc func() float64

func (f ProgressFunc) Progress() float64 { return f() }

// Stats summarizes generator activity.
type Stats struct {
	State    State
	Active   int
	Spawned  uint64
	Recycled uint64
	Pools    pool.Stats
	FrontZ   float64 // entry of the oldest active segment
	BackZ    float64 // exit of the newest active segment
}

// Generator owns the active sequence of segments, oldest first.
type Generator struct {
	cfg     Config
	prefabs []Prefab
	pools   *pool.Keyed[int, *Segment]
	active  ring[*Segment]
	rng     *rand.Rand
	source  Progress
	logger  *log.Logger

	state    State
	err      error
	nextID   int
	spawned  uint64
	recycled uint64

	warnedCap        bool
	warnedDegenerate bool
}

// New creates a generator over a prefab catalog. Prefabs that cannot be
// chained are dropped with a warning. A missing progress source, or a
// catalog with nothing usable, is logged once and leaves the generator
// disabled: every later call is a no-op and Err reports the cause.
func New(cfg Config, prefabs []Prefab, source Progress, seed int64, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.MaxSpawnPerTick <= 0 {
		cfg.MaxSpawnPerTick = DefaultConfig().MaxSpawnPerTick
	}

	g := &Generator{
		cfg:     cfg,
		prefabs: prefabs,
		rng:     rand.New(rand.NewSource(seed)),
		source:  source,
		logger:  logger.With("component", "track"),
	}

	switch {
	case source == nil:
		g.err = fmt.Errorf("track: no progress source: %w", core.ErrConfigurationMissing)
	case len(prefabs) == 0:
		g.err = fmt.Errorf("track: no prefabs: %w", core.ErrConfigurationMissing)
	default:
		usable, problems := usablePrefabs(prefabs)
		if len(usable) == 0 {
			g.err = fmt.Errorf("track: no usable prefabs: %w", errors.Join(core.ErrConfigurationMissing, problems))
			break
		}
		if problems != nil {
			g.logger.Warn("prefabs dropped", "kept", len(usable), "dropped", len(prefabs)-len(usable), "err", problems)
		}
		g.prefabs = usable
	}
	if g.err != nil {
		g.logger.Error("generator disabled", "err", g.err)
		return g
	}

	g.pools = pool.NewKeyed(g.newSegment, pool.Options{Policy: pool.PolicyGrow})
	g.active = newRing[*Segment](g.capacityHint())
	for i := range g.prefabs {
		if err := g.pools.Prewarm(i, cfg.Prewarm); err != nil {
			g.logger.Warn("prewarm failed", "prefab", g.prefabs[i].Name, "err", err)
		}
	}
	return g
}

// capacityHint estimates the steady-state active count from the shortest
// prefab so the active ring does not have to grow.
func (g *Generator) capacityHint() int {
	shortest := math.MaxFloat64
	for i := range g.prefabs {
		if adv := g.prefabs[i].Advance(); adv > 0 && adv < shortest {
			shortest = adv
		}
	}
	n := int(math.Ceil((g.cfg.Lookahead+g.cfg.RecycleMargin)/shortest)) + 2
	if n < g.cfg.InitialSegments+1 {
		n = g.cfg.InitialSegments + 1
	}
	return n
}

func (g *Generator) newSegment(kind int) *Segment {
	g.nextID++
	return newSegment(g.nextID, kind, &g.prefabs[kind])
}

// Err returns the reason the generator is disabled, or nil.
func (g *Generator) Err() error { return g.err }

// Disabled reports whether the generator refused its configuration.
func (g *Generator) Disabled() bool { return g.err != nil }

// State returns the lifecycle state.
func (g *Generator) State() State { return g.state }

// Config returns the tuning in use.
func (g *Generator) Config() Config { return g.cfg }

// Prefabs returns the catalog.
func (g *Generator) Prefabs() []Prefab { return g.prefabs }

// Reset reseeds the prefab choice.
func (g *Generator) Reset(seed int64) {
	g.rng = rand.New(rand.NewSource(seed))
}

// BuildInitial returns every active segment to its pool and chains n new
// segments starting at the origin anchor.
func (g *Generator) BuildInitial(n int) {
	if g.Disabled() {
		return
	}
	g.clear()
	g.state = StateBuilding
	for i := 0; i < n; i++ {
		g.spawn()
	}
	g.state = StateSteady
}

// Tick extends the track until the lookahead is satisfied, then recycles
// segments the player has passed by more than the recycle margin.
func (g *Generator) Tick(progress float64) {
	if g.Disabled() {
		return
	}
	if g.state == StateEmpty {
		g.state = StateBuilding
	}

	spawned := 0
	for g.active.Len() == 0 || g.active.Back().ExitZ()-progress < g.cfg.Lookahead {
		if spawned >= g.cfg.MaxSpawnPerTick {
			if !g.warnedCap {
				g.warnedCap = true
				g.logger.Warn("spawn cap reached, lookahead not satisfied this tick",
					"cap", g.cfg.MaxSpawnPerTick, "progress", progress)
			}
			break
		}
		g.spawn()
		spawned++
	}

	for g.active.Len() > 0 && progress-g.active.Front().ExitZ() > g.cfg.RecycleMargin {
		g.recycleFront()
	}

	if g.active.Len() > 0 {
		g.state = StateSteady
	}
}

// Update reads the progress source and ticks.
func (g *Generator) Update() {
	if g.Disabled() {
		return
	}
	g.Tick(g.source.Progress())
}

func (g *Generator) spawn() *Segment {
	kind := g.rng.Intn(len(g.prefabs))
	seg, err := g.pools.Acquire(kind)
	if err != nil {
		// Grow pools only fail when a constructor misbehaves.
		g.logger.Error("acquire failed", "prefab", g.prefabs[kind].Name, "err", err)
		return nil
	}

	anchorZ := g.cfg.Origin[core.AxisZ]
	if g.active.Len() > 0 {
		anchorZ = g.active.Back().ExitZ()
	}
	seg.place(g.cfg.Origin[core.AxisX], g.cfg.Origin[core.AxisY], anchorZ)

	if !seg.HasExit() && !g.warnedDegenerate {
		g.warnedDegenerate = true
		g.logger.Warn("prefab has no exit anchor, using its origin", "prefab", seg.Prefab.Name)
	}

	seg.activate()
	g.active.PushBack(seg)
	g.spawned++
	return seg
}

func (g *Generator) recycleFront() {
	seg := g.active.PopFront()
	g.release(seg)
	g.recycled++
}

func (g *Generator) release(seg *Segment) {
	seg.deactivate()
	if err := g.pools.Release(seg.kind, seg); err != nil {
		g.logger.Error("release failed", "segment", seg.ID, "err", err)
	}
}

func (g *Generator) clear() {
	for g.active.Len() > 0 {
		g.release(g.active.PopFront())
	}
	g.state = StateEmpty
}

// Teardown returns every segment and destroys the pools.
func (g *Generator) Teardown() {
	if g.Disabled() {
		return
	}
	g.clear()
	g.pools.Teardown(nil)
}

// Len returns the number of active segments.
func (g *Generator) Len() int { return g.active.Len() }

// At returns the i-th active segment, oldest first.
func (g *Generator) At(i int) *Segment { return g.active.At(i) }

// SegmentAt returns the active segment whose ground lies under p, or nil.
func (g *Generator) SegmentAt(p mgl64.Vec3) *Segment {
	for i := 0; i < g.active.Len(); i++ {
		if seg := g.active.At(i); seg.Over(p) {
			return seg
		}
	}
	return nil
}

// PoolStats returns the occupancy of one prefab's pool.
func (g *Generator) PoolStats(kind int) pool.Stats {
	if g.Disabled() {
		return pool.Stats{}
	}
	return g.pools.Stats(kind)
}

// Stats returns a snapshot of generator activity.
func (g *Generator) Stats() Stats {
	s := Stats{
		State:    g.state,
		Active:   g.active.Len(),
		Spawned:  g.spawned,
		Recycled: g.recycled,
	}
	if g.Disabled() {
		return s
	}
	s.Pools = g.pools.Total()
	if s.Active > 0 {
		s.FrontZ = g.active.Front().EntryWorld()[core.AxisZ]
		s.BackZ = g.active.Back().ExitZ()
	}
	return s
}

// Verify checks the spatial and pool invariants at the given progress.
func (g *Generator) Verify(progress float64) error {
	if g.Disabled() {
		return g.err
	}

	var errs []error
	for i := 1; i < g.active.Len(); i++ {
		prev, next := g.active.At(i-1), g.active.At(i)
		if entry, exit := next.EntryWorld()[core.AxisZ], prev.ExitZ(); entry != exit {
			errs = append(errs, fmt.Errorf("segments %d -> %d: entry %g != exit %g on Z", prev.ID, next.ID, entry, exit))
		}
	}

	if n := g.active.Len(); n > 0 {
		if ahead := g.active.Back().ExitZ() - progress; ahead < g.cfg.Lookahead {
			errs = append(errs, fmt.Errorf("only %g of track ahead, want %g", ahead, g.cfg.Lookahead))
		}
		if behind := progress - g.active.Front().ExitZ(); behind > g.cfg.RecycleMargin {
			errs = append(errs, fmt.Errorf("oldest segment %g behind, margin %g", behind, g.cfg.RecycleMargin))
		}
	}

	ps := g.pools.Total()
	if ps.Active != g.active.Len() {
		errs = append(errs, fmt.Errorf("pools report %d active, sequence holds %d", ps.Active, g.active.Len()))
	}
	if ps.Created != ps.Active+ps.Pooled {
		errs = append(errs, fmt.Errorf("pool conservation: created %d != active %d + pooled %d", ps.Created, ps.Active, ps.Pooled))
	}

	if len(errs) > 0 {
		return fmt.Errorf("track: invariants: %w", errors.Join(errs...))
	}
	return nil
}
