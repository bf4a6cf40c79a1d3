package obstacle

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/rolling-stone/internal/core"
	"github.com/vovakirdan/rolling-stone/internal/track"
)

// Solid is a named collision box in world space.
type Solid struct {
	Name string
	Box  core.Box
}

// Obstacle is a box on a segment driven by a Mover. It is a
// track.Attachment: placing the segment restarts the motion.
type Obstacle struct {
	Name  string
	Rest  core.Box // relative to the segment origin
	Mover Mover

	rng    *rand.Rand
	origin mgl64.Vec3
	clock  float64
	offset mgl64.Vec3
	yaw    float64
	active bool
}

// New creates an obstacle. A nil mover means Static.
func New(name string, rest core.Box, mover Mover, rng *rand.Rand) *Obstacle {
	if mover == nil {
		mover = Static{}
	}
	return &Obstacle{Name: name, Rest: rest, Mover: mover, rng: rng}
}

func (o *Obstacle) Activate(seg *track.Segment) {
	o.origin = seg.Origin
	o.clock = 0
	o.Mover.Start(o.rng)
	o.offset, o.yaw = o.Mover.Pose(0)
	o.active = true
}

func (o *Obstacle) Deactivate() { o.active = false }

func (o *Obstacle) FixedTick(float64) {}

func (o *Obstacle) Tick(dt float64) {
	if !o.active {
		return
	}
	o.clock += dt
	o.offset, o.yaw = o.Mover.Pose(o.clock)
}

// Active reports whether the obstacle's segment is on the track.
func (o *Obstacle) Active() bool { return o.active }

// Yaw returns the current rotation around Y in degrees.
func (o *Obstacle) Yaw() float64 { return o.yaw }

// Box returns the world-space bounds. A rotated obstacle is bounded by the
// box enclosing its footprint at the current yaw.
func (o *Obstacle) Box() core.Box {
	b := o.Rest.Translate(o.origin.Add(o.offset))
	if o.yaw == 0 {
		return b
	}
	c := b.Center()
	half := b.Max.Sub(b.Min).Mul(0.5)
	rad := o.yaw * math.Pi / 180
	cos, sin := math.Abs(math.Cos(rad)), math.Abs(math.Sin(rad))
	ext := mgl64.Vec3{
		cos*half.X() + sin*half.Z(),
		half.Y(),
		sin*half.X() + cos*half.Z(),
	}
	return core.Box{Min: c.Sub(ext), Max: c.Add(ext)}
}

// AppendSolids appends the obstacle's collision box when active.
func (o *Obstacle) AppendSolids(dst []Solid) []Solid {
	if !o.active {
		return dst
	}
	return append(dst, Solid{Name: o.Name, Box: o.Box()})
}

var _ track.Attachment = (*Obstacle)(nil)
