// Package obstacle provides moving obstacles that live on track segments.
package obstacle

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/rolling-stone/internal/scripting"
)

// Mover animates an obstacle. Start is called each time the obstacle is
// placed; Pose returns the offset from the rest position and the yaw in
// degrees, t seconds after Start.
type Mover interface {
	Start(rng *rand.Rand)
	Pose(t float64) (offset mgl64.Vec3, yaw float64)
}

// Static never moves.
type Static struct{}

func (Static) Start(*rand.Rand) {}

func (Static) Pose(float64) (mgl64.Vec3, float64) { return mgl64.Vec3{}, 0 }

// Oscillator moves sinusoidally along one axis.
type Oscillator struct {
	Axis        int
	Amplitude   float64
	Frequency   float64
	RandomPhase bool

	phase float64
}

// SideToSide oscillates on X.
func SideToSide(amplitude, frequency float64) *Oscillator {
	return &Oscillator{Axis: 0, Amplitude: amplitude, Frequency: frequency, RandomPhase: true}
}

// Crusher oscillates on Y.
func Crusher(amplitude, frequency float64) *Oscillator {
	return &Oscillator{Axis: 1, Amplitude: amplitude, Frequency: frequency, RandomPhase: true}
}

func (o *Oscillator) Start(rng *rand.Rand) {
	o.phase = 0
	if o.RandomPhase {
		o.phase = rng.Float64() * 2 * math.Pi
	}
}

func (o *Oscillator) Pose(t float64) (mgl64.Vec3, float64) {
	var off mgl64.Vec3
	off[o.Axis] = math.Sin(t*o.Frequency+o.phase) * o.Amplitude
	return off, 0
}

// Rotator spins around Y at a constant rate.
type Rotator struct {
	Speed       float64 // degrees per second
	RandomStart bool

	start float64
}

func (r *Rotator) Start(rng *rand.Rand) {
	r.start = 0
	if r.RandomStart {
		r.start = rng.Float64() * 360
	}
}

func (r *Rotator) Pose(t float64) (mgl64.Vec3, float64) {
	return mgl64.Vec3{}, math.Mod(r.start+r.Speed*t, 360)
}

// Scripted asks a Lua function motion(t, phase) for the offset.
type Scripted struct {
	Engine *scripting.Engine
	Func   string

	phase float64
}

func (s *Scripted) Start(rng *rand.Rand) {
	s.phase = rng.Float64() * 2 * math.Pi
}

func (s *Scripted) Pose(t float64) (mgl64.Vec3, float64) {
	return s.Engine.Motion(s.Func, t, s.phase), 0
}
