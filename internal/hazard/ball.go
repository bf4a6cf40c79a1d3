// Package hazard emits pooled falling balls on a fixed cadence and returns
// them when they leave the play area.
package hazard

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// Ball is a disposable hazard. Kinematics are reset every time it is drawn
// from the pool.
type Ball struct {
	ID              int
	Position        mgl64.Vec3
	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3
	Rotation        mgl64.Quat
	Radius          float64
	Age             float64
}

func (b *Ball) reset(pos mgl64.Vec3) {
	b.Position = pos
	b.Velocity = mgl64.Vec3{}
	b.AngularVelocity = mgl64.Vec3{}
	b.Rotation = mgl64.QuatIdent()
	b.Age = 0
}

func (b *Ball) integrate(dt, gravity float64) {
	b.Velocity[1] -= gravity * dt
	b.Position = b.Position.Add(b.Velocity.Mul(dt))

	if w := b.AngularVelocity.Len(); w > 0 {
		step := mgl64.QuatRotate(w*dt, b.AngularVelocity.Mul(1/w))
		b.Rotation = step.Mul(b.Rotation).Normalize()
	}
	b.Age += dt
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

// onUnitSphere returns a uniformly distributed unit vector.
func onUnitSphere(rng *rand.Rand) mgl64.Vec3 {
	for {
		v := mgl64.Vec3{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
		if l := v.Len(); l > 1e-9 {
			return v.Mul(1 / l)
		}
	}
}

// randomRotation returns a uniformly distributed orientation (Shoemake).
func randomRotation(rng *rand.Rand) mgl64.Quat {
	u1, u2, u3 := rng.Float64(), rng.Float64(), rng.Float64()
	a, b := math.Sqrt(1-u1), math.Sqrt(u1)
	t1, t2 := 2*math.Pi*u2, 2*math.Pi*u3
	return mgl64.Quat{
		W: b * math.Cos(t2),
		V: mgl64.Vec3{a * math.Sin(t1), a * math.Cos(t1), b * math.Sin(t2)},
	}
}
