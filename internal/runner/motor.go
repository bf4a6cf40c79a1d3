package runner

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/rolling-stone/internal/config"
)

// groundSkin is how far above the surface the ball still counts as grounded.
const groundSkin = 0.05

// Surface reports the ground height under a point, if there is ground.
type Surface interface {
	SurfaceAt(p mgl64.Vec3) (height float64, ok bool)
}

// Motor moves the player ball: forward acceleration up to a cap that grows
// with run time, steering acceleration reduced in the air, and a buffered
// jump that only fires on the ground.
type Motor struct {
	cfg config.PlayerConfig

	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Grounded bool

	// BaseMaxSpeed is the forward cap before run-time growth. The game
	// raises it with difficulty.
	BaseMaxSpeed float64

	runTime   float64
	maxSpeed  float64
	jumpTimer float64 // >0 while a jump press is buffered
	Jumped    bool    // set by the last FixedTick that jumped
}

// NewMotor creates a motor at start.
func NewMotor(cfg config.PlayerConfig, start mgl64.Vec3) *Motor {
	m := &Motor{cfg: cfg}
	m.Reset(start)
	return m
}

// Reset puts the ball at rest at start.
func (m *Motor) Reset(start mgl64.Vec3) {
	*m = Motor{
		cfg:          m.cfg,
		Position:     start,
		BaseMaxSpeed: m.cfg.MaxForwardSpeed,
		maxSpeed:     m.cfg.MaxForwardSpeed,
	}
}

// QueueJump buffers a jump press for the jump buffer window.
func (m *Motor) QueueJump() {
	m.jumpTimer = m.cfg.JumpBuffer
}

// Tick expires the jump buffer on the frame clock.
func (m *Motor) Tick(dt float64) {
	if m.jumpTimer > 0 {
		m.jumpTimer -= dt
	}
}

// MaxSpeed returns the current forward cap.
func (m *Motor) MaxSpeed() float64 { return m.maxSpeed }

// RunTime returns the simulated seconds since Reset.
func (m *Motor) RunTime() float64 { return m.runTime }

// Fallen reports whether the ball dropped below the fail height.
func (m *Motor) Fallen() bool {
	return m.Position.Y() < m.cfg.FallY
}

// FixedTick advances the ball by one physics step.
func (m *Motor) FixedTick(dt, steer float64, ground Surface) {
	c := m.cfg
	m.Jumped = false
	m.runTime += dt
	m.maxSpeed = m.BaseMaxSpeed + c.SpeedGrowth*m.runTime

	surface, onGround := m.probe(ground)

	v := m.Velocity
	v[2] = math.Min(v[2]+c.ForwardForce*dt, m.maxSpeed)

	control := 1.0
	if !m.Grounded {
		control = c.AirControl
	}
	v[0] += c.LateralAcceleration * steer * control * dt
	v[0] = math.Max(-c.MaxSideSpeed, math.Min(v[0], c.MaxSideSpeed))

	if m.jumpTimer > 0 && m.Grounded {
		m.jumpTimer = 0
		if v[1] < 0 {
			v[1] = 0
		}
		v[1] += c.JumpVelocity
		m.Grounded = false
		m.Jumped = true
	}
	if !m.Grounded {
		v[1] -= c.Gravity * dt
	}

	p := m.Position.Add(v.Mul(dt))

	// Land on the surface found at the start of the step; a ball that is
	// already well below it has fallen off the edge and keeps falling.
	if onGround && v[1] <= 0 && p[1]-c.Radius <= surface && m.Position[1]-c.Radius >= surface-c.Radius {
		p[1] = surface + c.Radius
		v[1] = 0
	}
	m.Position = p
	m.Velocity = v
	m.Grounded = m.groundedAt(ground)
}

func (m *Motor) probe(ground Surface) (float64, bool) {
	if ground == nil {
		return 0, false
	}
	return ground.SurfaceAt(m.Position)
}

func (m *Motor) groundedAt(ground Surface) bool {
	h, ok := m.probe(ground)
	if !ok {
		return false
	}
	bottom := m.Position.Y() - m.cfg.Radius
	return bottom <= h+groundSkin && bottom >= h-m.cfg.Radius
}
