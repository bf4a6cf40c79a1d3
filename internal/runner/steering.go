package runner

import (
	"math"

	"github.com/vovakirdan/rolling-stone/internal/config"
	"github.com/vovakirdan/rolling-stone/internal/core"
)

// keyHold is how long a steering key press counts as held. Terminals only
// report presses (and auto-repeat), never releases.
const keyHold = 0.2

// Steering turns tilt samples and steering keys into a smoothed axis in
// [-1, 1].
type Steering struct {
	cfg config.PlayerConfig

	zero    float64 // calibrated neutral tilt
	key     float64
	keyLeft float64 // seconds the current key direction stays held
	value   float64
}

// NewSteering creates a steering filter.
func NewSteering(cfg config.PlayerConfig) *Steering {
	return &Steering{cfg: cfg}
}

// Calibrate makes raw the neutral tilt.
func (s *Steering) Calibrate(raw float64) {
	s.zero = raw
}

// Reset clears held keys, smoothing and calibration.
func (s *Steering) Reset() {
	*s = Steering{cfg: s.cfg}
}

// Value returns the current steering axis.
func (s *Steering) Value() float64 { return s.value }

// Tilt maps a raw tilt sample to [-1, 1] times the tilt sensitivity: values
// inside the dead zone are zero, the rest is remapped from the dead zone to
// the clamp.
func (s *Steering) Tilt(raw float64) float64 {
	c := s.cfg
	raw = core.ClampF(raw-s.zero, -c.TiltMax, c.TiltMax)
	abs := math.Abs(raw)
	if abs <= c.TiltDeadZone || c.TiltMax <= c.TiltDeadZone {
		return 0
	}
	t := (abs - c.TiltDeadZone) / (c.TiltMax - c.TiltDeadZone)
	return math.Copysign(t, raw) * c.TiltSensitivity
}

// Update folds one frame of input into the axis and returns it.
func (s *Steering) Update(in core.InputFrame, dt float64) float64 {
	if k := in.Steer(); k != 0 {
		s.key = k
		s.keyLeft = keyHold
	} else if s.keyLeft > 0 {
		s.keyLeft -= dt
		if s.keyLeft <= 0 {
			s.key = 0
		}
	}

	var target float64
	if in.HasTilt {
		target += s.Tilt(in.Tilt)
	}
	target += s.key * s.cfg.KeyboardSensitivity
	target = core.ClampF(target, -1, 1)

	if s.cfg.SteerSmoothing <= 0 {
		s.value = target
		return s.value
	}
	s.value += (target - s.value) * (1 - math.Exp(-s.cfg.SteerSmoothing*dt))
	return s.value
}
