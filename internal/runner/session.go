package runner

import (
	"github.com/vovakirdan/rolling-stone/internal/sound"
)

// Phase is the lifecycle of one run.
type Phase int

const (
	PhaseRunning  Phase = iota
	PhasePaused         // simulation frozen
	PhaseEnding         // run ended, waiting out the restart delay
	PhaseOver           // game over screen
	PhaseComplete       // goal distance reached
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseEnding:
		return "ending"
	case PhaseOver:
		return "over"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// UnknownReason is used when a run ends without a reason.
const UnknownReason = "Unknown"

// Session tracks whether a run is going, paused or over, and why it ended.
type Session struct {
	phase  Phase
	reason string
	delay  float64
	timer  float64
	sound  sound.Player
}

// NewSession creates a running session. Ending waits delay seconds before
// the game over screen.
func NewSession(delay float64, player sound.Player) *Session {
	if player == nil {
		player = sound.Silent{}
	}
	return &Session{delay: delay, sound: player}
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Reason returns why the run ended, empty while it is going.
func (s *Session) Reason() string { return s.reason }

// Ended reports whether the run is over in any way.
func (s *Session) Ended() bool {
	return s.phase == PhaseEnding || s.phase == PhaseOver || s.phase == PhaseComplete
}

// Paused reports whether the simulation is frozen.
func (s *Session) Paused() bool { return s.phase == PhasePaused }

// EndGame ends the run. Only the first call counts.
func (s *Session) EndGame(reason string) bool {
	if s.Ended() {
		return false
	}
	if reason == "" {
		reason = UnknownReason
	}
	s.reason = reason
	s.sound.Play(sound.EffectHit)
	if s.delay <= 0 {
		s.showGameOver()
		return true
	}
	s.phase = PhaseEnding
	s.timer = s.delay
	return true
}

func (s *Session) showGameOver() {
	s.phase = PhaseOver
	s.sound.Play(sound.EffectGameOver)
}

// CompleteLevel ends the run successfully. Ignored once the run has ended.
func (s *Session) CompleteLevel() bool {
	if s.Ended() {
		return false
	}
	s.phase = PhaseComplete
	s.reason = "complete"
	s.sound.Play(sound.EffectComplete)
	return true
}

// Pause freezes a running session.
func (s *Session) Pause() {
	if s.phase == PhaseRunning {
		s.phase = PhasePaused
	}
}

// Resume continues a paused session.
func (s *Session) Resume() {
	if s.phase == PhasePaused {
		s.phase = PhaseRunning
	}
}

// TogglePause switches between running and paused.
func (s *Session) TogglePause() {
	if s.phase == PhasePaused {
		s.Resume()
	} else {
		s.Pause()
	}
}

// Tick counts down the restart delay on the frame clock.
func (s *Session) Tick(dt float64) {
	if s.phase != PhaseEnding {
		return
	}
	s.timer -= dt
	if s.timer <= 0 {
		s.showGameOver()
	}
}
