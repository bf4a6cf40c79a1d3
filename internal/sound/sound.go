// Package sound plays the runner's sound effects. Consumers receive a Player
// through their constructors; there is no global instance.
package sound

// Effect identifies a sound effect.
type Effect int

const (
	EffectClick Effect = iota
	EffectJump
	EffectHit
	EffectGameOver
	EffectComplete
)

func (e Effect) String() string {
	switch e {
	case EffectClick:
		return "click"
	case EffectJump:
		return "jump"
	case EffectHit:
		return "hit"
	case EffectGameOver:
		return "game_over"
	case EffectComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Player plays effects without blocking.
type Player interface {
	Play(e Effect)
}

// Silent discards every effect.
type Silent struct{}

func (Silent) Play(Effect) {}
