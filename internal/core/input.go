package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone       Action = iota
	ActionSteerLeft         // A, Left arrow
	ActionSteerRight        // D, Right arrow
	ActionJump              // Space, W, Up
	ActionConfirm           // Enter
	ActionBack              // B, Escape
	ActionRestart           // R after game over
	ActionQuit              // Q, Ctrl+C
	ActionPause             // P
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionSteerLeft:
		return "SteerLeft"
	case ActionSteerRight:
		return "SteerRight"
	case ActionJump:
		return "Jump"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame is the input state accumulated between two frames.
// Digital actions are a bitset; Tilt carries an analog steering axis in
// [-1, 1] for devices that report one (accelerometer, gamepad stick).
type InputFrame struct {
	actions uint32
	Tilt    float64
	HasTilt bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	f.actions |= 1 << uint(a)
}

// SetTilt records an analog steering sample.
func (f *InputFrame) SetTilt(v float64) {
	f.Tilt = v
	f.HasTilt = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.actions&(1<<uint(a)) != 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	*f = InputFrame{}
}

// Steer returns the digital steering direction: -1 left, 1 right, 0 none.
func (f InputFrame) Steer() float64 {
	var s float64
	if f.Has(ActionSteerLeft) {
		s--
	}
	if f.Has(ActionSteerRight) {
		s++
	}
	return s
}
