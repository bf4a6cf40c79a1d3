package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/rolling-stone/internal/core"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionSteerLeft, false},
		{"a", runes("a"), core.ActionSteerLeft, false},
		{"h", runes("h"), core.ActionSteerLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionSteerRight, false},
		{"d", runes("d"), core.ActionSteerRight, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionJump, false},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump, false},
		{"p", runes("p"), core.ActionPause, false},
		{"r", runes("r"), core.ActionRestart, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"q", runes("q"), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runes("z"), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action {
				t.Errorf("MapKey() action = %v, expected %v", action, tt.action)
			}
			if quit != tt.quit {
				t.Errorf("MapKey() quit = %v, expected %v", quit, tt.quit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyLeft}, &frame) {
		t.Error("MapKeyToFrame(left) reported quit")
	}
	if !frame.Has(core.ActionSteerLeft) {
		t.Error("frame missing SteerLeft after left key")
	}
	if frame.Steer() != -1 {
		t.Errorf("Steer() = %v, expected -1", frame.Steer())
	}
	if !km.MapKeyToFrame(runes("q"), &frame) {
		t.Error("MapKeyToFrame(q) did not report quit")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runes("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{runes("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, MenuActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, MenuActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runes("q"), MenuActionQuit},
		{runes("x"), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.expected {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
		}
	}
}

func TestFrameDelta(t *testing.T) {
	base := time.Unix(1000, 0)
	tests := []struct {
		name     string
		prev     time.Time
		now      time.Time
		rate     int
		expected float64
	}{
		{"first tick", time.Time{}, base, 50, 0.02},
		{"first tick default rate", time.Time{}, base, 0, 1.0 / 60},
		{"normal", base, base.Add(16 * time.Millisecond), 60, 0.016},
		{"stall clamped", base, base.Add(2 * time.Second), 60, maxFrameDelta},
		{"clock went back", base, base.Add(-time.Second), 60, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := frameDelta(tt.prev, tt.now, tt.rate)
			if diff := got - tt.expected; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("frameDelta() = %v, expected %v", got, tt.expected)
			}
		})
	}
}
