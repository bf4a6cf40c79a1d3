package tui

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/crypto/ssh"

	"github.com/vovakirdan/rolling-stone/internal/config"
	"github.com/vovakirdan/rolling-stone/internal/core"
	"github.com/vovakirdan/rolling-stone/internal/storage"
)

func openStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := storage.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func shortRun() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Segments = []config.SegmentSpec{{Name: "straight", Kind: "plain", Length: 25}}
	cfg.Sound.Enabled = false
	cfg.Game.GoalDistance = 10
	return cfg
}

func send(m SessionModel, msg tea.Msg) SessionModel {
	next, _ := m.Update(msg)
	return next.(SessionModel)
}

func TestMenuCyclesDifficulty(t *testing.T) {
	m := NewMenuModel(core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, config.DifficultyNormal, 0)
	if m.Preset() != config.DifficultyNormal {
		t.Fatalf("Preset() = %v, expected normal", m.Preset())
	}

	step := func(msg tea.KeyMsg) {
		next, _ := m.Update(msg)
		m = next.(MenuModel)
	}
	step(tea.KeyMsg{Type: tea.KeyRight}) // on Play: no effect
	if m.Preset() != config.DifficultyNormal {
		t.Errorf("right on Play changed preset to %v", m.Preset())
	}

	step(tea.KeyMsg{Type: tea.KeyDown})
	step(tea.KeyMsg{Type: tea.KeyRight})
	if m.Preset() != config.DifficultyHard {
		t.Errorf("Preset() = %v, expected hard", m.Preset())
	}
	step(tea.KeyMsg{Type: tea.KeyRight})
	step(tea.KeyMsg{Type: tea.KeyRight})
	if m.Preset() != config.DifficultyEasy {
		t.Errorf("Preset() = %v, expected wrap to easy", m.Preset())
	}
	step(tea.KeyMsg{Type: tea.KeyLeft})
	if m.Preset() != config.DifficultyFixed {
		t.Errorf("Preset() = %v, expected wrap back to fixed", m.Preset())
	}
	if !strings.Contains(m.View(), "fixed") {
		t.Error("menu view does not show the preset")
	}
}

func TestSessionPlaySaveAndScores(t *testing.T) {
	store := openStore(t)
	m := NewSessionModel(SessionOptions{
		Config: shortRun(),
		Store:  store,
		Player: "alice",
	}, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 20, Seed: 5})

	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.current != screenGame {
		t.Fatalf("Enter on Play: screen = %v, expected game", m.current)
	}

	now := time.Unix(0, 0)
	for i := 0; i < 2000 && !m.game.State().GameOver; i++ {
		now = now.Add(50 * time.Millisecond)
		m = send(m, TickMsg(now))
	}
	st := m.game.State()
	if !st.GameOver || !st.Completed {
		t.Fatalf("state = %+v, expected the goal reached", st)
	}
	if !strings.Contains(m.View(), "LEVEL COMPLETE") {
		t.Error("game view does not show completion")
	}

	runs, err := store.TopRuns(context.Background(), "alice", 10)
	if err != nil {
		t.Fatalf("TopRuns() error = %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, expected 1", len(runs))
	}
	if runs[0].Reason != "complete" || !runs[0].Completed || runs[0].Difficulty != "normal" {
		t.Errorf("saved run = %+v", runs[0])
	}

	// More ticks must not save again
	m = send(m, TickMsg(now.Add(50*time.Millisecond)))

	m = send(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.current != screenScores {
		t.Fatalf("tab after game over: screen = %v, expected scores", m.current)
	}
	if n := len(m.scores.Runs()); n != 1 {
		t.Errorf("scoreboard lists %d runs, expected 1", n)
	}
	if !strings.Contains(m.View(), "alice") {
		t.Error("scoreboard view does not list the player")
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.current != screenMenu {
		t.Fatalf("esc on scores: screen = %v, expected menu", m.current)
	}
	if m.menu.best <= 0 {
		t.Error("menu does not show the best run")
	}
}

func TestSessionRestartAndBack(t *testing.T) {
	m := NewSessionModel(SessionOptions{Config: shortRun()},
		core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 20, Seed: 5})
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})

	// Back is ignored while running
	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.current != screenGame {
		t.Fatal("esc left a running game")
	}

	now := time.Unix(0, 0)
	for i := 0; i < 2000 && !m.game.State().GameOver; i++ {
		now = now.Add(50 * time.Millisecond)
		m = send(m, TickMsg(now))
	}
	first := m.game.Game().RunID()

	m = send(m, runes("r"))
	m = send(m, TickMsg(now.Add(50*time.Millisecond)))
	if m.game.State().GameOver {
		t.Error("restart did not start a new run")
	}
	if m.game.Game().RunID() == first {
		t.Error("restart kept the run ID")
	}

	m = send(m, runes("p"))
	m = send(m, TickMsg(now.Add(100*time.Millisecond)))
	if !m.game.State().Paused {
		t.Fatal("p did not pause")
	}
	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.current != screenMenu || m.game != nil {
		t.Error("esc while paused did not return to the menu")
	}
}

func TestSessionQuit(t *testing.T) {
	m := NewSessionModel(SessionOptions{Config: shortRun()}, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	next, cmd := m.Update(runes("q"))
	if !next.(SessionModel).quitting || cmd == nil {
		t.Error("q on the menu did not quit")
	}
	if next.(SessionModel).View() != "" {
		t.Error("view not empty after quit")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, "", 80, 24)
	if !strings.Contains(m.View(), "not being recorded") {
		t.Error("scoreboard without a store should say so")
	}
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() || cmd == nil {
		t.Error("standalone scoreboard should quit on back")
	}

	embedded := NewScoreboardModel(nil, "", 80, 24).Embedded()
	next, cmd = embedded.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() || cmd != nil {
		t.Error("embedded scoreboard must not quit on back")
	}
}

func TestScoreboardTabs(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	for _, r := range []storage.Run{
		{Player: "alice", Score: 40, Distance: 40},
		{Player: "bob", Score: 90, Distance: 90},
		{Player: "alice", Score: 10, Distance: 10},
	} {
		if _, err := store.SaveRun(ctx, r); err != nil {
			t.Fatalf("SaveRun() error = %v", err)
		}
	}

	m := NewScoreboardModel(store, "alice", 100, 30)
	if n := len(m.Runs()); n != 3 {
		t.Fatalf("All tab lists %d runs, expected 3", n)
	}
	if m.Runs()[0].Player != "bob" {
		t.Errorf("top run by %q, expected bob", m.Runs()[0].Player)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if n := len(m.Runs()); n != 2 {
		t.Errorf("My runs tab lists %d runs, expected 2", n)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if n := len(m.Runs()); n != 3 {
		t.Errorf("back on All tab lists %d runs, expected 3", n)
	}
}

func TestPlayerName(t *testing.T) {
	if got := PlayerName("", nil); got != "guest" {
		t.Errorf("PlayerName(\"\", nil) = %q, expected guest", got)
	}
	if got := PlayerName("alice", nil); got != "alice" {
		t.Errorf("PlayerName(alice, nil) = %q, expected alice", got)
	}

	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey() error = %v", err)
	}
	key, err := ssh.NewPublicKey(pub)
	if err != nil {
		t.Fatalf("NewPublicKey() error = %v", err)
	}
	got := PlayerName("alice", key)
	fp := strings.TrimPrefix(ssh.FingerprintSHA256(key), "SHA256:")
	if got != "alice#"+fp[:fingerprintLen] {
		t.Errorf("PlayerName(alice, key) = %q, expected alice#%s", got, fp[:fingerprintLen])
	}
	if again := PlayerName("alice", key); again != got {
		t.Errorf("PlayerName() not stable: %q then %q", got, again)
	}
}
