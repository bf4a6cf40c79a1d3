package runner

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/rolling-stone/internal/config"
	"github.com/vovakirdan/rolling-stone/internal/core"
	"github.com/vovakirdan/rolling-stone/internal/sound"
)

const frame = 1.0 / 50

func plainConfig() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Segments = []config.SegmentSpec{{Name: "straight", Kind: "plain", Length: 25}}
	cfg.Sound.Enabled = false
	return cfg
}

func newGame(t *testing.T, cfg config.RunnerConfig, seed int64) *Game {
	t.Helper()
	g := New(cfg, Options{})
	if err := g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 50, Seed: seed}); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	t.Cleanup(g.Close)
	return g
}

func run(g *Game, frames int, in core.InputFrame) core.GameState {
	var st core.GameState
	for i := 0; i < frames; i++ {
		st = g.Frame(in, frame).State
		if st.GameOver {
			break
		}
	}
	return st
}

type recorder struct{ played []sound.Effect }

func (r *recorder) Play(e sound.Effect) { r.played = append(r.played, e) }

func (r *recorder) count(e sound.Effect) int {
	n := 0
	for _, p := range r.played {
		if p == e {
			n++
		}
	}
	return n
}

func TestGameDeterminism(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Sound.Enabled = false

	inputs := make([]core.InputFrame, 300)
	for i := range inputs {
		if i%40 == 0 {
			inputs[i].Set(core.ActionJump)
		}
		if i%70 < 10 {
			inputs[i].Set(core.ActionSteerLeft)
		}
	}

	play := func() (core.GameState, mgl64.Vec3) {
		g := newGame(t, cfg, 12345)
		var st core.GameState
		for _, in := range inputs {
			st = g.Frame(in, frame).State
		}
		return st, g.Motor().Position
	}

	st1, p1 := play()
	st2, p2 := play()
	if st1 != st2 {
		t.Errorf("Determinism failed: states differ. Run1=%+v, Run2=%+v", st1, st2)
	}
	if p1 != p2 {
		t.Errorf("Determinism failed: positions differ. Run1=%v, Run2=%v", p1, p2)
	}
}

func TestBallRollsForwardOnTrack(t *testing.T) {
	g := newGame(t, plainConfig(), 1)

	st := run(g, 250, core.NewInputFrame())

	if st.GameOver {
		t.Fatalf("run ended on a plain track: %q", st.Reason)
	}
	if st.Distance <= 10 {
		t.Errorf("Distance = %g after 5s, expected the ball to roll forward", st.Distance)
	}
	if !g.Motor().Grounded {
		t.Error("ball not grounded on a plain track")
	}
	if y := g.Motor().Position.Y(); math.Abs(y-g.cfg.Player.Radius) > 1e-9 {
		t.Errorf("ball at y=%g, expected resting at the radius", y)
	}
	if err := g.Generator().Verify(g.Motor().Position.Z()); err != nil {
		t.Errorf("track invariants broken: %v", err)
	}
}

func TestForwardSpeedCapGrows(t *testing.T) {
	cfg := plainConfig()
	cfg.Difficulty.Enabled = false
	g := newGame(t, cfg, 1)

	run(g, 100, core.NewInputFrame())

	m := g.Motor()
	expected := cfg.Player.MaxForwardSpeed + cfg.Player.SpeedGrowth*m.RunTime()
	if math.Abs(m.MaxSpeed()-expected) > 1e-9 {
		t.Errorf("MaxSpeed() = %g, expected %g", m.MaxSpeed(), expected)
	}
	if m.Velocity.Z() > m.MaxSpeed()+1e-9 {
		t.Errorf("forward speed %g above the cap %g", m.Velocity.Z(), m.MaxSpeed())
	}
}

func TestSteeringOffTheEdgeFalls(t *testing.T) {
	rec := &recorder{}
	cfg := plainConfig()
	cfg.Game.RestartDelay = 0
	g := New(cfg, Options{Sound: rec})
	if err := g.Reset(core.RuntimeConfig{Seed: 3}); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	defer g.Close()

	in := core.NewInputFrame()
	in.Set(core.ActionSteerRight)
	st := run(g, 500, in)

	if !st.GameOver {
		t.Fatal("steering right forever did not end the run")
	}
	if st.Reason != "fell" {
		t.Errorf("Reason = %q, expected fell", st.Reason)
	}
	if g.Motor().Velocity.X() > cfg.Player.MaxSideSpeed {
		t.Errorf("side speed %g above the clamp %g", g.Motor().Velocity.X(), cfg.Player.MaxSideSpeed)
	}
	if rec.count(sound.EffectGameOver) != 1 {
		t.Errorf("game over played %d times, expected once", rec.count(sound.EffectGameOver))
	}
}

func TestObstacleHitEndsRun(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Segments = []config.SegmentSpec{{Name: "field", Kind: "chunk", Length: 25, Width: 10}}
	cfg.Chunk.Width = 0.5
	cfg.Chunk.Density = 1
	cfg.Difficulty.Enabled = false
	g := newGame(t, cfg, 9)

	st := run(g, 500, core.NewInputFrame())
	for i := 0; i < 100 && !st.GameOver; i++ {
		st = g.Frame(core.NewInputFrame(), frame).State
	}

	if !st.GameOver {
		t.Fatal("ball rolled through a wall of obstacles")
	}
	if st.Reason != "hit field" {
		t.Errorf("Reason = %q, expected \"hit field\"", st.Reason)
	}
	if st.Distance > 12.5 {
		t.Errorf("Distance = %g, expected the run to stop at the first obstacle row", st.Distance)
	}
}

func TestJumpLeavesGround(t *testing.T) {
	rec := &recorder{}
	g := New(plainConfig(), Options{Sound: rec})
	if err := g.Reset(core.RuntimeConfig{Seed: 5}); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	defer g.Close()

	run(g, 10, core.NewInputFrame())
	jump := core.NewInputFrame()
	jump.Set(core.ActionJump)
	g.Frame(jump, frame)

	if y := g.Motor().Position.Y(); y <= g.cfg.Player.Radius {
		t.Errorf("ball at y=%g after jump, expected above %g", y, g.cfg.Player.Radius)
	}
	if rec.count(sound.EffectJump) != 1 {
		t.Errorf("jump played %d times, expected 1", rec.count(sound.EffectJump))
	}

	run(g, 100, core.NewInputFrame())
	if !g.Motor().Grounded {
		t.Error("ball did not land after the jump")
	}
}

func TestPauseFreezesRun(t *testing.T) {
	g := newGame(t, plainConfig(), 1)
	run(g, 20, core.NewInputFrame())

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	st := g.Frame(pause, frame).State
	if !st.Paused {
		t.Fatal("Paused = false after pause input")
	}

	before := g.Motor().Position
	steps := g.loop.FixedSteps
	run(g, 50, core.NewInputFrame())
	if g.Motor().Position != before || g.loop.FixedSteps != steps {
		t.Error("simulation advanced while paused")
	}

	g.Frame(pause, frame)
	run(g, 5, core.NewInputFrame())
	if g.Motor().Position == before {
		t.Error("simulation did not resume")
	}
}

func TestGameReset(t *testing.T) {
	g := newGame(t, plainConfig(), 1)
	first := g.RunID()
	run(g, 100, core.NewInputFrame())

	if err := g.Reset(core.RuntimeConfig{Seed: 1}); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	st := g.State()
	if st.Score != 0 || st.GameOver || st.Paused || st.Reason != "" {
		t.Errorf("Reset should clear state, got %+v", st)
	}
	if g.RunID() == first {
		t.Error("Reset should start a new run id")
	}
	if g.Elapsed() != 0 {
		t.Errorf("Reset should clear elapsed, got %g", g.Elapsed())
	}
}

func TestGoalCompletesLevel(t *testing.T) {
	cfg := plainConfig()
	cfg.Game.GoalDistance = 20
	g := newGame(t, cfg, 1)

	st := run(g, 1000, core.NewInputFrame())

	if !st.Completed || !st.GameOver {
		t.Fatalf("state = %+v, expected completed", st)
	}
	if st.Score < 20 {
		t.Errorf("Score = %d, expected at least the goal", st.Score)
	}
	if res := g.Result(); res.Reason != "complete" || !res.Completed {
		t.Errorf("Result() = %+v", res)
	}
}

func TestScoreUsesMetersPerUnit(t *testing.T) {
	cfg := plainConfig()
	cfg.Game.MetersPerUnit = 2
	g := newGame(t, cfg, 1)

	st := run(g, 100, core.NewInputFrame())

	if st.Score != int(st.Distance*2) {
		t.Errorf("Score = %d, expected %d", st.Score, int(st.Distance*2))
	}
}

func TestRender(t *testing.T) {
	g := newGame(t, plainConfig(), 1)
	run(g, 10, core.NewInputFrame())

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	row := 24 - 1 - g.cfg.View.RowsBehind
	if got := screen.Get(40, row); got != BallChar {
		t.Errorf("cell at ball = %q, expected %q", got, BallChar)
	}
	if got := screen.Get(40, row-3); got != GroundChar && got != SeamChar {
		t.Errorf("cell ahead of ball = %q, expected ground", got)
	}
	if got := screen.Get(2, row); got != ' ' {
		t.Errorf("cell off the track = %q, expected blank", got)
	}
	if hud := screen.Row(0); !strings.Contains(hud, " m ") {
		t.Errorf("HUD %q has no distance", hud)
	}
}

func TestRenderGameOver(t *testing.T) {
	cfg := plainConfig()
	cfg.Game.RestartDelay = 0
	g := newGame(t, cfg, 1)
	g.Session().EndGame("hit test")

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.String(), "GAME OVER: hit test") {
		t.Error("game over box not drawn")
	}
}
