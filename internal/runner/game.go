// Package runner implements the Rolling Stone game: a ball rolls forward
// along a streamed track, steered by tilt or keys, until it falls off or
// hits an obstacle.
package runner

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/rolling-stone/internal/config"
	"github.com/vovakirdan/rolling-stone/internal/core"
	"github.com/vovakirdan/rolling-stone/internal/hazard"
	"github.com/vovakirdan/rolling-stone/internal/obstacle"
	"github.com/vovakirdan/rolling-stone/internal/registry"
	"github.com/vovakirdan/rolling-stone/internal/scripting"
	"github.com/vovakirdan/rolling-stone/internal/sound"
	"github.com/vovakirdan/rolling-stone/internal/track"
)

// Options are the services a game is wired with.
type Options struct {
	Sound    sound.Player
	Logger   *log.Logger
	Language language.Tag // HUD number formatting; zero means English
}

// Result summarizes a finished run for the scoreboard.
type Result struct {
	RunID     uuid.UUID
	Score     int
	Distance  float64
	Duration  time.Duration
	Reason    string
	Seed      int64
	Completed bool
}

// Attachments are asked for collision shapes through these.
type solidSource interface {
	AppendSolids(dst []obstacle.Solid) []obstacle.Solid
}

type ballSource interface {
	AppendBalls(dst []*hazard.Ball) []*hazard.Ball
}

// Game is one player's run.
type Game struct {
	cfg     config.RunnerConfig
	runtime core.RuntimeConfig
	logger  *log.Logger
	sound   sound.Player
	printer *message.Printer

	scripts    *scripting.Engine
	difficulty *config.DifficultyManager
	gen        *track.Generator
	loop       *core.Loop
	motor      *Motor
	steering   *Steering
	session    *Session

	runID      uuid.UUID
	start      mgl64.Vec3
	steer      float64
	elapsed    float64
	calibrated bool

	solids []obstacle.Solid
	balls  []*hazard.Ball
}

// New creates a game. Call Reset before the first frame.
func New(cfg config.RunnerConfig, opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	player := opts.Sound
	if player == nil {
		player = sound.Silent{}
	}
	tag := opts.Language
	if tag == (language.Tag{}) {
		tag = language.English
	}
	return &Game{
		cfg:      cfg,
		logger:   logger.With("component", "runner"),
		sound:    player,
		printer:  message.NewPrinter(tag),
		steering: NewSteering(cfg.Player),
		motor:    NewMotor(cfg.Player, mgl64.Vec3{}),
	}
}

// ID returns the identifier used for score records.
func (g *Game) ID() string { return "rolling-stone" }

// Title returns the display name.
func (g *Game) Title() string { return "Rolling Stone" }

// Config returns the configuration in use.
func (g *Game) Config() config.RunnerConfig { return g.cfg }

// Reset starts a new run with the runtime's seed. Catalog and generator
// problems are returned; the run still starts with whatever could be built.
func (g *Game) Reset(runtime core.RuntimeConfig) error {
	g.runtime = runtime
	rng := rand.New(rand.NewSource(runtime.Seed))

	var errs []error
	if g.scripts == nil {
		engine, err := scripting.NewEngine(g.logger)
		if err != nil {
			g.logger.Warn("scripting disabled", "err", err)
		} else {
			if err := engine.LoadDir(g.cfg.Scripts.Dir); err != nil {
				g.logger.Warn("user scripts not loaded", "dir", g.cfg.Scripts.Dir, "err", err)
			}
			g.scripts = engine
		}
	}

	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	env := &registry.Env{
		Config:  g.cfg,
		Rng:     rng,
		Logger:  g.logger,
		Scripts: g.scripts,
		Tuning:  g,
	}
	prefabs, err := registry.Catalog(env, g.cfg.Segments)
	if err != nil {
		g.logger.Error("segment catalog", "err", err)
		errs = append(errs, err)
	}

	if g.gen != nil {
		g.gen.Teardown()
	}
	g.gen = track.New(trackConfig(g.cfg.Track), prefabs, track.ProgressFunc(g.progress), runtime.Seed, g.logger)

	g.start = mgl64.Vec3{0, g.cfg.Player.Radius, 1}
	g.motor.Reset(g.start)
	g.steering.Reset()
	g.session = NewSession(g.cfg.Game.RestartDelay, g.sound)
	g.runID = uuid.New()
	g.steer = 0
	g.elapsed = 0
	g.calibrated = false

	g.loop = core.NewLoop(g.cfg.Game.FixedStep, g.cfg.Game.MaxSubSteps)
	g.loop.Add(&ball{g: g})
	g.loop.Add(track.NewDriver(g.gen))
	if err := g.loop.Init(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("runner: reset: %w", errors.Join(errs...))
	}
	return nil
}

func trackConfig(c config.TrackConfig) track.Config {
	tc := track.DefaultConfig()
	tc.Lookahead = c.Lookahead
	tc.RecycleMargin = c.RecycleMargin
	tc.InitialSegments = c.InitialSegments
	tc.Prewarm = c.Prewarm
	tc.MaxSpawnPerTick = c.MaxSpawnPerTick
	return tc
}

// Close releases the track pools and the script VM.
func (g *Game) Close() {
	if g.gen != nil {
		g.gen.Teardown()
	}
	if g.scripts != nil {
		g.scripts.Close()
		g.scripts = nil
	}
}

// Frame advances the run by one frame of dt seconds.
func (g *Game) Frame(in core.InputFrame, dt float64) core.StepResult {
	if g.session == nil {
		return core.StepResult{}
	}

	if in.Has(core.ActionPause) && !g.session.Ended() {
		g.session.TogglePause()
		g.sound.Play(sound.EffectClick)
	}
	if g.session.Paused() {
		return core.StepResult{State: g.State()}
	}
	if g.session.Ended() {
		g.session.Tick(dt)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionJump) {
		g.motor.QueueJump()
	}
	if in.HasTilt && !g.calibrated {
		g.steering.Calibrate(in.Tilt)
		g.calibrated = true
	}
	g.steer = g.steering.Update(in, dt)

	g.loop.Frame(dt)
	g.session.Tick(dt)
	return core.StepResult{State: g.State()}
}

// ball is the player's slot in the loop.
type ball struct {
	core.NopComponent
	g *Game
}

func (b *ball) FixedTick(dt float64) { b.g.fixedTick(dt) }
func (b *ball) Tick(dt float64)      { b.g.motor.Tick(dt) }

func (g *Game) fixedTick(dt float64) {
	if g.session.Ended() {
		return
	}
	g.elapsed += dt
	g.motor.BaseMaxSpeed = g.difficulty.MaxSpeed(g.cfg.Player.MaxForwardSpeed, g.meters(), g.elapsed)
	g.motor.FixedTick(dt, g.steer, g)
	if g.motor.Jumped {
		g.sound.Play(sound.EffectJump)
	}

	if g.motor.Fallen() {
		g.session.EndGame("fell")
		return
	}
	if name, hit := g.collide(); hit {
		g.session.EndGame("hit " + name)
		return
	}
	if goal := g.cfg.Game.GoalDistance; goal > 0 && g.meters() >= goal {
		g.session.CompleteLevel()
	}
}

// SurfaceAt returns the top of the segment ground under p.
func (g *Game) SurfaceAt(p mgl64.Vec3) (float64, bool) {
	seg := g.gen.SegmentAt(p)
	if seg == nil {
		return 0, false
	}
	return seg.Ground().Max.Y(), true
}

// collide tests the ball against every obstacle box and hazard ball on the
// active track.
func (g *Game) collide() (string, bool) {
	g.gather()
	pos, r := g.motor.Position, g.cfg.Player.Radius
	for _, s := range g.solids {
		if s.Box.IntersectsSphere(pos, r) {
			return s.Name, true
		}
	}
	for _, b := range g.balls {
		reach := r + b.Radius
		if b.Position.Sub(pos).LenSqr() < reach*reach {
			return "falling ball", true
		}
	}
	return "", false
}

func (g *Game) gather() {
	g.solids = g.solids[:0]
	g.balls = g.balls[:0]
	for i := 0; i < g.gen.Len(); i++ {
		for _, a := range g.gen.At(i).Attachments() {
			if s, ok := a.(solidSource); ok {
				g.solids = s.AppendSolids(g.solids)
			}
			if b, ok := a.(ballSource); ok {
				g.balls = b.AppendBalls(g.balls)
			}
		}
	}
}

func (g *Game) progress() float64 { return g.motor.Position.Z() }

// Distance returns the track distance covered since the start.
func (g *Game) Distance() float64 {
	d := g.motor.Position.Z() - g.start.Z()
	if d < 0 {
		return 0
	}
	return d
}

func (g *Game) meters() float64 {
	return g.Distance() * g.cfg.Game.MetersPerUnit
}

// HazardInterval scales falling ball cadence by the current difficulty.
func (g *Game) HazardInterval(base float64) float64 {
	return g.difficulty.HazardInterval(base, g.meters(), g.elapsed)
}

// ChunkDensity scales obstacle fields by the current difficulty.
func (g *Game) ChunkDensity(base float64) float64 {
	return g.difficulty.Density(base, g.meters(), g.elapsed)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Score:    int(g.meters()),
		Distance: g.Distance(),
	}
	if g.session != nil {
		st.Paused = g.session.Paused()
		st.GameOver = g.session.Phase() == PhaseOver || g.session.Phase() == PhaseComplete
		st.Completed = g.session.Phase() == PhaseComplete
		st.Reason = g.session.Reason()
	}
	return st
}

// Session returns the run lifecycle.
func (g *Game) Session() *Session { return g.session }

// Motor returns the player ball.
func (g *Game) Motor() *Motor { return g.motor }

// Generator returns the track generator.
func (g *Game) Generator() *track.Generator { return g.gen }

// RunID identifies the current run.
func (g *Game) RunID() uuid.UUID { return g.runID }

// Elapsed returns simulated seconds in the current run.
func (g *Game) Elapsed() float64 { return g.elapsed }

// Result summarizes the run so far.
func (g *Game) Result() Result {
	st := g.State()
	return Result{
		RunID:     g.runID,
		Score:     st.Score,
		Distance:  st.Distance,
		Duration:  time.Duration(g.elapsed * float64(time.Second)),
		Reason:    st.Reason,
		Seed:      g.runtime.Seed,
		Completed: st.Completed,
	}
}

var _ registry.Tuning = (*Game)(nil)
