package registry

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/rolling-stone/internal/config"
	"github.com/vovakirdan/rolling-stone/internal/obstacle"
	"github.com/vovakirdan/rolling-stone/internal/scripting"
	"github.com/vovakirdan/rolling-stone/internal/track"
)

func newEnv(t *testing.T) *Env {
	t.Helper()
	engine, err := scripting.NewEngine(nil)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	t.Cleanup(engine.Close)
	return &Env{
		Config:  config.DefaultRunnerConfig(),
		Rng:     rand.New(rand.NewSource(7)),
		Scripts: engine,
	}
}

func TestBuiltinKindsRegistered(t *testing.T) {
	for _, id := range []string{"plain", "side_to_side", "crusher", "rotator", "falling_balls", "chunk", "scripted"} {
		if !Exists(id) {
			t.Errorf("kind %q not registered", id)
		}
	}
	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Register() with a duplicate id did not panic")
		}
	}()
	Register("plain", "again", plainKind)
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("teleporter"); err == nil {
		t.Error("Lookup(teleporter) expected error")
	}
}

func TestCatalogDefault(t *testing.T) {
	env := newEnv(t)
	prefabs, err := Catalog(env, env.Config.Segments)
	if err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}
	if len(prefabs) != len(env.Config.Segments) {
		t.Fatalf("Catalog() returned %d prefabs, expected %d", len(prefabs), len(env.Config.Segments))
	}
	for _, p := range prefabs {
		exit, ok := p.ExitOffset()
		if !ok || exit.Z() != p.Length {
			t.Errorf("%s exit = %v (%v), expected z=%g", p.Name, exit, ok, p.Length)
		}
		if p.Width <= 0 {
			t.Errorf("%s width = %g, expected the track default", p.Name, p.Width)
		}
	}
	if err := track.ValidatePrefabs(prefabs); err != nil {
		t.Errorf("ValidatePrefabs() = %v", err)
	}
}

func TestCatalogAnchors(t *testing.T) {
	env := newEnv(t)
	prefabs, err := Catalog(env, []config.SegmentSpec{
		{Name: "ramp", Kind: "plain", Length: 10, Entry: []float64{0, 0, 2}, Exit: []float64{0, 1, 12}},
	})
	if err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}
	if got := prefabs[0].EntryOffset(); got != (mgl64.Vec3{0, 0, 2}) {
		t.Errorf("EntryOffset() = %v, expected (0, 0, 2)", got)
	}
	if got := prefabs[0].Advance(); got != 10 {
		t.Errorf("Advance() = %g, expected 10", got)
	}
}

func TestCatalogReportsEveryProblem(t *testing.T) {
	env := newEnv(t)
	_, err := Catalog(env, []config.SegmentSpec{
		{Name: "a", Kind: "teleporter", Length: 10},
		{Name: "b", Kind: "plain", Length: 10, Exit: []float64{1, 2}},
		{Name: "c", Kind: "plain", Length: 10},
	})
	if err == nil {
		t.Fatal("Catalog() expected error")
	}
	for _, want := range []string{"segment a", "segment b"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

// place runs a catalog entry through a generator so the attachments see a
// real activation.
func place(t *testing.T, env *Env, spec config.SegmentSpec) *track.Segment {
	t.Helper()
	prefabs, err := Catalog(env, []config.SegmentSpec{spec})
	if err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}
	g := track.New(track.DefaultConfig(), prefabs, track.ProgressFunc(func() float64 { return 0 }), 1, nil)
	g.BuildInitial(1)
	return g.At(0)
}

type solidSource interface {
	AppendSolids([]obstacle.Solid) []obstacle.Solid
}

func TestSideToSideAttachesObstacles(t *testing.T) {
	env := newEnv(t)
	seg := place(t, env, config.SegmentSpec{Name: "sweeper", Kind: "side_to_side", Length: 25, Params: map[string]float64{"count": 3}})

	var solids []obstacle.Solid
	for _, a := range seg.Attachments() {
		if s, ok := a.(solidSource); ok {
			solids = s.AppendSolids(solids)
		}
	}
	if len(solids) != 3 {
		t.Fatalf("got %d solids, expected 3", len(solids))
	}
	for _, s := range solids {
		if s.Name != "sweeper" {
			t.Errorf("solid name = %q, expected sweeper", s.Name)
		}
		if z := s.Box.Center().Z(); z <= 0 || z >= 25 {
			t.Errorf("solid at z=%g, expected inside the segment", z)
		}
	}
}

func TestFallingBallsFollowSegment(t *testing.T) {
	env := newEnv(t)
	seg := place(t, env, config.SegmentSpec{Name: "rockfall", Kind: "falling_balls", Length: 25})

	if len(seg.Attachments()) != 1 {
		t.Fatalf("got %d attachments, expected 1", len(seg.Attachments()))
	}
	a, ok := seg.Attachments()[0].(*emitterAttachment)
	if !ok {
		t.Fatalf("attachment is %T, expected emitter", seg.Attachments()[0])
	}
	if !a.Emitter().Enabled() {
		t.Error("emitter not enabled after placement")
	}
	a.Tick(0.016)
	balls := a.AppendBalls(nil)
	if len(balls) != 1 {
		t.Fatalf("got %d balls after first tick, expected 1", len(balls))
	}

	a.Deactivate()
	if n := len(a.AppendBalls(nil)); n != 0 {
		t.Errorf("got %d balls after deactivation, expected 0", n)
	}
	if s := a.Emitter().Stats(); s.Active != 0 || s.Pooled != env.Config.Hazards.PoolSize {
		t.Errorf("stats after deactivation = %+v", s)
	}
}

type scaled struct{}

func (scaled) HazardInterval(base float64) float64 { return base / 2 }
func (scaled) ChunkDensity(float64) float64        { return 1 }

func TestTuningAppliedOnActivation(t *testing.T) {
	env := newEnv(t)
	env.Tuning = scaled{}

	seg := place(t, env, config.SegmentSpec{Name: "rockfall", Kind: "falling_balls", Length: 25})
	e := seg.Attachments()[0].(*emitterAttachment).Emitter()
	if e.Interval() != env.Config.Hazards.Interval/2 {
		t.Errorf("Interval() = %g, expected %g", e.Interval(), env.Config.Hazards.Interval/2)
	}

	seg = place(t, env, config.SegmentSpec{Name: "field", Kind: "chunk", Length: 25, Width: 10})
	solids := seg.Attachments()[0].(solidSource).AppendSolids(nil)
	if len(solids) != env.Config.Chunk.Slots {
		t.Errorf("density 1 placed %d obstacles, expected %d", len(solids), env.Config.Chunk.Slots)
	}
	for _, s := range solids {
		c := s.Box.Center()
		if c.X() < -5 || c.X() > 5 {
			t.Errorf("chunk obstacle at x=%g, expected within the centred width", c.X())
		}
		if c.Z() != 12.5 {
			t.Errorf("chunk obstacle at z=%g, expected 12.5", c.Z())
		}
	}
}

func TestScriptedFallsBackToStatic(t *testing.T) {
	env := newEnv(t)
	env.Scripts = nil

	seg := place(t, env, config.SegmentSpec{Name: "wobbler", Kind: "scripted", Length: 25, Script: "wobble"})
	o, ok := seg.Attachments()[0].(*obstacle.Obstacle)
	if !ok {
		t.Fatalf("attachment is %T, expected obstacle", seg.Attachments()[0])
	}
	if _, ok := o.Mover.(obstacle.Static); !ok {
		t.Errorf("mover is %T, expected Static without an engine", o.Mover)
	}
}

func TestScriptedUsesEngine(t *testing.T) {
	env := newEnv(t)
	seg := place(t, env, config.SegmentSpec{Name: "wobbler", Kind: "scripted", Length: 25, Script: "orbit"})
	o := seg.Attachments()[0].(*obstacle.Obstacle)
	if _, ok := o.Mover.(*obstacle.Scripted); !ok {
		t.Errorf("mover is %T, expected Scripted", o.Mover)
	}
}
