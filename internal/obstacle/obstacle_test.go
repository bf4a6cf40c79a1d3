package obstacle

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/rolling-stone/internal/core"
	"github.com/vovakirdan/rolling-stone/internal/scripting"
	"github.com/vovakirdan/rolling-stone/internal/track"
)

func segmentAt(z float64) *track.Segment {
	p := track.Prefab{Name: "test", Length: 25}.WithDefaultAnchors()
	return &track.Segment{Prefab: &p, Origin: mgl64.Vec3{0, 0, z}}
}

func TestOscillatorsStayWithinAmplitude(t *testing.T) {
	tests := []struct {
		name  string
		mover *Oscillator
		axis  int
	}{
		{"side to side", SideToSide(2, 1), core.AxisX},
		{"crusher", Crusher(3, 2), core.AxisY},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o := New("block", core.BoxAround(mgl64.Vec3{0, 1, 5}, mgl64.Vec3{2, 2, 2}), tc.mover, rand.New(rand.NewSource(1)))
			o.Activate(segmentAt(100))

			rest := o.Rest.Center().Add(mgl64.Vec3{0, 0, 100})
			for i := 0; i < 500; i++ {
				o.Tick(0.016)
				d := o.Box().Center().Sub(rest)
				for axis := 0; axis < 3; axis++ {
					limit := 1e-9
					if axis == tc.axis {
						limit = tc.mover.Amplitude + 1e-9
					}
					if math.Abs(d[axis]) > limit {
						t.Fatalf("tick %d: offset %v exceeds limit on axis %d", i, d, axis)
					}
				}
			}
		})
	}
}

func TestPhaseRerandomizedOnActivation(t *testing.T) {
	m := SideToSide(2, 1)
	rng := rand.New(rand.NewSource(4))

	m.Start(rng)
	first := m.phase
	m.Start(rng)

	if m.phase == first {
		t.Error("phase should change between activations")
	}
	if m.phase < 0 || m.phase >= 2*math.Pi {
		t.Errorf("phase %g outside [0, 2pi)", m.phase)
	}
}

func TestRotatorSpinsAtConstantRate(t *testing.T) {
	r := &Rotator{Speed: 90}
	r.Start(rand.New(rand.NewSource(1)))

	if _, yaw := r.Pose(1); yaw != 90 {
		t.Errorf("yaw after 1s = %g, expected 90", yaw)
	}
	if _, yaw := r.Pose(5); yaw != 90 {
		t.Errorf("yaw after 5s = %g, expected wrap to 90", yaw)
	}
}

func TestRotatedBoxEnclosesFootprint(t *testing.T) {
	bar := core.BoxAround(mgl64.Vec3{}, mgl64.Vec3{6, 1, 1})
	o := New("bar", bar, &Rotator{Speed: 90}, rand.New(rand.NewSource(1)))
	o.Activate(segmentAt(0))

	o.Tick(1) // quarter turn
	b := o.Box()
	if math.Abs((b.Max.Z()-b.Min.Z())-6) > 1e-9 || math.Abs((b.Max.X()-b.Min.X())-1) > 1e-9 {
		t.Errorf("quarter-turn box = %+v, expected 1 wide and 6 deep", b)
	}
}

func TestInactiveObstacleHasNoSolids(t *testing.T) {
	o := New("block", core.BoxAround(mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}), nil, rand.New(rand.NewSource(1)))
	if got := o.AppendSolids(nil); len(got) != 0 {
		t.Error("obstacle should not collide before activation")
	}

	o.Activate(segmentAt(10))
	if got := o.AppendSolids(nil); len(got) != 1 || got[0].Box.Center().Z() != 10 {
		t.Errorf("AppendSolids() = %+v, expected one box at z=10", got)
	}

	o.Deactivate()
	if got := o.AppendSolids(nil); len(got) != 0 {
		t.Error("obstacle should not collide after deactivation")
	}
}

func TestScriptedMotion(t *testing.T) {
	eng, err := scripting.NewEngine(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer eng.Close()

	o := New("hopper", core.BoxAround(mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}), &Scripted{Engine: eng, Func: "hop"}, rand.New(rand.NewSource(1)))
	o.Activate(segmentAt(0))

	for i := 0; i < 100; i++ {
		o.Tick(0.05)
		y := o.Box().Center().Y()
		if y < -1e-9 || y > 2+1e-9 {
			t.Fatalf("hop offset %g outside [0, 2]", y)
		}
	}
}
