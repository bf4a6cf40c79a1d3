package chunk

import (
	"math/rand"
	"testing"
)

func TestBuildGroundSpansWidth(t *testing.T) {
	cfg := DefaultConfig()
	b := New(cfg, rand.New(rand.NewSource(1)))

	c := b.Build()

	if c.Ground.Min.X() != 0 || c.Ground.Max.X() != cfg.Width {
		t.Errorf("ground spans x %g..%g, expected 0..%g", c.Ground.Min.X(), c.Ground.Max.X(), cfg.Width)
	}
	if c.Ground.Max.Y() != cfg.GroundY {
		t.Errorf("ground top at %g, expected %g", c.Ground.Max.Y(), cfg.GroundY)
	}
	if c.Ground.Max.Z()-c.Ground.Min.Z() != cfg.Depth {
		t.Errorf("ground depth %g, expected %g", c.Ground.Max.Z()-c.Ground.Min.Z(), cfg.Depth)
	}
}

func TestObstaclePlacement(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Density = 1
	b := New(cfg, rand.New(rand.NewSource(5)))

	for i := 0; i < 50; i++ {
		c := b.Build()
		if len(c.Obstacles) != cfg.Slots {
			t.Fatalf("build %d: %d obstacles with density 1, expected %d", i, len(c.Obstacles), cfg.Slots)
		}
		for _, o := range c.Obstacles {
			center := o.Center()
			if center.X() < 0 || center.X() >= cfg.Width {
				t.Errorf("obstacle x=%g outside [0, %g)", center.X(), cfg.Width)
			}
			if center.Y() != cfg.GroundY+cfg.Lift {
				t.Errorf("obstacle y=%g, expected %g", center.Y(), cfg.GroundY+cfg.Lift)
			}
		}
	}
}

func TestDensityBounds(t *testing.T) {
	tests := []struct {
		name    string
		density float64
		min     int
		max     int
	}{
		{"empty", 0, 0, 0},
		{"full", 1, 5, 5},
		{"clamped above", 3, 5, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := New(DefaultConfig(), rand.New(rand.NewSource(9)))
			b.SetDensity(tc.density)
			n := len(b.Build().Obstacles)
			if n < tc.min || n > tc.max {
				t.Errorf("got %d obstacles, expected %d..%d", n, tc.min, tc.max)
			}
		})
	}
}

func TestRebuildDiscardsOldContent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Density = 1
	b := New(cfg, rand.New(rand.NewSource(2)))
	b.Build()

	b.SetDensity(0)
	c := b.Build()

	if len(c.Obstacles) != 0 {
		t.Errorf("rebuild kept %d stale obstacles", len(c.Obstacles))
	}
	if b.Builds() != 2 {
		t.Errorf("Builds() = %d, expected 2", b.Builds())
	}
}

func TestRebuildDoesNotAllocate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Density = 0.5
	b := New(cfg, rand.New(rand.NewSource(3)))

	allocs := testing.AllocsPerRun(100, func() { b.Build() })
	if allocs != 0 {
		t.Errorf("Build allocated %.1f times per call, expected 0", allocs)
	}
}
