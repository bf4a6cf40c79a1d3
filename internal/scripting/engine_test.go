package scripting

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(nil)
	if err != nil {
		t.Fatalf("NewEngine() = %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func TestBuiltinMotions(t *testing.T) {
	e := newTestEngine(t)

	for _, name := range []string{"wobble", "orbit", "hop"} {
		if !e.Has(name) {
			t.Errorf("builtin motion %q not loaded", name)
		}
	}

	got := e.Motion("orbit", 0, 0)
	if math.Abs(got.X()-2) > 1e-9 || got.Y() != 0 || math.Abs(got.Z()) > 1e-9 {
		t.Errorf("orbit(0, 0) = %v, expected [2 0 0]", got)
	}
}

func TestMotionPartialReturns(t *testing.T) {
	e := newTestEngine(t)
	if err := e.LoadString("inline", "function lift(t, phase) return 0, t * 2 end"); err != nil {
		t.Fatal(err)
	}

	got := e.Motion("lift", 1.5, 0)
	if got.X() != 0 || got.Y() != 3 || got.Z() != 0 {
		t.Errorf("lift(1.5) = %v, expected [0 3 0]", got)
	}
}

func TestMotionFailuresFallBackToZero(t *testing.T) {
	e := newTestEngine(t)
	if err := e.LoadString("broken", "function broken(t, phase) error('boom') end"); err != nil {
		t.Fatal(err)
	}

	tests := []string{"broken", "missing"}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 3; i++ {
				if got := e.Motion(name, 1, 0); got.Len() != 0 {
					t.Errorf("Motion(%q) = %v, expected zero", name, got)
				}
			}
			if !e.failed[name] {
				t.Errorf("failure of %q not recorded", name)
			}
		})
	}

	// The stack must be balanced after failures.
	if top := e.vm.GetTop(); top != 0 {
		t.Errorf("stack top = %d after failing calls, expected 0", top)
	}
}

func TestLoadStringCompileError(t *testing.T) {
	e := newTestEngine(t)
	if err := e.LoadString("bad", "function ("); err == nil {
		t.Error("expected compile error")
	}
}

func TestLoadDir(t *testing.T) {
	e := newTestEngine(t)
	dir := t.TempDir()
	src := "function spin(t, phase) return 0, 0, t end\n"
	if err := os.WriteFile(filepath.Join(dir, "spin.lua"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not lua"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := e.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir() = %v", err)
	}
	if got := e.Motion("spin", 4, 0); got.Z() != 4 {
		t.Errorf("spin(4) = %v, expected z=4", got)
	}
	if err := e.LoadDir(filepath.Join(dir, "missing")); err != nil {
		t.Errorf("LoadDir(missing) = %v, expected nil", err)
	}
}
