package registry

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/rolling-stone/internal/config"
	"github.com/vovakirdan/rolling-stone/internal/scripting"
	"github.com/vovakirdan/rolling-stone/internal/track"
)

// Tuning supplies difficulty-adjusted values when a segment is placed.
type Tuning interface {
	HazardInterval(base float64) float64
	ChunkDensity(base float64) float64
}

// FixedTuning returns base values unchanged.
type FixedTuning struct{}

func (FixedTuning) HazardInterval(base float64) float64 { return base }
func (FixedTuning) ChunkDensity(base float64) float64   { return base }

// Env carries the session services kind factories need.
type Env struct {
	Config  config.RunnerConfig
	Rng     *rand.Rand
	Logger  *log.Logger
	Scripts *scripting.Engine // nil turns scripted kinds static
	Tuning  Tuning
}

func (env *Env) defaults() {
	if env.Logger == nil {
		env.Logger = log.New(io.Discard)
	}
	if env.Rng == nil {
		env.Rng = rand.New(rand.NewSource(1))
	}
	if env.Tuning == nil {
		env.Tuning = FixedTuning{}
	}
}

// Catalog builds track prefabs from catalog entries. Unknown kinds and bad
// anchors are reported together.
func Catalog(env *Env, specs []config.SegmentSpec) ([]track.Prefab, error) {
	env.defaults()

	var errs []error
	prefabs := make([]track.Prefab, 0, len(specs))
	for i, spec := range specs {
		name := spec.Name
		if name == "" {
			name = fmt.Sprintf("%s#%d", spec.Kind, i)
			spec.Name = name
		}
		f, err := Lookup(spec.Kind)
		if err != nil {
			errs = append(errs, fmt.Errorf("segment %s: %w", name, err))
			continue
		}
		attach, err := f(env, spec)
		if err != nil {
			errs = append(errs, fmt.Errorf("segment %s: %w", name, err))
			continue
		}

		width := spec.Width
		if width <= 0 {
			width = env.Config.Track.Width
		}
		p := track.Prefab{
			Name:   name,
			Kind:   spec.Kind,
			Length: spec.Length,
			Width:  width,
			Attach: attach,
		}
		if p.Entry, err = anchor(spec.Entry); err != nil {
			errs = append(errs, fmt.Errorf("segment %s: entry: %w", name, err))
			continue
		}
		if p.Exit, err = anchor(spec.Exit); err != nil {
			errs = append(errs, fmt.Errorf("segment %s: exit: %w", name, err))
			continue
		}
		prefabs = append(prefabs, p.WithDefaultAnchors())
	}

	if len(errs) > 0 {
		return prefabs, fmt.Errorf("registry: catalog: %w", errors.Join(errs...))
	}
	return prefabs, nil
}

func anchor(v []float64) (*mgl64.Vec3, error) {
	if v == nil {
		return nil, nil
	}
	if len(v) != 3 {
		return nil, fmt.Errorf("need 3 components, got %d", len(v))
	}
	return &mgl64.Vec3{v[0], v[1], v[2]}, nil
}

func vec3(v []float64, def mgl64.Vec3) mgl64.Vec3 {
	if len(v) != 3 {
		return def
	}
	return mgl64.Vec3{v[0], v[1], v[2]}
}
