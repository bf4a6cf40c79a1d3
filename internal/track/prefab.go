// Package track streams level segments ahead of a moving player and recycles
// them behind it. Segments come from per-prefab pools, so once the pools are
// warm the generator runs without allocating.
package track

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/rolling-stone/internal/core"
)

// DefaultWidth is the ground width used when a prefab does not declare one.
const DefaultWidth = 8.0

// Prefab describes one kind of segment. Anchor offsets are local to the
// segment origin; the generator chains segments along Z only.
type Prefab struct {
	Name   string
	Kind   string
	Length float64
	Width  float64

	// Entry is where the previous segment connects. Nil means the origin.
	Entry *mgl64.Vec3
	// Exit is where the next segment connects. Nil means the segment has no
	// exit anchor and its origin is used instead.
	Exit *mgl64.Vec3

	// Attach is called once for every instance the pool constructs. It is
	// where behaviour (movers, emitters, chunk content) is bound.
	Attach func(seg *Segment)
}

// EntryOffset returns the entry anchor, defaulting to the origin.
func (p *Prefab) EntryOffset() mgl64.Vec3 {
	if p.Entry == nil {
		return mgl64.Vec3{}
	}
	return *p.Entry
}

// ExitOffset returns the exit anchor and whether one is declared. Without an
// exit anchor the origin stands in for it.
func (p *Prefab) ExitOffset() (mgl64.Vec3, bool) {
	if p.Exit == nil {
		return mgl64.Vec3{}, false
	}
	return *p.Exit, true
}

// Advance is how far the prefab moves the track end along Z.
func (p *Prefab) Advance() float64 {
	exit, _ := p.ExitOffset()
	return exit[core.AxisZ] - p.EntryOffset()[core.AxisZ]
}

// GroundWidth returns the declared width or DefaultWidth.
func (p *Prefab) GroundWidth() float64 {
	if p.Width <= 0 {
		return DefaultWidth
	}
	return p.Width
}

// WithDefaultAnchors fills missing anchors the way authored content expects:
// entry at the origin and exit at (0, 0, Length) when a length is declared.
// A prefab without length and exit is left degenerate.
func (p Prefab) WithDefaultAnchors() Prefab {
	if p.Entry == nil {
		p.Entry = &mgl64.Vec3{}
	}
	if p.Exit == nil && p.Length > 0 {
		p.Exit = &mgl64.Vec3{0, 0, p.Length}
	}
	return p
}

// ValidatePrefabs checks a catalog before it is handed to a generator. An
// empty catalog reports core.ErrConfigurationMissing. Prefabs that do not
// advance the track would make the generator spin, so they are rejected.
func ValidatePrefabs(prefabs []Prefab) error {
	if len(prefabs) == 0 {
		return fmt.Errorf("track: no prefabs: %w", core.ErrConfigurationMissing)
	}
	if _, err := usablePrefabs(prefabs); err != nil {
		return fmt.Errorf("track: invalid prefabs: %w", err)
	}
	return nil
}

// usablePrefabs returns the prefabs the generator can chain, in catalog
// order, and the problems of the ones left out.
func usablePrefabs(prefabs []Prefab) ([]Prefab, error) {
	var errs []error
	usable := make([]Prefab, 0, len(prefabs))
	seen := make(map[string]bool, len(prefabs))
	for i := range prefabs {
		p := &prefabs[i]
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		switch adv := p.Advance(); {
		case p.Name != "" && seen[p.Name]:
			errs = append(errs, fmt.Errorf("prefab %s: duplicate name", name))
		case p.Length < 0:
			errs = append(errs, fmt.Errorf("prefab %s: negative length %g", name, p.Length))
		case adv <= 0:
			errs = append(errs, fmt.Errorf("prefab %s: exit must lie ahead of entry on Z (advance %g)", name, adv))
		default:
			usable = append(usable, *p)
		}
		if p.Name != "" {
			seen[p.Name] = true
		}
	}
	return usable, errors.Join(errs...)
}
