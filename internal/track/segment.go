package track

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/rolling-stone/internal/core"
)

// GroundThickness is the depth of a segment's ground slab below its origin.
const GroundThickness = 1.0

// Attachment is behaviour bound to a segment instance. It is activated each
// time the segment is placed on the track and deactivated when the segment
// goes back to its pool.
type Attachment interface {
	Activate(seg *Segment)
	Deactivate()
	FixedTick(dt float64)
	Tick(dt float64)
}

// Segment is one pooled piece of track.
type Segment struct {
	ID     int
	Prefab *Prefab
	// Origin is the world position of the segment's local origin.
	Origin mgl64.Vec3

	kind        int
	attachments []Attachment
	// entryZ is the world Z the segment was chained at. Anchors on the
	// travel axis are derived from it so neighbours meet exactly.
	entryZ float64
	placed bool
}

func newSegment(id, kind int, prefab *Prefab) *Segment {
	s := &Segment{ID: id, kind: kind, Prefab: prefab}
	if prefab.Attach != nil {
		prefab.Attach(s)
	}
	return s
}

// Attach binds behaviour to the segment. Only call it from Prefab.Attach.
func (s *Segment) Attach(a Attachment) {
	s.attachments = append(s.attachments, a)
}

// Attachments returns the bound behaviour.
func (s *Segment) Attachments() []Attachment {
	return s.attachments
}

// Kind returns the index of the segment's prefab in the generator catalog.
func (s *Segment) Kind() int {
	return s.kind
}

// place puts the entry anchor at entryZ; x and y are the origin's lateral
// and vertical position.
func (s *Segment) place(x, y, entryZ float64) {
	s.Origin = mgl64.Vec3{x, y, entryZ - s.Prefab.EntryOffset()[core.AxisZ]}
	s.entryZ = entryZ
	s.placed = true
}

// EntryWorld returns the entry anchor in world space.
func (s *Segment) EntryWorld() mgl64.Vec3 {
	e := s.Origin.Add(s.Prefab.EntryOffset())
	if s.placed {
		e[core.AxisZ] = s.entryZ
	}
	return e
}

// ExitWorld returns the exit anchor in world space, or the origin when the
// prefab declares no exit.
func (s *Segment) ExitWorld() mgl64.Vec3 {
	exit, _ := s.Prefab.ExitOffset()
	e := s.Origin.Add(exit)
	if s.placed {
		e[core.AxisZ] = s.ExitZ()
	}
	return e
}

// HasExit reports whether the prefab declares an exit anchor.
func (s *Segment) HasExit() bool {
	_, ok := s.Prefab.ExitOffset()
	return ok
}

// ExitZ is the exit anchor on the travel axis: the entry plus the prefab's
// advance.
func (s *Segment) ExitZ() float64 {
	if s.placed {
		return s.entryZ + s.Prefab.Advance()
	}
	exit, _ := s.Prefab.ExitOffset()
	return s.Origin[core.AxisZ] + exit[core.AxisZ]
}

// Ground returns the walkable slab of the segment: full width, top face at
// the origin height, spanning entry to exit on Z.
func (s *Segment) Ground() core.Box {
	half := s.Prefab.GroundWidth() / 2
	return core.Box{
		Min: mgl64.Vec3{s.Origin.X() - half, s.Origin.Y() - GroundThickness, s.EntryWorld().Z()},
		Max: mgl64.Vec3{s.Origin.X() + half, s.Origin.Y(), s.ExitZ()},
	}
}

// Over reports whether p lies above the ground footprint (ignoring height).
func (s *Segment) Over(p mgl64.Vec3) bool {
	g := s.Ground()
	return p.X() >= g.Min.X() && p.X() <= g.Max.X() &&
		p.Z() >= g.Min.Z() && p.Z() <= g.Max.Z()
}

func (s *Segment) activate() {
	for _, a := range s.attachments {
		a.Activate(s)
	}
}

func (s *Segment) deactivate() {
	for _, a := range s.attachments {
		a.Deactivate()
	}
}
