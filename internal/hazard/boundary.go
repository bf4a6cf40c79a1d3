package hazard

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/rolling-stone/internal/core"
)

// Boundary is a trigger volume in emitter-local space. A ball whose centre
// enters it goes back to the pool.
type Boundary struct {
	Volume core.Box
}

// KillPlane returns a boundary covering everything below y.
func KillPlane(y float64) Boundary {
	inf := math.Inf(1)
	return Boundary{Volume: core.Box{
		Min: mgl64.Vec3{-inf, -inf, -inf},
		Max: mgl64.Vec3{inf, y, inf},
	}}
}

// Triggers reports whether a point, relative to origin, is inside the volume.
func (b Boundary) Triggers(origin, p mgl64.Vec3) bool {
	local := p.Sub(origin)
	for i := 0; i < 3; i++ {
		if local[i] < b.Volume.Min[i] || local[i] > b.Volume.Max[i] {
			return false
		}
	}
	return true
}
