// Package chunk fills a segment's interior with a ground slab and randomly
// placed obstacles.
package chunk

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/rolling-stone/internal/core"
)

// Config describes the chunk layout. Coordinates are local: X runs from 0 to
// Width, Z from 0 to Depth.
type Config struct {
	Width           float64
	Depth           float64
	GroundY         float64
	GroundThickness float64
	Lift            float64 // obstacle centre height above GroundY
	Slots           int     // obstacle placement attempts per build
	Density         float64 // probability that a slot gets an obstacle
	ObstacleSize    mgl64.Vec3
}

// DefaultConfig returns the stock layout.
func DefaultConfig() Config {
	return Config{
		Width:           10,
		Depth:           25,
		GroundY:         0,
		GroundThickness: 1,
		Lift:            1.5,
		Slots:           5,
		Density:         0.3,
		ObstacleSize:    mgl64.Vec3{1, 3, 1},
	}
}

// Content is what one build produced.
type Content struct {
	Ground    core.Box
	Obstacles []core.Box
}

// Builder populates chunk content. Rebuilding discards the previous content
// and reuses its storage.
type Builder struct {
	cfg     Config
	rng     *rand.Rand
	content Content
	builds  int
}

// New creates a builder. rng is shared with the caller so a seeded session
// stays reproducible.
func New(cfg Config, rng *rand.Rand) *Builder {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if cfg.Slots < 0 {
		cfg.Slots = 0
	}
	return &Builder{
		cfg:     cfg,
		rng:     rng,
		content: Content{Obstacles: make([]core.Box, 0, cfg.Slots)},
	}
}

// SetDensity changes the obstacle probability for later builds.
func (b *Builder) SetDensity(d float64) {
	b.cfg.Density = core.ClampF(d, 0, 1)
}

// Config returns the layout in use.
func (b *Builder) Config() Config { return b.cfg }

// Build clears previous content, lays the ground slab and samples each
// obstacle slot.
func (b *Builder) Build() Content {
	b.content.Obstacles = b.content.Obstacles[:0]

	c := b.cfg
	b.content.Ground = core.BoxAround(
		mgl64.Vec3{c.Width / 2, c.GroundY - c.GroundThickness/2, c.Depth / 2},
		mgl64.Vec3{c.Width, c.GroundThickness, c.Depth},
	)

	y := c.GroundY + c.Lift
	for i := 0; i < c.Slots; i++ {
		if b.rng.Float64() < c.Density {
			x := b.rng.Float64() * c.Width
			b.content.Obstacles = append(b.content.Obstacles,
				core.BoxAround(mgl64.Vec3{x, y, c.Depth / 2}, c.ObstacleSize))
		}
	}

	b.builds++
	return b.content
}

// Content returns the last build.
func (b *Builder) Content() Content { return b.content }

// Builds returns how many times Build ran.
func (b *Builder) Builds() int { return b.builds }
