package config

import (
	"errors"
	"fmt"
)

// Validate reports every problem in the configuration.
func (c RunnerConfig) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Track.Lookahead <= 0 {
		add("track.lookahead must be positive, got %g", c.Track.Lookahead)
	}
	if c.Track.RecycleMargin < 0 {
		add("track.recycle_margin must not be negative, got %g", c.Track.RecycleMargin)
	}
	if c.Track.InitialSegments < 0 {
		add("track.initial_segments must not be negative, got %d", c.Track.InitialSegments)
	}
	if c.Track.Prewarm < 0 {
		add("track.prewarm must not be negative, got %d", c.Track.Prewarm)
	}

	if len(c.Segments) == 0 {
		add("segments: catalog is empty")
	}
	for i, s := range c.Segments {
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		if s.Kind == "" {
			add("segments[%s]: kind is required", name)
		}
		if s.Length < 0 {
			add("segments[%s]: negative length %g", name, s.Length)
		}
		if s.Entry != nil && len(s.Entry) != 3 {
			add("segments[%s]: entry needs 3 components, got %d", name, len(s.Entry))
		}
		if s.Exit != nil && len(s.Exit) != 3 {
			add("segments[%s]: exit needs 3 components, got %d", name, len(s.Exit))
		}
	}

	h := c.Hazards
	if h.PoolSize <= 0 {
		add("hazards.pool_size must be positive, got %d", h.PoolSize)
	}
	if h.Interval <= 0 {
		add("hazards.interval must be positive, got %g", h.Interval)
	}
	if h.LateralMin > h.LateralMax {
		add("hazards: lateral_min %g > lateral_max %g", h.LateralMin, h.LateralMax)
	}
	if h.ForwardMin > h.ForwardMax {
		add("hazards: forward_min %g > forward_max %g", h.ForwardMin, h.ForwardMax)
	}
	for i, a := range h.Anchors {
		if len(a) != 3 {
			add("hazards.anchors[%d] needs 3 components, got %d", i, len(a))
		}
	}

	if c.Chunk.Width <= 0 {
		add("chunk.width must be positive, got %g", c.Chunk.Width)
	}
	if c.Chunk.Slots < 0 {
		add("chunk.slots must not be negative, got %d", c.Chunk.Slots)
	}
	if c.Chunk.Density < 0 || c.Chunk.Density > 1 {
		add("chunk.density must be in [0, 1], got %g", c.Chunk.Density)
	}
	if len(c.Chunk.ObstacleSize) != 3 {
		add("chunk.obstacle_size needs 3 components, got %d", len(c.Chunk.ObstacleSize))
	}

	if c.Player.TiltMax <= c.Player.TiltDeadZone {
		add("player: tilt_max %g must exceed tilt_dead_zone %g", c.Player.TiltMax, c.Player.TiltDeadZone)
	}
	if c.Player.Radius <= 0 {
		add("player.radius must be positive, got %g", c.Player.Radius)
	}

	if c.Game.FixedStep <= 0 {
		add("game.fixed_step must be positive, got %g", c.Game.FixedStep)
	}
	if c.Game.MetersPerUnit <= 0 {
		add("game.meters_per_unit must be positive, got %g", c.Game.MetersPerUnit)
	}

	switch c.Difficulty.Progression.Type {
	case "distance", "time", "none", "":
	default:
		add("difficulty.progression.type %q is not distance, time or none", c.Difficulty.Progression.Type)
	}
	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		add("sound.volume must be in [0, 1], got %g", c.Sound.Volume)
	}

	return errors.Join(errs...)
}
