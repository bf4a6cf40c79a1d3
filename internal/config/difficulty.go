package config

import "math"

// DifficultyManager calculates dynamic run parameters from distance or time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none" && d.cfg.Progression.Type != ""
}

// Level returns the current difficulty level (0.0 to 1.0) given the distance
// travelled in meters and the elapsed run time in seconds.
func (d *DifficultyManager) Level(distance, elapsed float64) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := d.cfg.Progression.MaxAt
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "distance":
		progress = distance / maxAt
	case "time":
		progress = elapsed / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// MaxSpeed scales the ball's forward speed cap.
func (d *DifficultyManager) MaxSpeed(base, distance, elapsed float64) float64 {
	return base * (1.0 + d.Level(distance, elapsed)*d.cfg.Scaling.SpeedMultiplier)
}

// HazardInterval shortens the falling ball interval, never below a fifth of
// the base interval.
func (d *DifficultyManager) HazardInterval(base, distance, elapsed float64) float64 {
	reduction := clampF(d.Level(distance, elapsed)*d.cfg.Scaling.IntervalReduction, 0, 0.8)
	return base * (1.0 - reduction)
}

// Density raises the chunk obstacle probability.
func (d *DifficultyManager) Density(base, distance, elapsed float64) float64 {
	return clampF(base+d.Level(distance, elapsed)*d.cfg.Scaling.DensityIncrease, 0.0, 1.0)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
