package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}

// DefaultRunnerConfig returns the hardcoded configuration. It matches
// defaults/runner.yaml and backs it up if the embedded file fails to parse.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Track: TrackConfig{
			Lookahead:       40,
			RecycleMargin:   30,
			InitialSegments: 10,
			Prewarm:         4,
			MaxSpawnPerTick: 64,
			Width:           8,
		},
		Segments: []SegmentSpec{
			{Name: "straight", Kind: "plain", Length: 25},
			{Name: "sweeper", Kind: "side_to_side", Length: 25},
			{Name: "spinner", Kind: "rotator", Length: 25},
			{Name: "crusher", Kind: "crusher", Length: 25},
			{Name: "rockfall", Kind: "falling_balls", Length: 25},
			{Name: "field", Kind: "chunk", Length: 25, Width: 10},
			{Name: "wobbler", Kind: "scripted", Length: 25, Script: "wobble"},
		},
		Hazards: HazardConfig{
			PoolSize:      10,
			Interval:      1.0,
			LateralMin:    -1.5,
			LateralMax:    1.5,
			ForwardMin:    -0.5,
			ForwardMax:    0.5,
			Torque:        2,
			Jitter:        0.25,
			Radius:        0.5,
			Gravity:       9.81,
			DespawnY:      -10,
			SpawnOnEnable: true,
			Anchors: [][]float64{
				{-2, 8, 8},
				{0, 8, 12.5},
				{2, 8, 17},
			},
		},
		Chunk: ChunkConfig{
			Width:        10,
			GroundY:      0,
			Lift:         1.5,
			Slots:        5,
			Density:      0.3,
			ObstacleSize: []float64{1, 3, 1},
		},
		Obstacles: ObstacleConfig{
			Amplitude:        2,
			Frequency:        1,
			CrusherAmplitude: 2,
			CrusherFrequency: 1,
			RotatorSpeed:     90,
		},
		Player: PlayerConfig{
			Radius:              0.5,
			ForwardForce:        35,
			MaxForwardSpeed:     12,
			SpeedGrowth:         0.75,
			LateralAcceleration: 40,
			MaxSideSpeed:        8,
			AirControl:          0.5,
			JumpVelocity:        7.5,
			JumpBuffer:          0.15,
			Gravity:             9.81,
			FallY:               -5,
			TiltDeadZone:        0.05,
			TiltMax:             0.75,
			TiltSensitivity:     2.5,
			KeyboardSensitivity: 1,
			SteerSmoothing:      12,
		},
		Game: GameConfig{
			FixedStep:     0.02,
			MaxSubSteps:   5,
			RestartDelay:  1,
			GoalDistance:  0,
			MetersPerUnit: 1,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "distance",
				MaxAt: 1500,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:   0.5,
				IntervalReduction: 0.5,
				DensityIncrease:   0.3,
			},
		},
		Sound: SoundConfig{
			Enabled:    true,
			Volume:     0.6,
			SampleRate: 44100,
		},
		View: ViewConfig{
			ColumnsPerUnit: 3,
			UnitsPerRow:    1,
			RowsBehind:     4,
		},
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Hazards.Interval = 1.5
		cfg.Chunk.Density = 0.2
		cfg.Player.MaxForwardSpeed = 10
	case DifficultyHard:
		cfg.Hazards.Interval = 0.7
		cfg.Chunk.Density = 0.45
		cfg.Player.MaxForwardSpeed = 14
	}
}
