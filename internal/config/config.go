// Package config provides YAML/TOML runner configuration loading and
// difficulty management.
package config

// RunnerConfig contains all configuration for a run.
type RunnerConfig struct {
	Track      TrackConfig      `yaml:"track" toml:"track"`
	Segments   []SegmentSpec    `yaml:"segments" toml:"segments"`
	Hazards    HazardConfig     `yaml:"hazards" toml:"hazards"`
	Chunk      ChunkConfig      `yaml:"chunk" toml:"chunk"`
	Obstacles  ObstacleConfig   `yaml:"obstacles" toml:"obstacles"`
	Player     PlayerConfig     `yaml:"player" toml:"player"`
	Game       GameConfig       `yaml:"game" toml:"game"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
	Sound      SoundConfig      `yaml:"sound" toml:"sound"`
	View       ViewConfig       `yaml:"view" toml:"view"`
	Scripts    ScriptsConfig    `yaml:"scripts" toml:"scripts"`
}

// TrackConfig defines the streaming generator parameters.
type TrackConfig struct {
	Lookahead       float64 `yaml:"lookahead" toml:"lookahead"`
	RecycleMargin   float64 `yaml:"recycle_margin" toml:"recycle_margin"`
	InitialSegments int     `yaml:"initial_segments" toml:"initial_segments"`
	Prewarm         int     `yaml:"prewarm" toml:"prewarm"` // instances per prefab
	MaxSpawnPerTick int     `yaml:"max_spawn_per_tick" toml:"max_spawn_per_tick"`
	Width           float64 `yaml:"width" toml:"width"` // default segment width
}

// SegmentSpec is one catalog entry. Kind selects the registered behaviour;
// Params tune it (amplitude, frequency, speed, ...).
type SegmentSpec struct {
	Name   string             `yaml:"name" toml:"name"`
	Kind   string             `yaml:"kind" toml:"kind"`
	Length float64            `yaml:"length" toml:"length"`
	Width  float64            `yaml:"width,omitempty" toml:"width,omitempty"`
	Entry  []float64          `yaml:"entry,omitempty" toml:"entry,omitempty"` // x, y, z
	Exit   []float64          `yaml:"exit,omitempty" toml:"exit,omitempty"`   // x, y, z
	Script string             `yaml:"script,omitempty" toml:"script,omitempty"`
	Params map[string]float64 `yaml:"params,omitempty" toml:"params,omitempty"`
}

// Param returns a named parameter or def when absent.
func (s SegmentSpec) Param(name string, def float64) float64 {
	if v, ok := s.Params[name]; ok {
		return v
	}
	return def
}

// HazardConfig defines falling ball emitters.
type HazardConfig struct {
	PoolSize      int         `yaml:"pool_size" toml:"pool_size"`
	Interval      float64     `yaml:"interval" toml:"interval"` // seconds
	LateralMin    float64     `yaml:"lateral_min" toml:"lateral_min"`
	LateralMax    float64     `yaml:"lateral_max" toml:"lateral_max"`
	ForwardMin    float64     `yaml:"forward_min" toml:"forward_min"`
	ForwardMax    float64     `yaml:"forward_max" toml:"forward_max"`
	Torque        float64     `yaml:"torque" toml:"torque"`
	Jitter        float64     `yaml:"jitter" toml:"jitter"`
	Radius        float64     `yaml:"radius" toml:"radius"`
	Gravity       float64     `yaml:"gravity" toml:"gravity"`
	DespawnY      float64     `yaml:"despawn_y" toml:"despawn_y"`
	SpawnOnEnable bool        `yaml:"spawn_on_enable" toml:"spawn_on_enable"`
	Anchors       [][]float64 `yaml:"anchors" toml:"anchors"` // local x, y, z
}

// ChunkConfig defines procedurally filled segments.
type ChunkConfig struct {
	Width        float64   `yaml:"width" toml:"width"`
	GroundY      float64   `yaml:"ground_y" toml:"ground_y"`
	Lift         float64   `yaml:"lift" toml:"lift"`
	Slots        int       `yaml:"slots" toml:"slots"`
	Density      float64   `yaml:"density" toml:"density"` // 0.0 - 1.0
	ObstacleSize []float64 `yaml:"obstacle_size" toml:"obstacle_size"`
}

// ObstacleConfig holds mover defaults used when a segment has no params.
type ObstacleConfig struct {
	Amplitude        float64 `yaml:"amplitude" toml:"amplitude"`
	Frequency        float64 `yaml:"frequency" toml:"frequency"`
	CrusherAmplitude float64 `yaml:"crusher_amplitude" toml:"crusher_amplitude"`
	CrusherFrequency float64 `yaml:"crusher_frequency" toml:"crusher_frequency"`
	RotatorSpeed     float64 `yaml:"rotator_speed" toml:"rotator_speed"` // degrees per second
}

// PlayerConfig defines the ball motor and input handling.
type PlayerConfig struct {
	Radius              float64 `yaml:"radius" toml:"radius"`
	ForwardForce        float64 `yaml:"forward_force" toml:"forward_force"`
	MaxForwardSpeed     float64 `yaml:"max_forward_speed" toml:"max_forward_speed"`
	SpeedGrowth         float64 `yaml:"speed_growth" toml:"speed_growth"` // cap increase per second
	LateralAcceleration float64 `yaml:"lateral_acceleration" toml:"lateral_acceleration"`
	MaxSideSpeed        float64 `yaml:"max_side_speed" toml:"max_side_speed"`
	AirControl          float64 `yaml:"air_control" toml:"air_control"`
	JumpVelocity        float64 `yaml:"jump_velocity" toml:"jump_velocity"`
	JumpBuffer          float64 `yaml:"jump_buffer" toml:"jump_buffer"` // seconds
	Gravity             float64 `yaml:"gravity" toml:"gravity"`
	FallY               float64 `yaml:"fall_y" toml:"fall_y"`
	TiltDeadZone        float64 `yaml:"tilt_dead_zone" toml:"tilt_dead_zone"`
	TiltMax             float64 `yaml:"tilt_max" toml:"tilt_max"`
	TiltSensitivity     float64 `yaml:"tilt_sensitivity" toml:"tilt_sensitivity"`
	KeyboardSensitivity float64 `yaml:"keyboard_sensitivity" toml:"keyboard_sensitivity"`
	SteerSmoothing      float64 `yaml:"steer_smoothing" toml:"steer_smoothing"`
}

// GameConfig defines session flow.
type GameConfig struct {
	FixedStep     float64 `yaml:"fixed_step" toml:"fixed_step"` // physics interval in seconds
	MaxSubSteps   int     `yaml:"max_sub_steps" toml:"max_sub_steps"`
	RestartDelay  float64 `yaml:"restart_delay" toml:"restart_delay"`
	GoalDistance  float64 `yaml:"goal_distance" toml:"goal_distance"` // 0 = endless
	MetersPerUnit float64 `yaml:"meters_per_unit" toml:"meters_per_unit"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled" toml:"enabled"`
	InitialLevel float64           `yaml:"initial_level" toml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression" toml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling" toml:"scaling"`
}

// ProgressionConfig defines how difficulty increases during a run.
type ProgressionConfig struct {
	Type  string  `yaml:"type" toml:"type"`     // "distance", "time", or "none"
	MaxAt float64 `yaml:"max_at" toml:"max_at"` // meters or seconds at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier" toml:"speed_multiplier"`     // added to max speed at max difficulty
	IntervalReduction float64 `yaml:"interval_reduction" toml:"interval_reduction"` // fraction of hazard interval removed
	DensityIncrease   float64 `yaml:"density_increase" toml:"density_increase"`     // added to chunk density
}

// SoundConfig defines audio output.
type SoundConfig struct {
	Enabled    bool    `yaml:"enabled" toml:"enabled"`
	Volume     float64 `yaml:"volume" toml:"volume"` // 0.0 - 1.0
	SampleRate int     `yaml:"sample_rate" toml:"sample_rate"`
}

// ViewConfig defines the top-down projection.
type ViewConfig struct {
	ColumnsPerUnit float64 `yaml:"columns_per_unit" toml:"columns_per_unit"`
	UnitsPerRow    float64 `yaml:"units_per_row" toml:"units_per_row"`
	RowsBehind     int     `yaml:"rows_behind" toml:"rows_behind"`
}

// ScriptsConfig points at user Lua scripts.
type ScriptsConfig struct {
	Dir string `yaml:"dir" toml:"dir"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	}
	return "", false
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
