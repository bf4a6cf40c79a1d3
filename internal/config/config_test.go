package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	got, err := Decode(DefaultYAML(), FormatYAML)
	if err != nil {
		t.Fatalf("Decode(default yaml) = %v", err)
	}
	if want := DefaultRunnerConfig(); !reflect.DeepEqual(got, want) {
		t.Errorf("embedded defaults drifted from DefaultRunnerConfig:\n got %+v\nwant %+v", got, want)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadFileYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	data := `
track:
  lookahead: 60
segments:
  - name: only
    kind: plain
    length: 12
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() = %v", err)
	}
	if cfg.Track.Lookahead != 60 {
		t.Errorf("lookahead = %g, expected 60", cfg.Track.Lookahead)
	}
	if cfg.Track.RecycleMargin != 30 {
		t.Errorf("recycle margin = %g, expected default 30", cfg.Track.RecycleMargin)
	}
	if len(cfg.Segments) != 1 || cfg.Segments[0].Name != "only" {
		t.Errorf("segments = %+v, expected the file's catalog only", cfg.Segments)
	}
}

func TestLoadFileTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.toml")
	data := `
[track]
lookahead = 50.0

[hazards]
interval = 0.5

[[segments]]
name = "ramp"
kind = "plain"
length = 20.0
exit = [0.0, 1.0, 20.0]

[segments.params]
amplitude = 3.0
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() = %v", err)
	}
	if cfg.Track.Lookahead != 50 || cfg.Hazards.Interval != 0.5 {
		t.Errorf("track/hazards = %+v / %+v", cfg.Track, cfg.Hazards)
	}
	if len(cfg.Segments) != 1 {
		t.Fatalf("segments = %+v, expected one", cfg.Segments)
	}
	s := cfg.Segments[0]
	if len(s.Exit) != 3 || s.Exit[1] != 1 {
		t.Errorf("exit = %v, expected [0 1 20]", s.Exit)
	}
	if s.Param("amplitude", 0) != 3 || s.Param("frequency", 7) != 7 {
		t.Errorf("params = %v", s.Params)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatYAML, FormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			data, err := Encode(DefaultRunnerConfig(), format)
			if err != nil {
				t.Fatalf("Encode() = %v", err)
			}
			got, err := Decode(data, format)
			if err != nil {
				t.Fatalf("Decode() = %v", err)
			}
			if got.Track != DefaultRunnerConfig().Track || len(got.Segments) != len(DefaultRunnerConfig().Segments) {
				t.Errorf("round trip lost data: %+v", got.Track)
			}
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := DefaultRunnerConfig()
	cfg.Track.Lookahead = 0
	cfg.Segments = nil
	cfg.Hazards.Interval = -1
	cfg.Chunk.Density = 2
	cfg.Difficulty.Progression.Type = "score"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"track.lookahead", "catalog is empty", "hazards.interval", "chunk.density", "progression.type"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
	}{
		{"runner.yaml", FormatYAML},
		{"runner.yml", FormatYAML},
		{"RUNNER.TOML", FormatTOML},
		{"runner", FormatYAML},
	}
	for _, tc := range tests {
		if got := FormatFor(tc.path); got != tc.expected {
			t.Errorf("FormatFor(%q) = %q, expected %q", tc.path, got, tc.expected)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset       DifficultyPreset
		enabled      bool
		initialLevel float64
		interval     float64
	}{
		{DifficultyEasy, true, 0.0, 1.5},
		{DifficultyNormal, true, 0.3, 1.0},
		{DifficultyHard, true, 0.7, 0.7},
		{DifficultyFixed, false, 0.0, 1.0},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			ApplyPreset(&cfg, tc.preset)
			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.InitialLevel != tc.initialLevel {
				t.Errorf("initial level = %g, expected %g", cfg.Difficulty.InitialLevel, tc.initialLevel)
			}
			if cfg.Hazards.Interval != tc.interval {
				t.Errorf("hazard interval = %g, expected %g", cfg.Hazards.Interval, tc.interval)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, ok := ParsePreset("hard"); !ok || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, ok)
	}
	if _, ok := ParsePreset("insane"); ok {
		t.Error("ParsePreset accepted an unknown preset")
	}
}
