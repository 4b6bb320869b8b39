// Package config loads the tunables of the physics core.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/hexcurl/internal/core/observability/log"
	"github.com/zeusync/hexcurl/internal/core/tile"
)

// PhysicsConfig holds the coefficients shared by live ticks and previews.
type PhysicsConfig struct {
	DragCoefficient  float64 `json:"drag_coefficient" yaml:"drag_coefficient"`
	SlowDownFactor   float64 `json:"slow_down_factor" yaml:"slow_down_factor"`
	RotationFactor   float64 `json:"rotation_factor" yaml:"rotation_factor"`
	SpeedUpFactor    float64 `json:"speed_up_factor" yaml:"speed_up_factor"`
	SnapDistance     float64 `json:"snap_distance" yaml:"snap_distance"`
	SnapVelocity     float64 `json:"snap_velocity" yaml:"snap_velocity"`
	MinSweepDistance float64 `json:"min_sweep_distance" yaml:"min_sweep_distance"`
	FixedDelta       float64 `json:"fixed_delta" yaml:"fixed_delta"`
	OverlapSamples   int     `json:"overlap_samples" yaml:"overlap_samples"`
	StoneRadius      float64 `json:"stone_radius" yaml:"stone_radius"`
}

// PreviewConfig bounds the trajectory preview.
type PreviewConfig struct {
	StepCap     int     `json:"step_cap" yaml:"step_cap"`
	SampleEvery int     `json:"sample_every" yaml:"sample_every"`
	MinVelocity float64 `json:"min_velocity" yaml:"min_velocity"`
}

// LogConfig selects the log level by name.
type LogConfig struct {
	Level string `json:"level" yaml:"level"`
}

type Config struct {
	Physics PhysicsConfig `json:"physics" yaml:"physics"`
	Preview PreviewConfig `json:"preview" yaml:"preview"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

// Default returns the tuning the built-in levels were designed for.
func Default() Config {
	return Config{
		Physics: PhysicsConfig{
			DragCoefficient:  0.0036,
			SlowDownFactor:   5,
			RotationFactor:   0.025,
			SpeedUpFactor:    250,
			SnapDistance:     40,
			SnapVelocity:     40,
			MinSweepDistance: 250,
			FixedDelta:       1.0 / 64,
			OverlapSamples:   tile.DefaultOverlapSamples,
			StoneRadius:      15,
		},
		Preview: PreviewConfig{
			StepCap:     10000,
			SampleEvery: 3,
			MinVelocity: 1,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads YAML on top of the defaults. Unknown keys are rejected and an
// empty document yields the defaults.
func Load(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile is Load on a file path.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = f.Close() }()

	cfg, err := Load(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the preconditions the physics functions rely on.
func (c Config) Validate() error {
	p := c.Physics
	var errs []error
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"drag_coefficient", p.DragCoefficient},
		{"slow_down_factor", p.SlowDownFactor},
		{"rotation_factor", p.RotationFactor},
		{"speed_up_factor", p.SpeedUpFactor},
		{"snap_distance", p.SnapDistance},
		{"snap_velocity", p.SnapVelocity},
		{"min_velocity", c.Preview.MinVelocity},
	} {
		if !(f.value >= 0) {
			errs = append(errs, fmt.Errorf("%w: %s = %v", ErrNegative, f.name, f.value))
		}
	}

	if !(p.FixedDelta > 0) {
		errs = append(errs, fmt.Errorf("%w: fixed_delta = %v", ErrNotPositive, p.FixedDelta))
	}
	if !(p.MinSweepDistance > 0) {
		errs = append(errs, fmt.Errorf("%w: min_sweep_distance = %v", ErrNotPositive, p.MinSweepDistance))
	}
	if !(p.StoneRadius > 0) {
		errs = append(errs, fmt.Errorf("%w: stone_radius = %v", ErrNotPositive, p.StoneRadius))
	}
	if p.OverlapSamples < 3 {
		errs = append(errs, fmt.Errorf("%w: overlap_samples = %d", ErrTooFewSamples, p.OverlapSamples))
	}
	if c.Preview.StepCap <= 0 {
		errs = append(errs, fmt.Errorf("%w: step_cap = %d", ErrNotPositive, c.Preview.StepCap))
	}
	if c.Preview.SampleEvery <= 0 {
		errs = append(errs, fmt.Errorf("%w: sample_every = %d", ErrNotPositive, c.Preview.SampleEvery))
	}
	return errors.Join(errs...)
}

// LogLevel maps the configured level name onto the logger's level.
func (c Config) LogLevel() log.Level { return log.ParseLevel(c.Log.Level) }
