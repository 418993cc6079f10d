// Package config loads the TOML profile consumed by the cmd tools.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/danielpatrickdp/kinetiq/go-engine/internal/lift"
	"github.com/danielpatrickdp/kinetiq/go-engine/internal/presets"
)

// #region config-types
// Exercise is one configured lift in the profile.
type Exercise struct {
	Name              string  `toml:"name"`
	RepMin            int     `toml:"rep_min"`
	RepMax            int     `toml:"rep_max"`
	TargetRPEMin      float64 `toml:"target_rpe_min"`
	TargetRPEMax      float64 `toml:"target_rpe_max"`
	IncrementOverride float64 `toml:"increment_override"`
	MaxJumpOverride   float64 `toml:"max_jump_override"`
}

// Config is the full profile.
type Config struct {
	Unit        string  `toml:"unit"` // "lb" or "kg"
	LbIncrement float64 `toml:"lb_increment"`
	KgIncrement float64 `toml:"kg_increment"`
	MaxJumpLb   float64 `toml:"max_jump_lb"`
	MaxJumpKg   float64 `toml:"max_jump_kg"`

	UseML  bool   `toml:"use_ml"`
	UserID string `toml:"user_id"`

	Exercises []Exercise `toml:"exercises"`
}

// #endregion config-types

// #region load
// Default returns the profile used when no file is present.
func Default() Config {
	s := lift.DefaultSettings()
	return Config{
		Unit:        string(s.Unit),
		LbIncrement: s.LbIncrement,
		KgIncrement: s.KgIncrement,
		MaxJumpLb:   s.MaxJumpLb,
		MaxJumpKg:   s.MaxJumpKg,
		UserID:      "default",
	}
}

// Load reads a TOML profile. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Unit != string(lift.Pounds) && cfg.Unit != string(lift.Kilograms) {
		return Config{}, fmt.Errorf("parse config %s: unknown unit %q", path, cfg.Unit)
	}
	return cfg, nil
}

// #endregion load

// #region resolution
// Settings converts the profile into engine settings.
func (c Config) Settings() lift.Settings {
	return lift.Settings{
		Unit:        lift.Unit(c.Unit),
		LbIncrement: c.LbIncrement,
		KgIncrement: c.KgIncrement,
		MaxJumpLb:   c.MaxJumpLb,
		MaxJumpKg:   c.MaxJumpKg,
	}
}

// Exercise resolves a named exercise: profile entry first, then the preset
// heuristics.
func (c Config) Exercise(name string, settings lift.Settings) lift.ExerciseConfig {
	for _, e := range c.Exercises {
		if e.Name != name {
			continue
		}
		cfg := lift.NewExerciseConfig(e.Name, e.RepMin, e.RepMax)
		if e.TargetRPEMin > 0 {
			cfg.TargetRPEMin = e.TargetRPEMin
		}
		if e.TargetRPEMax > 0 {
			cfg.TargetRPEMax = e.TargetRPEMax
		}
		cfg.IncrementOverride = e.IncrementOverride
		cfg.MaxJumpOverride = e.MaxJumpOverride
		if cfg.IncrementOverride == 0 {
			cfg.IncrementOverride = presets.DefaultIncrement(settings, name)
		}
		if cfg.MaxJumpOverride == 0 {
			cfg.MaxJumpOverride = presets.DefaultMaxJump(settings, name)
		}
		return cfg
	}
	if preset, ok := presets.Common(settings)[name]; ok {
		return preset
	}
	return presets.MakeExercise(name, 5, 8, settings)
}

// #endregion resolution
