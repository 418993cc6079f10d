// Package presets resolves default increments and jump caps from
// exercise-name heuristics and provides a starter exercise table.
package presets

import (
	"strings"

	"github.com/danielpatrickdp/kinetiq/go-engine/internal/lift"
)

// #region heuristics
// isLowerBodyHeavy matches squat/deadlift-type names, which tolerate larger
// default increments and jumps.
func isLowerBodyHeavy(exerciseName string) bool {
	name := strings.ToLower(exerciseName)
	return strings.Contains(name, "dead") || strings.Contains(name, "squat")
}

// DefaultIncrement returns the per-exercise increment in the user's unit.
func DefaultIncrement(settings lift.Settings, exerciseName string) float64 {
	heavy := isLowerBodyHeavy(exerciseName)
	if settings.Unit == lift.Pounds {
		if heavy {
			return 5.0
		}
		return 2.5
	}
	if heavy {
		return 2.5
	}
	return 1.25
}

// DefaultMaxJump returns the per-exercise jump cap in the user's unit.
func DefaultMaxJump(settings lift.Settings, exerciseName string) float64 {
	heavy := isLowerBodyHeavy(exerciseName)
	if settings.Unit == lift.Pounds {
		if heavy {
			return 15.0
		}
		return 10.0
	}
	if heavy {
		return 7.5
	}
	return 5.0
}

// #endregion heuristics

// #region make-exercise
// MakeExercise builds an ExerciseConfig with heuristic increment and max-jump
// overrides already resolved (stored in the user's unit).
func MakeExercise(name string, repMin, repMax int, settings lift.Settings) lift.ExerciseConfig {
	cfg := lift.NewExerciseConfig(name, repMin, repMax)
	cfg.IncrementOverride = DefaultIncrement(settings, name)
	cfg.MaxJumpOverride = DefaultMaxJump(settings, name)
	return cfg
}

// Common returns the starter preset table.
func Common(settings lift.Settings) map[string]lift.ExerciseConfig {
	return map[string]lift.ExerciseConfig{
		"bench_press":    MakeExercise("bench_press", 5, 8, settings),
		"overhead_press": MakeExercise("overhead_press", 5, 8, settings),
		"barbell_row":    MakeExercise("barbell_row", 6, 10, settings),
		"squat":          MakeExercise("squat", 5, 8, settings),
		"deadlift":       MakeExercise("deadlift", 3, 6, settings),
	}
}

// #endregion make-exercise
