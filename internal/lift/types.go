package lift

// #region unit
// Unit is the display unit for weights. All internal arithmetic runs in
// kilograms; conversion happens once at the boundary.
type Unit string

const (
	Pounds    Unit = "lb"
	Kilograms Unit = "kg"
)

// #endregion unit

// #region action
// Action enumerates what the engine tells the lifter to do next.
type Action string

const (
	ActionAddWeight   Action = "add_weight"
	ActionAddReps     Action = "add_reps"
	ActionStay        Action = "stay"
	ActionLowerWeight Action = "lower_weight"
	ActionLowerReps   Action = "lower_reps"
)

// Actions lists every action in the fixed order the bandit iterates them.
var Actions = []Action{
	ActionAddWeight, ActionAddReps, ActionStay, ActionLowerReps, ActionLowerWeight,
}

// #endregion action

// #region settings
// Settings holds global per-user settings. Immutable per request.
type Settings struct {
	Unit Unit

	// Typical total-weight increments (not per side)
	LbIncrement float64
	KgIncrement float64

	// Safety cap on how much weight changes between sets
	MaxJumpLb float64
	MaxJumpKg float64
}

// DefaultSettings returns pound-mode settings with common plate increments.
func DefaultSettings() Settings {
	return Settings{
		Unit:        Pounds,
		LbIncrement: 2.5,
		KgIncrement: 1.25,
		MaxJumpLb:   10.0,
		MaxJumpKg:   5.0,
	}
}

// #endregion settings

// #region exercise-config
// ExerciseConfig is the per-exercise prescription envelope.
// Overrides are expressed in the settings' display unit.
type ExerciseConfig struct {
	Name              string
	RepMin            int
	RepMax            int
	TargetRPEMin      float64
	TargetRPEMax      float64
	IncrementOverride float64 // 0 = use settings default
	MaxJumpOverride   float64 // 0 = use settings default
	RepStep           int     // typically 1
}

// NewExerciseConfig builds a config with the common (7,9) target band and
// single-rep steps.
func NewExerciseConfig(name string, repMin, repMax int) ExerciseConfig {
	return ExerciseConfig{
		Name:         name,
		RepMin:       repMin,
		RepMax:       repMax,
		TargetRPEMin: 7.0,
		TargetRPEMax: 9.0,
		RepStep:      1,
	}
}

// #endregion exercise-config

// #region set-log
// SetLog is a single performed set. Weight is in the user's display unit.
type SetLog struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
	RPE    float64 `json:"rpe"` // 1-10
}

// History is an append-only, chronological sequence of performed sets,
// oldest first. The caller owns it.
type History = []SetLog

// #endregion set-log

// #region suggestion
// Suggestion is the engine's output: the next prescription and why.
type Suggestion struct {
	Action      Action
	NextWeight  float64
	NextReps    int
	Unit        Unit
	Explanation string
	Debug       map[string]any // nil unless debug requested
}

// #endregion suggestion
