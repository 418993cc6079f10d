// Package rules implements the deterministic autoregulation engine: a pure
// decision function over the last performed set, re-evaluated each call.
package rules

import (
	"fmt"
	"math"

	"github.com/danielpatrickdp/kinetiq/go-engine/internal/lift"
	"github.com/danielpatrickdp/kinetiq/go-engine/internal/progression"
	"github.com/danielpatrickdp/kinetiq/go-engine/internal/units"
)

// #region constants
const (
	// pushCeiling is the highest in-band RPE at which another rep is still
	// prescribed before the set caps out.
	pushCeiling = 8.5

	// Plateau-break trigger: how far back to look for identical
	// prescriptions, how many matches are required, and how much easier the
	// most recent one must have felt.
	plateauLookback       = 4
	plateauMinMatches     = 2
	plateauMinImprovement = 1.0

	// plateauRPEMargin keeps the trigger from firing right at the band edge.
	plateauRPEMargin = 0.2
)

// #endregion constants

// #region validation
// InvalidInputError reports malformed engine input. Not recoverable inside
// the engine; the caller must surface it.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

// Validate checks the rep range, RPE bounds, reps, and weight.
func Validate(last lift.SetLog, cfg lift.ExerciseConfig) error {
	if cfg.RepMin < 1 || cfg.RepMax < cfg.RepMin {
		return &InvalidInputError{
			Field:  "rep_range",
			Reason: fmt.Sprintf("(%d,%d) must satisfy min>=1 and max>=min", cfg.RepMin, cfg.RepMax),
		}
	}
	if last.RPE < 1.0 || last.RPE > 10.0 {
		return &InvalidInputError{
			Field:  "rpe",
			Reason: fmt.Sprintf("%.2f must be between 1 and 10", last.RPE),
		}
	}
	if last.Reps < 1 {
		return &InvalidInputError{Field: "reps", Reason: "must be >= 1"}
	}
	if last.Weight <= 0 {
		return &InvalidInputError{Field: "weight", Reason: "must be > 0"}
	}
	return nil
}

// #endregion validation

// #region plateau-trigger
// plateauBreak inspects history for repeated performances of the exact same
// (weight, reps) prescription. If the most recent one is at least
// plateauMinImprovement RPE easier than the baseline of earlier matches, the
// prescription has become measurably easier and an early load increase is
// justified.
func plateauBreak(last lift.SetLog, history lift.History) bool {
	var matches []lift.SetLog
	for i := len(history) - 1; i >= 0 && len(matches) < plateauLookback; i-- {
		s := history[i]
		if s.Weight == last.Weight && s.Reps == last.Reps {
			matches = append(matches, s) // most recent first
		}
	}
	if len(matches) < plateauMinMatches {
		return false
	}

	var baseline float64
	for _, s := range matches[1:] {
		baseline += s.RPE
	}
	baseline /= float64(len(matches) - 1)

	return baseline-matches[0].RPE >= plateauMinImprovement
}

// #endregion plateau-trigger

// #region suggest
// Suggest runs the autoregulation decision for the next set.
//
// Policy, evaluated in order:
//   - too hard (RPE above target max): lower weight at the rep floor,
//     otherwise shed reps
//   - too easy (RPE below target min): reps first, then weight with a rep
//     reset
//   - in band: push reps toward the cap while manageable; at the cap add
//     weight when the set felt easy enough (or the plateau trigger fired),
//     else hold
//
// All arithmetic runs in kilograms; the result converts back to the display
// unit exactly once.
func Suggest(last lift.SetLog, cfg lift.ExerciseConfig, settings lift.Settings, history lift.History, debug bool) (lift.Suggestion, error) {
	if err := Validate(last, cfg); err != nil {
		return lift.Suggestion{}, err
	}

	repMin, repMax := cfg.RepMin, cfg.RepMax
	rpeMin, rpeMax := cfg.TargetRPEMin, cfg.TargetRPEMax

	wKg := units.ToKilograms(last.Weight, settings.Unit)
	incKg := units.EffectiveIncrementKg(settings, cfg.IncrementOverride)
	maxJumpKg := units.EffectiveMaxJumpKg(settings, cfg.MaxJumpOverride)

	reps := last.Reps
	rpe := last.RPE
	repStep := cfg.RepStep
	if repStep < 1 {
		repStep = 1
	}

	nextWKg := wKg
	nextReps := reps
	action := lift.ActionStay
	reason := ""
	plateau := false

	switch {
	// Too hard
	case rpe > rpeMax:
		if reps <= repMin {
			change := math.Min(maxJumpKg, incKg)
			nextWKg = wKg - change
			nextReps = repMin
			action = lift.ActionLowerWeight
			reason = fmt.Sprintf("RPE %.1f > %.1f at low reps; reduce weight.", rpe, rpeMax)
		} else {
			// The delta table is 0 for RPE in (8,9]; a too-hard set still has
			// to shed at least one rep step.
			delta := progression.RepDelta(rpe)
			if delta > -repStep {
				delta = -repStep
			}
			nextReps = units.ClampInt(reps+delta, repMin, repMax)
			action = lift.ActionLowerReps
			reason = fmt.Sprintf("RPE %.1f > %.1f; reduce reps slightly.", rpe, rpeMax)
		}

	// Too easy: reps first
	case rpe < rpeMin:
		if reps < repMax {
			nextReps = units.ClampInt(reps+repStep, repMin, repMax)
			action = lift.ActionAddReps
			reason = fmt.Sprintf("RPE %.1f < %.1f; add reps.", rpe, rpeMin)
		} else {
			change := progression.BoundedWeightIncreaseKg(rpe, settings, incKg, maxJumpKg)
			nextWKg = wKg + change
			nextReps = repMin
			action = lift.ActionAddWeight
			reason = fmt.Sprintf("RPE %.1f < %.1f and reps capped; add weight and reset reps to %d.", rpe, rpeMin, repMin)
		}

	// In target band
	default:
		plateau = plateauBreak(last, history)

		switch {
		case plateau && rpe <= rpeMax-plateauRPEMargin:
			change := progression.BoundedWeightIncreaseKg(rpe, settings, incKg, maxJumpKg)
			nextWKg = wKg + change
			nextReps = repMin
			action = lift.ActionAddWeight
			reason = fmt.Sprintf("Same prescription got >= %.1f RPE easier; break the plateau and reset reps to %d.", plateauMinImprovement, repMin)
		case reps < repMax && rpe <= pushCeiling:
			nextReps = units.ClampInt(reps+repStep, repMin, repMax)
			action = lift.ActionAddReps
			reason = fmt.Sprintf("RPE %.1f in target; add reps toward %d.", rpe, repMax)
		case reps >= repMax:
			mid := (rpeMin + rpeMax) / 2.0
			if rpe <= mid {
				change := progression.BoundedWeightIncreaseKg(rpe, settings, incKg, maxJumpKg)
				nextWKg = wKg + change
				nextReps = repMin
				action = lift.ActionAddWeight
				reason = fmt.Sprintf("At rep cap with manageable RPE (%.1f); add weight and reset reps to %d.", rpe, repMin)
			} else {
				action = lift.ActionStay
				nextReps = repMax
				reason = fmt.Sprintf("At rep cap but RPE (%.1f) is on the hard side; repeat to solidify.", rpe)
			}
		default:
			action = lift.ActionStay
			reason = fmt.Sprintf("RPE %.1f in target but high; repeat the prescription.", rpe)
		}
	}

	// Every branch lands inside the rep range, including inputs that started
	// below the floor.
	nextReps = units.ClampInt(nextReps, repMin, repMax)

	// Round, then re-cap the jump after rounding.
	nextWKg = units.RoundToIncrement(nextWKg, incKg)
	if math.Abs(nextWKg-wKg) > maxJumpKg {
		if nextWKg > wKg {
			nextWKg = wKg + maxJumpKg
		} else {
			nextWKg = wKg - maxJumpKg
		}
		nextWKg = units.RoundToIncrement(nextWKg, incKg)
	}

	nextWeight := units.FromKilograms(nextWKg, settings.Unit)
	nextWeight = units.NormalizeDisplay(nextWeight, settings.Unit)

	var dbg map[string]any
	if debug {
		dbg = map[string]any{
			"weight_kg":      wKg,
			"next_weight_kg": nextWKg,
			"inc_kg":         incKg,
			"max_jump_kg":    maxJumpKg,
			"plateau_break":  plateau,
			"rep_range":      [2]int{repMin, repMax},
			"target_rpe":     [2]float64{rpeMin, rpeMax},
		}
	}

	return lift.Suggestion{
		Action:      action,
		NextWeight:  nextWeight,
		NextReps:    nextReps,
		Unit:        settings.Unit,
		Explanation: reason,
		Debug:       dbg,
	}, nil
}

// #endregion suggest
