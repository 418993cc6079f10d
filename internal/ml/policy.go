package ml

import (
	"fmt"

	"github.com/danielpatrickdp/kinetiq/go-engine/internal/lift"
	"github.com/danielpatrickdp/kinetiq/go-engine/internal/rules"
	"github.com/danielpatrickdp/kinetiq/go-engine/internal/units"
)

// #region policy-constants
const (
	// minHistory is the guardrail: below this many logged sets the rule
	// engine owns the decision outright.
	minHistory = 6

	// unsafeRPECeiling hard-rejects any candidate whose predicted RPE lands
	// above it.
	unsafeRPECeiling = 9.3

	// closenessDivisor controls how fast the in-band score decays per RPE
	// point outside the target band.
	closenessDivisor = 3.0

	// weightProgressDivisor scales the weight-increase bonus.
	weightProgressDivisor = 10.0

	// repProgressBonus rewards any rep increase.
	repProgressBonus = 0.3

	// preferenceBonus rewards candidates matching the bandit's pick.
	preferenceBonus = 0.15

	// Fatigue penalties on aggressive candidates when the calibrated RPE is
	// already high.
	addWeightPenalty          = 0.6
	addWeightPenaltyThreshold = 8.7
	addRepsPenalty            = 0.5
	addRepsPenaltyThreshold   = 9.0

	// rewardCenter shifts a mediocre score toward zero reward.
	rewardCenter = 0.5
)

// #endregion policy-constants

// #region candidate
// candidate is one entry of the fixed next-set menu.
type candidate struct {
	action lift.Action
	weight float64
	reps   int
}

// weightSteps returns the candidate weight offsets in the display unit.
func weightSteps(unit lift.Unit) (up []float64, down float64) {
	if unit == lift.Kilograms {
		return []float64{2.5, 5.0, 7.5}, 2.5
	}
	return []float64{5.0, 10.0, 15.0}, 5.0
}

// candidateSets builds the fixed menu around the last performed set. Weight
// increases pair with a rep reset; rep moves stay on the current weight.
func candidateSets(last lift.SetLog, cfg lift.ExerciseConfig, unit lift.Unit) []candidate {
	var out []candidate
	up, down := weightSteps(unit)

	for _, step := range up {
		out = append(out, candidate{lift.ActionAddWeight, last.Weight + step, cfg.RepMin})
	}
	if w := last.Weight - down; w > 0 {
		out = append(out, candidate{lift.ActionLowerWeight, w, cfg.RepMin})
	}

	if last.Reps < cfg.RepMax {
		out = append(out, candidate{lift.ActionAddReps, last.Weight, units.ClampInt(last.Reps+1, cfg.RepMin, cfg.RepMax)})
		out = append(out, candidate{lift.ActionAddReps, last.Weight, units.ClampInt(last.Reps+2, cfg.RepMin, cfg.RepMax)})
	}
	if last.Reps > cfg.RepMin {
		out = append(out, candidate{lift.ActionLowerReps, last.Weight, units.ClampInt(last.Reps-1, cfg.RepMin, cfg.RepMax)})
	}

	out = append(out, candidate{lift.ActionStay, last.Weight, units.ClampInt(last.Reps, cfg.RepMin, cfg.RepMax)})
	return out
}

// #endregion candidate

// #region policy
// Policy is the learned suggestion policy for one user. It scores a
// constrained candidate menu with the online RPE predictor, nudges the choice
// with the bandit, vetoes unsafe prescriptions, and defers to the rule engine
// whenever data is insufficient.
type Policy struct {
	State  *State
	UserID string
}

// NewPolicy wraps a caller-owned learning state.
func NewPolicy(state *State, userID string) *Policy {
	return &Policy{State: state, UserID: userID}
}

// Suggest produces the next-set suggestion. The history must be chronological
// and include the just-performed set as its final element.
//
// Sequence: guardrails, one learning step on the observed set, candidate
// generation, bandit preference, safety-filtered scoring, bandit update.
// Any guarded path returns the rule engine's suggestion unchanged.
func (p *Policy) Suggest(last lift.SetLog, cfg lift.ExerciseConfig, settings lift.Settings, history lift.History, debug bool) (lift.Suggestion, error) {
	if err := rules.Validate(last, cfg); err != nil {
		return lift.Suggestion{}, err
	}

	// Guardrails: thin history, or a set already over the band ceiling
	// (deloads belong to the rule engine).
	if len(history) < minHistory || last.RPE > cfg.TargetRPEMax {
		return rules.Suggest(last, cfg, settings, history, debug)
	}

	// Learning step: encode the observed set against the history that
	// preceded it, then fold the outcome into every online model.
	prior := history[:len(history)-1]
	xLast := FeatureVector(p.State, p.UserID, cfg, settings, last.Weight, last.Reps, prior)

	expectedRPE := p.State.RPEModel.Predict(xLast)
	cal := p.State.calibrationFor(cfg.Name)
	cal.Update(last.RPE - expectedRPE)
	calibratedRPE := clamp(cal.Calibrate(last.RPE), 1.0, 10.0)

	p.State.ReadinessModel.Update(xLast, FatigueLabel(history))
	p.State.RPEModel.Update(xLast, last.RPE)

	// Bandit preference from the current context (advisory only).
	xCtx := FeatureVector(p.State, p.UserID, cfg, settings, last.Weight, last.Reps, history)
	preferred := p.State.Bandit.Choose(lift.Actions, xCtx)

	var best *candidate
	bestScore := 0.0
	bestPredRPE := 0.0

	for _, c := range candidateSets(last, cfg, settings.Unit) {
		xc := FeatureVector(p.State, p.UserID, cfg, settings, c.weight, c.reps, history)
		predRPE := p.State.RPEModel.Predict(xc)

		// Hard safety veto: skip anything predicted past the ceiling.
		if predRPE > unsafeRPECeiling {
			continue
		}

		closeness := 1.0
		if predRPE < cfg.TargetRPEMin {
			closeness = 1.0 - (cfg.TargetRPEMin-predRPE)/closenessDivisor
		} else if predRPE > cfg.TargetRPEMax {
			closeness = 1.0 - (predRPE-cfg.TargetRPEMax)/closenessDivisor
		}

		progress := 0.0
		if c.weight > last.Weight {
			progress += (c.weight - last.Weight) / weightProgressDivisor
		}
		if c.reps > last.Reps {
			progress += repProgressBonus
		}

		bonus := 0.0
		if c.action == preferred {
			bonus = preferenceBonus
		}

		penalty := 0.0
		if c.action == lift.ActionAddWeight && calibratedRPE >= addWeightPenaltyThreshold {
			penalty = addWeightPenalty
		}
		if c.action == lift.ActionAddReps && calibratedRPE >= addRepsPenaltyThreshold {
			penalty = addRepsPenalty
		}

		score := closeness + progress + bonus - penalty
		if best == nil || score > bestScore {
			cc := c
			best, bestScore, bestPredRPE = &cc, score, predRPE
		}
	}

	// No candidate survived the safety filter: the rule engine decides.
	if best == nil {
		return rules.Suggest(last, cfg, settings, history, debug)
	}

	// Reward the advisory arm with the (centered, clamped) winning score.
	reward := clamp(bestScore-rewardCenter, -1.0, 1.0)
	p.State.Bandit.Update(preferred, xCtx, reward)

	nextWeight := units.NormalizeDisplay(best.weight, settings.Unit)

	var dbg map[string]any
	if debug {
		dbg = map[string]any{
			"calibrated_rpe":   calibratedRPE,
			"preferred_action": string(preferred),
			"predicted_rpe":    bestPredRPE,
			"best_score":       bestScore,
		}
	}

	return lift.Suggestion{
		Action:     best.action,
		NextWeight: nextWeight,
		NextReps:   best.reps,
		Unit:       settings.Unit,
		Explanation: fmt.Sprintf(
			"Learned policy chose '%s'. Predicted next RPE ~ %.1f (target %.1f-%.1f).",
			preferred, bestPredRPE, cfg.TargetRPEMin, cfg.TargetRPEMax,
		),
		Debug: dbg,
	}, nil
}

// #endregion policy
