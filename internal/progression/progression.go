// Package progression maps a reported RPE to weight-jump and rep-delta
// adjustments via fixed piecewise-linear tables.
package progression

import (
	"math"

	"github.com/danielpatrickdp/kinetiq/go-engine/internal/lift"
	"github.com/danielpatrickdp/kinetiq/go-engine/internal/units"
)

// #region weight-jump-table
// jumpSegment is one linear piece of the weight-jump curve:
// for rpe <= upper, jump = slope*rpe + intercept (in pounds).
type jumpSegment struct {
	upper     float64
	slope     float64
	intercept float64
}

// weightJumpSegments encodes the load-increase curve, evaluated in order:
//
//	RPE 1-3  -> 15 down to 10 lb
//	RPE 3-7  -> 10 down to 5 lb
//	RPE 7-10 -> flat 5 lb
var weightJumpSegments = []jumpSegment{
	{upper: 3.0, slope: -2.5, intercept: 17.5},
	{upper: 7.0, slope: -1.25, intercept: 13.75},
	{upper: 10.0, slope: 0.0, intercept: 5.0},
}

// WeightJumpLb returns the suggested load increase in pounds for a given RPE.
// RPE is clamped to [1,10] before lookup. The value is continuous; callers
// enforce minimums and caps downstream.
func WeightJumpLb(rpe float64) float64 {
	rpe = math.Max(1.0, math.Min(10.0, rpe))
	for _, seg := range weightJumpSegments {
		if rpe <= seg.upper {
			return seg.slope*rpe + seg.intercept
		}
	}
	return weightJumpSegments[len(weightJumpSegments)-1].intercept
}

// WeightJump returns the same curve value in the user's display unit.
func WeightJump(rpe float64, unit lift.Unit) float64 {
	jumpLb := WeightJumpLb(rpe)
	if unit == lift.Kilograms {
		return units.ToKilograms(jumpLb, lift.Pounds)
	}
	return jumpLb
}

// #endregion weight-jump-table

// #region rep-delta-table
// repDeltaSegment maps rpe <= upper to a discrete rep adjustment.
type repDeltaSegment struct {
	upper float64
	delta int
}

var repDeltaSegments = []repDeltaSegment{
	{upper: 3.0, delta: 3},
	{upper: 6.0, delta: 2},
	{upper: 8.0, delta: 1},
	{upper: 9.0, delta: 0},
}

// RepDelta returns the rep-count adjustment for a given RPE. Used only when
// an in-place rep change (not a weight change) is warranted.
func RepDelta(rpe float64) int {
	rpe = math.Max(1.0, math.Min(10.0, rpe))
	for _, seg := range repDeltaSegments {
		if rpe <= seg.upper {
			return seg.delta
		}
	}
	return -1
}

// #endregion rep-delta-table

// #region bounded-increase
// minRealisticDeltaLb is the smallest load change worth prescribing.
const (
	minRealisticDeltaLb = 5.0
	minRealisticDeltaKg = 2.5
)

// BoundedWeightIncreaseKg computes the actual load increase in kilograms:
// the curve value raised to at least the realistic minimum and the working
// increment, then capped by the max jump.
func BoundedWeightIncreaseKg(rpe float64, settings lift.Settings, incKg, maxJumpKg float64) float64 {
	curveUser := WeightJump(rpe, settings.Unit)
	curveKg := units.ToKilograms(curveUser, settings.Unit)

	minDeltaKg := units.ToKilograms(minRealisticDeltaLb, lift.Pounds)
	if settings.Unit == lift.Kilograms {
		minDeltaKg = minRealisticDeltaKg
	}

	change := math.Max(curveKg, math.Max(minDeltaKg, incKg))
	return math.Min(maxJumpKg, change)
}

// #endregion bounded-increase
