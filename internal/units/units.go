// Package units converts weights between display units and the internal
// kilogram base, and rounds prescriptions to loadable increments.
package units

import (
	"math"

	"github.com/danielpatrickdp/kinetiq/go-engine/internal/lift"
)

// LbPerKg is the fixed conversion constant.
const LbPerKg = 2.2046226218

// #region conversion
// ToKilograms converts a weight in the given display unit to kilograms.
func ToKilograms(weight float64, unit lift.Unit) float64 {
	if unit == lift.Pounds {
		return weight / LbPerKg
	}
	return weight
}

// FromKilograms converts a kilogram weight back to the given display unit.
func FromKilograms(weightKg float64, unit lift.Unit) float64 {
	if unit == lift.Pounds {
		return weightKg * LbPerKg
	}
	return weightKg
}

// #endregion conversion

// #region rounding
// RoundToIncrement rounds x to the nearest multiple of inc, ties away from
// zero. The increment is floored at a tiny epsilon so a zero increment cannot
// divide by zero.
func RoundToIncrement(x, inc float64) float64 {
	inc = math.Max(1e-9, inc)
	return math.Round(x/inc) * inc
}

// NormalizeDisplay snaps a weight for display only: nearest 0.5 lb or
// nearest 0.25 kg. Never applied to internal arithmetic.
func NormalizeDisplay(weight float64, unit lift.Unit) float64 {
	if unit == lift.Pounds {
		return math.Round(weight*2) / 2
	}
	return math.Round(weight*4) / 4
}

// ClampInt clamps x into [lo, hi].
func ClampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// #endregion rounding

// #region effective-resolution
// EffectiveIncrementKg resolves the working increment in kilograms.
// An exercise override is expressed in the settings' display unit.
func EffectiveIncrementKg(settings lift.Settings, override float64) float64 {
	if override > 0 {
		return ToKilograms(override, settings.Unit)
	}
	if settings.Unit == lift.Pounds {
		return ToKilograms(settings.LbIncrement, lift.Pounds)
	}
	return settings.KgIncrement
}

// EffectiveMaxJumpKg resolves the per-step weight-change cap in kilograms.
// An exercise override is expressed in the settings' display unit.
func EffectiveMaxJumpKg(settings lift.Settings, override float64) float64 {
	if override > 0 {
		return ToKilograms(override, settings.Unit)
	}
	if settings.Unit == lift.Pounds {
		return ToKilograms(settings.MaxJumpLb, lift.Pounds)
	}
	return settings.MaxJumpKg
}

// #endregion effective-resolution
