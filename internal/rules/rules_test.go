package rules

import (
	"errors"
	"math"
	"testing"

	"github.com/danielpatrickdp/kinetiq/go-engine/internal/lift"
	"github.com/danielpatrickdp/kinetiq/go-engine/internal/units"
)

func base() (lift.Settings, lift.ExerciseConfig) {
	settings := lift.DefaultSettings()
	cfg := lift.NewExerciseConfig("bench_press", 5, 8)
	return settings, cfg
}

func mustSuggest(t *testing.T, last lift.SetLog, cfg lift.ExerciseConfig, settings lift.Settings, history lift.History) lift.Suggestion {
	t.Helper()
	sug, err := Suggest(last, cfg, settings, history, false)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	return sug
}

func TestValidateRejectsBadInput(t *testing.T) {
	settings, cfg := base()

	cases := []struct {
		name string
		last lift.SetLog
		cfg  lift.ExerciseConfig
	}{
		{"bad rep range", lift.SetLog{Weight: 185, Reps: 5, RPE: 8}, lift.NewExerciseConfig("x", 8, 5)},
		{"zero rep min", lift.SetLog{Weight: 185, Reps: 5, RPE: 8}, lift.NewExerciseConfig("x", 0, 5)},
		{"rpe too high", lift.SetLog{Weight: 185, Reps: 5, RPE: 10.5}, cfg},
		{"rpe too low", lift.SetLog{Weight: 185, Reps: 5, RPE: 0.5}, cfg},
		{"zero reps", lift.SetLog{Weight: 185, Reps: 0, RPE: 8}, cfg},
		{"zero weight", lift.SetLog{Weight: 0, Reps: 5, RPE: 8}, cfg},
	}
	for _, c := range cases {
		_, err := Suggest(c.last, c.cfg, settings, nil, false)
		if err == nil {
			t.Fatalf("%s: expected error", c.name)
		}
		var invalid *InvalidInputError
		if !errors.As(err, &invalid) {
			t.Fatalf("%s: expected InvalidInputError, got %T", c.name, err)
		}
	}
}

func TestTooEasyAddsRepsFirst(t *testing.T) {
	settings, cfg := base()
	sug := mustSuggest(t, lift.SetLog{Weight: 185, Reps: 7, RPE: 5.0}, cfg, settings, nil)

	if sug.Action != lift.ActionAddReps {
		t.Fatalf("expected add_reps, got %s", sug.Action)
	}
	if sug.NextReps != 8 {
		t.Fatalf("expected 8 reps, got %d", sug.NextReps)
	}
	if sug.NextWeight != 185 {
		t.Fatalf("weight should hold at 185, got %v", sug.NextWeight)
	}
}

func TestTooEasyAtRepCapAddsWeightAndResetsReps(t *testing.T) {
	settings, cfg := base()
	sug := mustSuggest(t, lift.SetLog{Weight: 185, Reps: 8, RPE: 5.0}, cfg, settings, nil)

	if sug.Action != lift.ActionAddWeight {
		t.Fatalf("expected add_weight, got %s", sug.Action)
	}
	if sug.NextReps != 5 {
		t.Fatalf("expected rep reset to 5, got %d", sug.NextReps)
	}
	if sug.NextWeight <= 185 {
		t.Fatalf("expected weight above 185, got %v", sug.NextWeight)
	}
}

func TestTooHardLowRepsLowersWeight(t *testing.T) {
	settings, cfg := base()
	sug := mustSuggest(t, lift.SetLog{Weight: 185, Reps: 5, RPE: 9.8}, cfg, settings, nil)

	if sug.Action != lift.ActionLowerWeight {
		t.Fatalf("expected lower_weight, got %s", sug.Action)
	}
	if sug.NextWeight >= 185 {
		t.Fatalf("expected weight below 185, got %v", sug.NextWeight)
	}
	if sug.NextReps != 5 {
		t.Fatalf("expected reps to hold at rep min, got %d", sug.NextReps)
	}
}

func TestTooHardMidRepsShedsReps(t *testing.T) {
	settings, cfg := base()
	sug := mustSuggest(t, lift.SetLog{Weight: 185, Reps: 7, RPE: 9.5}, cfg, settings, nil)

	if sug.Action != lift.ActionLowerReps {
		t.Fatalf("expected lower_reps, got %s", sug.Action)
	}
	if sug.NextReps != 6 {
		t.Fatalf("expected 6 reps, got %d", sug.NextReps)
	}
	if sug.NextWeight != 185 {
		t.Fatalf("weight should hold, got %v", sug.NextWeight)
	}
}

func TestInTargetMidRangeAddsReps(t *testing.T) {
	settings, cfg := base()
	sug := mustSuggest(t, lift.SetLog{Weight: 185, Reps: 5, RPE: 8.0}, cfg, settings, nil)

	if sug.Action != lift.ActionAddReps {
		t.Fatalf("expected add_reps, got %s", sug.Action)
	}
	if sug.NextReps <= 5 || sug.NextReps > 8 {
		t.Fatalf("next reps out of (5,8]: %d", sug.NextReps)
	}
}

func TestInTargetAbovePushCeilingStays(t *testing.T) {
	settings, cfg := base()
	sug := mustSuggest(t, lift.SetLog{Weight: 185, Reps: 6, RPE: 8.8}, cfg, settings, nil)

	if sug.Action != lift.ActionStay {
		t.Fatalf("expected stay, got %s", sug.Action)
	}
	if sug.NextReps != 6 {
		t.Fatalf("reps should hold at 6, got %d", sug.NextReps)
	}
}

func TestAtRepCapManageableAddsWeight(t *testing.T) {
	settings, cfg := base()
	sug := mustSuggest(t, lift.SetLog{Weight: 185, Reps: 8, RPE: 7.2}, cfg, settings, nil)

	if sug.Action != lift.ActionAddWeight {
		t.Fatalf("expected add_weight, got %s", sug.Action)
	}
	if sug.NextReps != 5 {
		t.Fatalf("expected rep reset, got %d", sug.NextReps)
	}
	if sug.NextWeight <= 185 {
		t.Fatalf("expected weight above 185, got %v", sug.NextWeight)
	}
}

func TestAtRepCapHardSideStays(t *testing.T) {
	settings, cfg := base()
	sug := mustSuggest(t, lift.SetLog{Weight: 185, Reps: 8, RPE: 8.6}, cfg, settings, nil)

	if sug.Action != lift.ActionStay {
		t.Fatalf("expected stay, got %s", sug.Action)
	}
	if sug.NextReps != 8 {
		t.Fatalf("reps should hold at cap, got %d", sug.NextReps)
	}
}

func TestPlateauBreakTriggersEarlyWeightIncrease(t *testing.T) {
	settings, cfg := base()
	last := lift.SetLog{Weight: 185, Reps: 6, RPE: 7.5}
	history := lift.History{
		{Weight: 185, Reps: 6, RPE: 9.0},
		{Weight: 185, Reps: 6, RPE: 8.8},
		last,
	}

	sug := mustSuggest(t, last, cfg, settings, history)

	if sug.Action != lift.ActionAddWeight {
		t.Fatalf("expected plateau-break add_weight, got %s", sug.Action)
	}
	if sug.NextReps != 5 {
		t.Fatalf("expected rep reset, got %d", sug.NextReps)
	}
	if sug.NextWeight <= 185 {
		t.Fatalf("expected weight above 185, got %v", sug.NextWeight)
	}
}

func TestPlateauBreakNeedsTwoMatches(t *testing.T) {
	settings, cfg := base()
	last := lift.SetLog{Weight: 185, Reps: 6, RPE: 7.5}
	history := lift.History{last}

	sug := mustSuggest(t, last, cfg, settings, history)

	// Only one matching performance: normal in-band path (add reps).
	if sug.Action != lift.ActionAddReps {
		t.Fatalf("expected add_reps, got %s", sug.Action)
	}
}

func TestPlateauBreakBlockedNearBandCeiling(t *testing.T) {
	settings, cfg := base()
	// Improvement is there, but the last set still sits above
	// targetMax - 0.2, so the trigger must not fire.
	last := lift.SetLog{Weight: 185, Reps: 6, RPE: 8.9}
	history := lift.History{
		{Weight: 185, Reps: 6, RPE: 10.0},
		{Weight: 185, Reps: 6, RPE: 10.0},
		last,
	}

	sug := mustSuggest(t, last, cfg, settings, history)

	if sug.Action == lift.ActionAddWeight {
		t.Fatal("plateau break should not fire at the band ceiling")
	}
}

func TestTooHardAlwaysShedsAtLeastOneRep(t *testing.T) {
	settings := lift.DefaultSettings()
	cfg := lift.NewExerciseConfig("barbell_row", 6, 10)
	cfg.TargetRPEMin, cfg.TargetRPEMax = 6.0, 8.0

	// The rep-delta table is flat at 0 for RPE in (8,9]; lower_reps must still
	// lower something.
	sug := mustSuggest(t, lift.SetLog{Weight: 185, Reps: 8, RPE: 8.5}, cfg, settings, nil)

	if sug.Action != lift.ActionLowerReps {
		t.Fatalf("expected lower_reps, got %s", sug.Action)
	}
	if sug.NextReps != 7 {
		t.Fatalf("expected 7 reps, got %d", sug.NextReps)
	}
}

func TestStayClampsRepsBelowFloor(t *testing.T) {
	settings, cfg := base()

	// In band but above the push ceiling, with reps under the floor: the
	// stay path still has to land inside the rep range.
	sug := mustSuggest(t, lift.SetLog{Weight: 185, Reps: 1, RPE: 9.0}, cfg, settings, nil)

	if sug.NextReps < cfg.RepMin || sug.NextReps > cfg.RepMax {
		t.Fatalf("next reps %d outside [%d,%d]", sug.NextReps, cfg.RepMin, cfg.RepMax)
	}
}

func TestRepRangeInvariant(t *testing.T) {
	settings, cfg := base()
	for reps := 1; reps <= 12; reps++ {
		for rpe := 1.0; rpe <= 10.0; rpe += 0.5 {
			sug := mustSuggest(t, lift.SetLog{Weight: 185, Reps: reps, RPE: rpe}, cfg, settings, nil)
			if sug.NextReps < cfg.RepMin || sug.NextReps > cfg.RepMax {
				t.Fatalf("reps=%d rpe=%.1f: next reps %d outside [%d,%d]",
					reps, rpe, sug.NextReps, cfg.RepMin, cfg.RepMax)
			}
		}
	}
}

func TestMaxJumpInvariant(t *testing.T) {
	settings, cfg := base()
	maxJumpKg := units.EffectiveMaxJumpKg(settings, cfg.MaxJumpOverride)
	incKg := units.EffectiveIncrementKg(settings, cfg.IncrementOverride)

	for reps := 1; reps <= 12; reps++ {
		for rpe := 1.0; rpe <= 10.0; rpe += 0.5 {
			last := lift.SetLog{Weight: 185, Reps: reps, RPE: rpe}
			sug := mustSuggest(t, last, cfg, settings, nil)

			deltaKg := units.ToKilograms(sug.NextWeight, settings.Unit) - units.ToKilograms(last.Weight, settings.Unit)
			// Display normalization can add at most half a display step on
			// top of the rounded value.
			slack := incKg/2 + 0.3
			if math.Abs(deltaKg) > maxJumpKg+slack {
				t.Fatalf("reps=%d rpe=%.1f: jump %.3f kg exceeds cap %.3f", reps, rpe, deltaKg, maxJumpKg)
			}
		}
	}
}

func TestKilogramMode(t *testing.T) {
	settings := lift.DefaultSettings()
	settings.Unit = lift.Kilograms
	cfg := lift.NewExerciseConfig("squat", 5, 8)

	sug := mustSuggest(t, lift.SetLog{Weight: 100, Reps: 8, RPE: 6.0}, cfg, settings, nil)

	if sug.Unit != lift.Kilograms {
		t.Fatalf("expected kg suggestion, got %s", sug.Unit)
	}
	if sug.Action != lift.ActionAddWeight {
		t.Fatalf("expected add_weight, got %s", sug.Action)
	}
	if sug.NextWeight <= 100 {
		t.Fatalf("expected weight above 100, got %v", sug.NextWeight)
	}
}

func TestDebugPayload(t *testing.T) {
	settings, cfg := base()
	sug, err := Suggest(lift.SetLog{Weight: 185, Reps: 5, RPE: 8.0}, cfg, settings, nil, true)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if sug.Debug == nil {
		t.Fatal("expected debug payload")
	}
	if _, ok := sug.Debug["inc_kg"]; !ok {
		t.Fatal("expected inc_kg in debug payload")
	}

	sug = mustSuggest(t, lift.SetLog{Weight: 185, Reps: 5, RPE: 8.0}, cfg, settings, nil)
	if sug.Debug != nil {
		t.Fatal("debug payload should be nil when not requested")
	}
}
