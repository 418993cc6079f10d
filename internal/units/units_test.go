package units

import (
	"math"
	"testing"

	"github.com/danielpatrickdp/kinetiq/go-engine/internal/lift"
)

func TestRoundTripLb(t *testing.T) {
	for _, w := range []float64{45.0, 135.0, 225.0, 407.5} {
		back := FromKilograms(ToKilograms(w, lift.Pounds), lift.Pounds)
		if math.Abs(back-w) > 1e-6 {
			t.Fatalf("roundtrip %v: got %v", w, back)
		}
	}
}

func TestRoundTripKg(t *testing.T) {
	w := 102.5
	back := FromKilograms(ToKilograms(w, lift.Kilograms), lift.Kilograms)
	if math.Abs(back-w) > 1e-6 {
		t.Fatalf("roundtrip %v: got %v", w, back)
	}
}

func TestRoundToIncrement(t *testing.T) {
	cases := []struct {
		x, inc, want float64
	}{
		{187.49, 2.5, 187.5},
		{186.26, 2.5, 187.5},
		{186.24, 2.5, 185.0},
		{100.0, 2.5, 100.0},
		{-3.7, 2.5, -2.5},
	}
	for _, c := range cases {
		got := RoundToIncrement(c.x, c.inc)
		if math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("RoundToIncrement(%v, %v) = %v, want %v", c.x, c.inc, got, c.want)
		}
	}
}

func TestRoundToIncrementZeroIncrement(t *testing.T) {
	// A zero increment must not divide by zero.
	got := RoundToIncrement(185.0, 0)
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Fatalf("expected finite result, got %v", got)
	}
}

func TestNormalizeDisplay(t *testing.T) {
	if got := NormalizeDisplay(184.999999, lift.Pounds); got != 185.0 {
		t.Fatalf("lb normalize: got %v", got)
	}
	if got := NormalizeDisplay(82.13, lift.Kilograms); got != 82.25 {
		t.Fatalf("kg normalize: got %v", got)
	}
}

func TestEffectiveIncrementDefaults(t *testing.T) {
	s := lift.DefaultSettings()

	incKg := EffectiveIncrementKg(s, 0)
	want := ToKilograms(s.LbIncrement, lift.Pounds)
	if math.Abs(incKg-want) > 1e-9 {
		t.Fatalf("lb default increment: got %v, want %v", incKg, want)
	}

	s.Unit = lift.Kilograms
	if got := EffectiveIncrementKg(s, 0); got != s.KgIncrement {
		t.Fatalf("kg default increment: got %v", got)
	}
}

func TestEffectiveIncrementOverrideInDisplayUnit(t *testing.T) {
	s := lift.DefaultSettings() // lb mode
	incKg := EffectiveIncrementKg(s, 5.0)
	want := ToKilograms(5.0, lift.Pounds)
	if math.Abs(incKg-want) > 1e-9 {
		t.Fatalf("override should convert from lb: got %v, want %v", incKg, want)
	}
}

func TestEffectiveMaxJump(t *testing.T) {
	s := lift.DefaultSettings()
	jump := EffectiveMaxJumpKg(s, 0)
	want := ToKilograms(s.MaxJumpLb, lift.Pounds)
	if math.Abs(jump-want) > 1e-9 {
		t.Fatalf("lb default max jump: got %v, want %v", jump, want)
	}

	if got := EffectiveMaxJumpKg(s, 15.0); math.Abs(got-ToKilograms(15.0, lift.Pounds)) > 1e-9 {
		t.Fatalf("override max jump: got %v", got)
	}
}

func TestClampInt(t *testing.T) {
	if got := ClampInt(12, 5, 8); got != 8 {
		t.Fatalf("got %d", got)
	}
	if got := ClampInt(3, 5, 8); got != 5 {
		t.Fatalf("got %d", got)
	}
	if got := ClampInt(6, 5, 8); got != 6 {
		t.Fatalf("got %d", got)
	}
}
