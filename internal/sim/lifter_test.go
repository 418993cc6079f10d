package sim

import (
	"math"
	"testing"

	"github.com/danielpatrickdp/kinetiq/go-engine/internal/lift"
)

func TestRPEForSetBounds(t *testing.T) {
	l := NewLifter(185, 42)
	day := l.DayReadiness()

	for w := 45.0; w <= 500.0; w += 45.0 {
		rpe := l.RPEForSet(w, 8, 5, 3, day)
		if rpe < 1.0 || rpe > 10.0 {
			t.Fatalf("RPE %v out of range at weight %v", rpe, w)
		}
	}
}

func TestHeavierFeelsHarder(t *testing.T) {
	// Average over many samples to wash out set-level noise.
	samples := 200
	var light, heavy float64
	l := NewLifter(185, 42)
	for i := 0; i < samples; i++ {
		light += l.RPEForSet(165, 5, 5, 0, 0)
		heavy += l.RPEForSet(205, 5, 5, 0, 0)
	}
	if heavy/float64(samples) <= light/float64(samples) {
		t.Fatalf("heavier set should average harder: light %v, heavy %v",
			light/float64(samples), heavy/float64(samples))
	}
}

func TestFatigueAccumulatesAcrossSets(t *testing.T) {
	samples := 200
	var fresh, tired float64
	l := NewLifter(185, 7)
	for i := 0; i < samples; i++ {
		fresh += l.RPEForSet(185, 5, 5, 0, 0)
		tired += l.RPEForSet(185, 5, 5, 4, 0)
	}
	if tired/float64(samples) <= fresh/float64(samples) {
		t.Fatal("late sets should average harder than the first set")
	}
}

func TestDayReadinessWithinNoiseBand(t *testing.T) {
	l := NewLifter(185, 1)
	for i := 0; i < 100; i++ {
		r := l.DayReadiness()
		if math.Abs(r) > l.ReadinessNoise {
			t.Fatalf("readiness %v outside +/-%v", r, l.ReadinessNoise)
		}
	}
}

func TestSeededRunsReproduce(t *testing.T) {
	a := NewLifter(185, 99)
	b := NewLifter(185, 99)
	for i := 0; i < 20; i++ {
		ra := a.RPEForSet(185, 6, 5, i%4, 0.1)
		rb := b.RPEForSet(185, 6, 5, i%4, 0.1)
		if ra != rb {
			t.Fatalf("run diverged at set %d: %v vs %v", i, ra, rb)
		}
	}
}

func TestAdaptAfterSession(t *testing.T) {
	l := NewLifter(185, 3)

	l.AdaptAfterSession([]float64{8.0, 8.2, 7.9, 8.5}, 7, 9)
	if math.Abs(l.BaseStrength-185.55) > 1e-9 {
		t.Fatalf("good session adaptation: got %v", l.BaseStrength)
	}

	l.AdaptAfterSession([]float64{9.8, 9.9, 9.5, 8.0}, 7, 9)
	if math.Abs(l.BaseStrength-185.65) > 1e-9 {
		t.Fatalf("bad session adaptation: got %v", l.BaseStrength)
	}

	before := l.BaseStrength
	l.AdaptAfterSession(nil, 7, 9)
	if l.BaseStrength != before {
		t.Fatal("empty session should not adapt")
	}
}

func TestSummary(t *testing.T) {
	var s Summary
	if s.HitRate() != 0 {
		t.Fatalf("empty hit rate: got %v", s.HitRate())
	}

	if !s.Record(lift.SetLog{Weight: 185, Reps: 6, RPE: 8.0}, 7, 9) {
		t.Fatal("in-band set should record as in zone")
	}
	if s.Record(lift.SetLog{Weight: 190, Reps: 6, RPE: 9.5}, 7, 9) {
		t.Fatal("over-band set should record as out of zone")
	}

	if s.TotalSets != 2 || s.InZoneSets != 1 {
		t.Fatalf("unexpected counts: %+v", s)
	}
	if s.HitRate() != 0.5 {
		t.Fatalf("hit rate: got %v", s.HitRate())
	}
	if s.FinalWeight != 190 {
		t.Fatalf("final weight: got %v", s.FinalWeight)
	}
}
