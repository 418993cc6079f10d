// Package sim provides a synthetic lifter model and session summaries for
// offline harness runs of the engine.
package sim

import (
	"math"
	"math/rand"

	"github.com/danielpatrickdp/kinetiq/go-engine/internal/lift"
)

// #region lifter
// Lifter is a simple effort model: RPE rises with load above base strength,
// with reps above the floor, and with accumulated in-session fatigue, minus
// day-to-day readiness swings.
type Lifter struct {
	BaseStrength      float64
	SensitivityWeight float64
	SensitivityReps   float64

	FatiguePerSet  float64
	ReadinessNoise float64
	RPENoise       float64

	AdaptGood float64
	AdaptBad  float64

	rng *rand.Rand
}

// NewLifter creates a lifter at the given base strength with a seeded RNG.
func NewLifter(baseStrength float64, seed int64) *Lifter {
	return &Lifter{
		BaseStrength:      baseStrength,
		SensitivityWeight: 1.0 / 25.0,
		SensitivityReps:   1.0 / 2.5,
		FatiguePerSet:     0.20,
		ReadinessNoise:    0.60,
		RPENoise:          0.25,
		AdaptGood:         0.55,
		AdaptBad:          0.10,
		rng:               rand.New(rand.NewSource(seed)),
	}
}

// DayReadiness samples the session's readiness offset.
func (l *Lifter) DayReadiness() float64 {
	return l.rng.Float64()*2*l.ReadinessNoise - l.ReadinessNoise
}

// RPEForSet reports the effort the lifter would experience for a set.
func (l *Lifter) RPEForSet(weight float64, reps, repMin, setInSession int, dayReadiness float64) float64 {
	rpe := 7.0
	rpe += (weight - l.BaseStrength) * l.SensitivityWeight
	rpe += float64(reps-repMin) * l.SensitivityReps
	rpe += float64(setInSession) * l.FatiguePerSet
	rpe -= dayReadiness
	rpe += l.rng.Float64()*2*l.RPENoise - l.RPENoise
	return math.Max(1.0, math.Min(10.0, rpe))
}

// AdaptAfterSession grows base strength, faster when most of the session
// landed in the target band.
func (l *Lifter) AdaptAfterSession(sessionRPEs []float64, bandMin, bandMax float64) {
	if len(sessionRPEs) == 0 {
		return
	}
	inZone := 0
	for _, r := range sessionRPEs {
		if r >= bandMin && r <= bandMax {
			inZone++
		}
	}
	rate := float64(inZone) / float64(len(sessionRPEs))
	if rate >= 0.60 {
		l.BaseStrength += l.AdaptGood
	} else {
		l.BaseStrength += l.AdaptBad
	}
}

// #endregion lifter

// #region summary
// Summary aggregates a completed run.
type Summary struct {
	TotalSets   int
	InZoneSets  int
	FinalWeight float64
}

// HitRate is the fraction of sets that landed in the target band.
func (s Summary) HitRate() float64 {
	if s.TotalSets == 0 {
		return 0
	}
	return float64(s.InZoneSets) / float64(s.TotalSets)
}

// Record folds one performed set into the summary.
func (s *Summary) Record(set lift.SetLog, bandMin, bandMax float64) bool {
	s.TotalSets++
	s.FinalWeight = set.Weight
	inZone := set.RPE >= bandMin && set.RPE <= bandMax
	if inZone {
		s.InZoneSets++
	}
	return inZone
}

// #endregion summary
