package ml

import (
	"github.com/danielpatrickdp/kinetiq/go-engine/internal/lift"
)

// #region history-summary
// HistorySummary is a 3-set rolling view of recent effort.
type HistorySummary struct {
	LastRPE float64
	AvgRPE3 float64
	Trend3  float64 // most recent minus oldest of the window
}

// SummarizeHistory reduces a chronological history to its recent-effort
// summary. An empty history defaults to a hard-ish prior (RPE 8, flat trend).
func SummarizeHistory(history lift.History) HistorySummary {
	if len(history) == 0 {
		return HistorySummary{LastRPE: 8.0, AvgRPE3: 8.0, Trend3: 0.0}
	}
	recent := history
	if len(history) > 3 {
		recent = history[len(history)-3:]
	}
	last := recent[len(recent)-1].RPE
	var avg float64
	for _, s := range recent {
		avg += s.RPE
	}
	avg /= float64(len(recent))
	trend := 0.0
	if len(recent) >= 2 {
		trend = recent[len(recent)-1].RPE - recent[0].RPE
	}
	return HistorySummary{LastRPE: last, AvgRPE3: avg, Trend3: trend}
}

// FatigueLabel derives the self-supervised readiness target: 1 when the
// 3-set RPE trend is climbing steeply, else 0.
func FatigueLabel(history lift.History) float64 {
	if SummarizeHistory(history).Trend3 >= 0.8 {
		return 1.0
	}
	return 0.0
}

// #endregion history-summary

// #region feature-vector
// FeatureVector encodes a proposed (weight, reps) plus exercise, settings,
// and recent history into the fixed 16-dim context consumed by every model.
// Embeddings are looked up (or lazily created) from the learning state.
func FeatureVector(
	state *State,
	userID string,
	exercise lift.ExerciseConfig,
	settings lift.Settings,
	proposedWeight float64,
	proposedReps int,
	history lift.History,
) []float64 {
	h := SummarizeHistory(history)

	u := state.UserEmbed.Get(userID)
	e := state.ExerciseEmbed.Get(exercise.Name)

	unitFlag := 0.0
	if settings.Unit == lift.Kilograms {
		unitFlag = 1.0
	}

	return []float64{
		proposedWeight / 500.0,
		float64(proposedReps) / 30.0,
		float64(exercise.RepMin) / 30.0,
		float64(exercise.RepMax) / 30.0,
		h.LastRPE / 10.0,
		h.AvgRPE3 / 10.0,
		clamp(h.Trend3/10.0, -1.0, 1.0),
		unitFlag,
		u[0], u[1], u[2], u[3],
		e[0], e[1], e[2], e[3],
	}
}

// #endregion feature-vector
