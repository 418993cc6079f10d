package ml

import (
	"math"

	"github.com/danielpatrickdp/kinetiq/go-engine/internal/lift"
)

// #region linucb
// LinUCB is a contextual bandit over the fixed action set. Per action it
// maintains the inverse of (I + sum x x^T) via Sherman-Morrison rank-one
// updates and a reward-weighted feature accumulator.
type LinUCB struct {
	Dim   int                       `json:"dim"`
	Alpha float64                   `json:"alpha"`
	AInv  map[lift.Action]*Matrix   `json:"a_inv"`
	B     map[lift.Action][]float64 `json:"b"`
}

// NewLinUCB creates a bandit with the given context dimension and exploration
// constant.
func NewLinUCB(dim int, alpha float64) *LinUCB {
	return &LinUCB{
		Dim:   dim,
		Alpha: alpha,
		AInv:  make(map[lift.Action]*Matrix),
		B:     make(map[lift.Action][]float64),
	}
}

func (b *LinUCB) ensure(action lift.Action) {
	if _, ok := b.AInv[action]; !ok {
		b.AInv[action] = Identity(b.Dim)
		b.B[action] = make([]float64, b.Dim)
	}
}

// Score returns the upper-confidence estimate for an action in context x:
// theta·x + alpha*sqrt(x^T A^-1 x), theta = A^-1 b.
func (b *LinUCB) Score(action lift.Action, x []float64) float64 {
	b.ensure(action)
	theta := b.AInv[action].MulVec(b.B[action])
	mean := dot(theta, x)
	variance := dot(x, b.AInv[action].MulVec(x))
	return mean + b.Alpha*math.Sqrt(math.Max(0, variance))
}

// Choose returns the highest-scoring action, first argmax on ties.
func (b *LinUCB) Choose(actions []lift.Action, x []float64) lift.Action {
	best := actions[0]
	bestScore := b.Score(best, x)
	for _, a := range actions[1:] {
		if s := b.Score(a, x); s > bestScore {
			best, bestScore = a, s
		}
	}
	return best
}

// Update folds an observed reward into the chosen action's matrix and
// accumulator. Other actions are untouched.
func (b *LinUCB) Update(action lift.Action, x []float64, reward float64) {
	b.ensure(action)
	b.AInv[action].RankOneUpdate(x)
	acc := b.B[action]
	for i := 0; i < b.Dim; i++ {
		acc[i] += reward * x[i]
	}
}

// #endregion linucb
