// Package engine selects between the deterministic rule policy and the
// learned policy. The learned layer is an optional capability: when disabled
// or missing its state, behavior is identical to the rule engine.
package engine

import (
	"github.com/danielpatrickdp/kinetiq/go-engine/internal/lift"
	"github.com/danielpatrickdp/kinetiq/go-engine/internal/ml"
	"github.com/danielpatrickdp/kinetiq/go-engine/internal/rules"
)

// #region policy-interface
// Policy produces the next-set suggestion from the last performed set.
// History is chronological, oldest first, and includes the last set.
type Policy interface {
	Suggest(last lift.SetLog, cfg lift.ExerciseConfig, settings lift.Settings, history lift.History, debug bool) (lift.Suggestion, error)
}

// #endregion policy-interface

// #region rule-policy
// RulePolicy is the deterministic autoregulation policy.
type RulePolicy struct{}

// Suggest delegates to the rule engine.
func (RulePolicy) Suggest(last lift.SetLog, cfg lift.ExerciseConfig, settings lift.Settings, history lift.History, debug bool) (lift.Suggestion, error) {
	return rules.Suggest(last, cfg, settings, history, debug)
}

// #endregion rule-policy

// #region learned-policy
// LearnedPolicy wraps the online-learning policy and keeps a RulePolicy as
// its guardrail fallback.
type LearnedPolicy struct {
	policy *ml.Policy
	rule   RulePolicy
}

// NewLearnedPolicy builds a learned policy over caller-owned state.
func NewLearnedPolicy(state *ml.State, userID string) *LearnedPolicy {
	return &LearnedPolicy{policy: ml.NewPolicy(state, userID)}
}

// Suggest runs the learned policy, falling back to the rule engine when the
// learning state is absent.
func (p *LearnedPolicy) Suggest(last lift.SetLog, cfg lift.ExerciseConfig, settings lift.Settings, history lift.History, debug bool) (lift.Suggestion, error) {
	if p.policy == nil || p.policy.State == nil {
		return p.rule.Suggest(last, cfg, settings, history, debug)
	}
	return p.policy.Suggest(last, cfg, settings, history, debug)
}

// #endregion learned-policy

// #region constructor
// New picks the policy at construction time. A nil state degrades to the
// rule engine even when useML is set, so a missing learned layer never fails
// a call.
func New(useML bool, state *ml.State, userID string) Policy {
	if useML && state != nil {
		return NewLearnedPolicy(state, userID)
	}
	return RulePolicy{}
}

// #endregion constructor
