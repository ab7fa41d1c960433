package model

import "time"

// GoalConfig holds the externally-owned monthly targets. The pipeline reads the
// latest value on every aggregation and never mutates it.
type GoalConfig struct {
	RevenueTarget  float64
	AdBudgetTarget float64
	UpdatedAt      time.Time
}

// DefaultGoals are used until the operator sets real targets.
func DefaultGoals() GoalConfig {
	return GoalConfig{
		RevenueTarget:  30000,
		AdBudgetTarget: 5000,
	}
}

// Validate rejects targets that would poison every derived ratio.
func (g GoalConfig) Validate() error {
	if g.RevenueTarget < 0 {
		return ErrNegativeTarget("revenue_target")
	}
	if g.AdBudgetTarget < 0 {
		return ErrNegativeTarget("ad_budget_target")
	}
	return nil
}

// ErrNegativeTarget reports a goal field set below zero.
type ErrNegativeTarget string

func (e ErrNegativeTarget) Error() string {
	return "goal " + string(e) + " cannot be negative"
}
