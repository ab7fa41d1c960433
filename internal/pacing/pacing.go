// Package pacing projects partial-month actuals against the configured goals.
// All projections are linear run rates; the scenario bands are fixed
// sensitivity multipliers, not a forecast model.
package pacing

import (
	"time"

	"github.com/funnelcast/funnelcast/internal/kpi"
	"github.com/funnelcast/funnelcast/internal/model"
)

// Scenario band multipliers applied to the realistic run rate.
const (
	PessimisticFactor = 0.85
	OptimisticFactor  = 1.15
)

// Calendar fixes the position inside the month a projection runs from.
type Calendar struct {
	DayOfMonth    int
	DaysInMonth   int
	DaysRemaining int
}

// CalendarFor derives the calendar position from a point in time.
func CalendarFor(t time.Time) Calendar {
	year, month, day := t.Date()
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, t.Location()).Day()
	return Calendar{
		DayOfMonth:    day,
		DaysInMonth:   last,
		DaysRemaining: last - day,
	}
}

// Revenue projects period revenue against the target.
func Revenue(actual, target float64, cal Calendar) model.Pacing {
	p := model.Pacing{
		Target:    target,
		Actual:    actual,
		Remaining: maxf(target-actual, 0),
	}
	if target > 0 {
		p.Progress = minf(actual/target, 1)
	}
	p.RunRate = kpi.SafeDiv(actual, float64(cal.DayOfMonth)) * float64(cal.DaysInMonth)
	p.ActualDaily = kpi.SafeDiv(actual, float64(cal.DayOfMonth))
	if cal.DaysRemaining > 0 {
		p.RequiredDaily = p.Remaining / float64(cal.DaysRemaining)
	} else {
		// Last day of the month: the whole remainder is due today.
		p.RequiredDaily = p.Remaining
	}
	p.Pessimistic = p.RunRate * PessimisticFactor
	p.Optimistic = p.RunRate * OptimisticFactor
	p.OnPace = p.RunRate >= target
	return p
}

// Budget tracks ad spend against the monthly budget and flags overspend when
// the actual daily average exceeds the ideal daily for the remainder.
func Budget(spent, budget float64, cal Calendar) model.BudgetPacing {
	b := model.BudgetPacing{
		Budget:    budget,
		Spent:     spent,
		Remaining: maxf(budget-spent, 0),
	}
	if budget > 0 {
		b.Consumed = minf(spent/budget, 1)
	}
	b.ActualDaily = kpi.SafeDiv(spent, float64(cal.DayOfMonth))
	if cal.DaysRemaining > 0 {
		b.IdealDaily = b.Remaining / float64(cal.DaysRemaining)
	} else {
		b.IdealDaily = b.Remaining
	}
	b.ProjectedEnd = b.ActualDaily * float64(cal.DaysInMonth)
	b.Overspending = b.ActualDaily > b.IdealDaily || spent > budget
	return b
}

// Fill attaches both projections to a computed report.
func Fill(r *model.Report, goals model.GoalConfig, cal Calendar) {
	r.Revenue = Revenue(r.Totals.Revenue, goals.RevenueTarget, cal)
	r.Budget = Budget(r.Totals.Spend, goals.AdBudgetTarget, cal)
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
