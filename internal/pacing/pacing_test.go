package pacing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funnelcast/funnelcast/internal/model"
)

func TestRevenuePacing(t *testing.T) {
	cal := Calendar{DayOfMonth: 10, DaysInMonth: 30, DaysRemaining: 20}
	p := Revenue(250, 1000, cal)

	assert.Equal(t, 0.25, p.Progress)
	assert.Equal(t, 750.0, p.Remaining)
	assert.Equal(t, 750.0, p.RunRate)
	assert.Equal(t, 37.5, p.RequiredDaily)
	assert.Equal(t, 25.0, p.ActualDaily)
	assert.InDelta(t, 637.5, p.Pessimistic, 0.001)
	assert.InDelta(t, 862.5, p.Optimistic, 0.001)
	assert.False(t, p.OnPace)
}

func TestRevenuePacingLastDay(t *testing.T) {
	cal := Calendar{DayOfMonth: 30, DaysInMonth: 30, DaysRemaining: 0}
	p := Revenue(400, 1000, cal)

	assert.Equal(t, 600.0, p.RequiredDaily, "the whole remainder is due on the last day")
}

func TestRevenuePacingClamps(t *testing.T) {
	cal := Calendar{DayOfMonth: 10, DaysInMonth: 30, DaysRemaining: 20}

	over := Revenue(1500, 1000, cal)
	assert.Equal(t, 1.0, over.Progress)
	assert.Equal(t, 0.0, over.Remaining)
	assert.Equal(t, 0.0, over.RequiredDaily)
	assert.True(t, over.OnPace)

	zeroGoal := Revenue(500, 0, cal)
	assert.Equal(t, 0.0, zeroGoal.Progress)

	zeroDay := Revenue(500, 1000, Calendar{DayOfMonth: 0, DaysInMonth: 30, DaysRemaining: 30})
	assert.Equal(t, 0.0, zeroDay.RunRate)
}

func TestBudgetPacing(t *testing.T) {
	cal := Calendar{DayOfMonth: 10, DaysInMonth: 30, DaysRemaining: 20}
	b := Budget(2000, 5000, cal)

	assert.Equal(t, 0.4, b.Consumed)
	assert.Equal(t, 3000.0, b.Remaining)
	assert.Equal(t, 150.0, b.IdealDaily)
	assert.Equal(t, 200.0, b.ActualDaily)
	assert.Equal(t, 6000.0, b.ProjectedEnd)
	assert.True(t, b.Overspending)
}

func TestBudgetPacingExhaustedEarly(t *testing.T) {
	// Budget fully consumed with two thirds of the month left: nothing
	// remains for the ideal daily, so any spend rate is over pace.
	cal := Calendar{DayOfMonth: 10, DaysInMonth: 30, DaysRemaining: 20}
	b := Budget(5000, 5000, cal)

	assert.Equal(t, 1.0, b.Consumed)
	assert.Equal(t, 0.0, b.Remaining)
	assert.Equal(t, 0.0, b.IdealDaily)
	assert.Equal(t, 500.0, b.ActualDaily)
	assert.True(t, b.Overspending)
}

func TestBudgetPacingUnderspend(t *testing.T) {
	cal := Calendar{DayOfMonth: 10, DaysInMonth: 30, DaysRemaining: 20}
	b := Budget(1000, 5000, cal)

	assert.Equal(t, 100.0, b.ActualDaily)
	assert.Equal(t, 200.0, b.IdealDaily)
	assert.False(t, b.Overspending)
}

func TestCalendarFor(t *testing.T) {
	cal := CalendarFor(time.Date(2024, 2, 10, 15, 30, 0, 0, time.UTC))
	assert.Equal(t, Calendar{DayOfMonth: 10, DaysInMonth: 29, DaysRemaining: 19}, cal)

	end := CalendarFor(time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 0, end.DaysRemaining)
}

func TestFill(t *testing.T) {
	r := &model.Report{}
	r.Totals.Revenue = 250
	r.Totals.Spend = 100
	Fill(r, model.GoalConfig{RevenueTarget: 1000, AdBudgetTarget: 500},
		Calendar{DayOfMonth: 10, DaysInMonth: 30, DaysRemaining: 20})

	assert.Equal(t, 0.25, r.Revenue.Progress)
	assert.Equal(t, 0.2, r.Budget.Consumed)
}

func TestPlan(t *testing.T) {
	out := Plan(PlanInput{Budget: 1000, Days: 10, ProductPrice: 50, TargetROAS: 3})

	assert.Equal(t, 100.0, out.DailySpend)
	assert.Equal(t, 3000.0, out.ProjectedRevenue)
	assert.Equal(t, 60, out.ProjectedSales)
	assert.Equal(t, 2000.0, out.ProjectedProfit)
	assert.Equal(t, 200.0, out.MarginPct)
	assert.True(t, out.FullyAllocated)
}

func TestPlanChannelSplit(t *testing.T) {
	out := Plan(PlanInput{Budget: 1000, Days: 10, ProductPrice: 50, TargetROAS: 3, Channels: DefaultChannels()})

	require.Len(t, out.Channels, 4)
	assert.Equal(t, 500.0, out.Channels[0].Total)
	assert.Equal(t, 50.0, out.Channels[0].Daily)
	assert.Equal(t, 100.0, out.AllocatedPct)
	assert.True(t, out.FullyAllocated)

	partial := Plan(PlanInput{Budget: 1000, Days: 10, Channels: []ChannelSplit{{Name: "Meta", Pct: 70}}})
	assert.False(t, partial.FullyAllocated)
	assert.Equal(t, 70.0, partial.AllocatedPct)
}

func TestPlanDegenerateInput(t *testing.T) {
	assert.Zero(t, Plan(PlanInput{Budget: 0, Days: 10}).ProjectedRevenue)
	assert.Zero(t, Plan(PlanInput{Budget: 100, Days: 0}).DailySpend)
	assert.Zero(t, Plan(PlanInput{Budget: 100, Days: 5, TargetROAS: 3, ProductPrice: 0}).ProjectedSales)
}
