package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/funnelcast/funnelcast/internal/kpi"
	"github.com/funnelcast/funnelcast/internal/model"
	"github.com/funnelcast/funnelcast/internal/pacing"
	"github.com/funnelcast/funnelcast/internal/service"
)

func TestMoneyFormatting(t *testing.T) {
	assert.Equal(t, "$0.00", money(0))
	assert.Equal(t, "$950.50", money(950.5))
	assert.Equal(t, "$1,234.56", money(1234.56))
	assert.Equal(t, "$1,234,567.89", money(1234567.89))
	assert.Equal(t, "-$1,500.00", money(-1500))
}

func TestRenderReport(t *testing.T) {
	r := &model.Report{
		Range: model.DateRange{
			Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		},
		Closers: []model.CloserStanding{
			{Closer: "Marta", Revenue: 1500, Booked: 10, Attended: 8, Sales: 3, ShowRate: 0.8, CloseRate: 0.375},
		},
		Funnel: []model.FunnelStage{
			{Name: "Leads", Value: 100, PctPrevious: 100},
		},
		Warnings: []model.Warning{{SourceID: "budget_dic", Message: "unreachable"}},
	}
	r.Totals.Revenue = 1500
	r.Totals.Spend = 300

	var buf bytes.Buffer
	RenderReport(&buf, r)
	out := buf.String()

	assert.Contains(t, out, "KPI Report")
	assert.Contains(t, out, "$1,500.00")
	assert.Contains(t, out, "Marta")
	assert.Contains(t, out, "budget_dic")
	assert.Contains(t, out, "unreachable")
}

func TestRenderReportNoData(t *testing.T) {
	r := &model.Report{NoData: true}

	var buf bytes.Buffer
	RenderReport(&buf, r)
	assert.Contains(t, buf.String(), "No records")
}

func TestRenderPlan(t *testing.T) {
	out := pacing.Plan(pacing.PlanInput{
		Budget: 1000, Days: 10, ProductPrice: 50, TargetROAS: 3,
		Channels: []pacing.ChannelSplit{{Name: "Meta", Pct: 70}},
	})

	var buf bytes.Buffer
	RenderPlan(&buf, out)
	text := buf.String()

	assert.Contains(t, text, "$3,000.00")
	assert.Contains(t, text, "Meta")
	assert.Contains(t, text, "70%, not 100%")
}

func TestRenderRunsEmpty(t *testing.T) {
	var buf bytes.Buffer
	RenderRuns(&buf, nil)
	assert.Contains(t, buf.String(), "No recorded runs")
}

func TestRenderJourney(t *testing.T) {
	j := kpi.Journey{
		Email: "ana@test.com",
		Name:  "Ana Lopez",
		Intake: &model.LeadRecord{
			Date:     time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC),
			Campaign: "IG Reels",
		},
		Calls: []model.SalesRecord{
			{Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Closer: "Marta",
				Outcome: model.OutcomeSale, OutcomeRaw: "Venta", Amount: 1500},
		},
		TotalPaid: 1500,
	}

	var buf bytes.Buffer
	RenderJourney(&buf, j)
	out := buf.String()
	assert.Contains(t, out, "Ana Lopez <ana@test.com>")
	assert.Contains(t, out, "IG Reels")
	assert.Contains(t, out, "Not in the qualified list")
	assert.Contains(t, out, "Marta")
	assert.Contains(t, out, "$1,500.00")
}

func TestRenderJourneyNotFound(t *testing.T) {
	var buf bytes.Buffer
	RenderJourney(&buf, kpi.Journey{Email: "nadie@test.com"})
	assert.Contains(t, buf.String(), "No record of nadie@test.com")
}

func TestRenderCustomers(t *testing.T) {
	ranking := []kpi.CustomerStanding{
		{Email: "ana@test.com", Name: "Ana", Revenue: 1500,
			LastPurchase: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)},
		{Email: "beto@test.com", Name: "Beto", Revenue: 900,
			LastPurchase: time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)},
	}

	var buf bytes.Buffer
	RenderCustomers(&buf, ranking)
	out := buf.String()
	assert.Contains(t, out, "Ana")
	assert.Contains(t, out, "$1,500.00")
	assert.Contains(t, out, "2024-03-20")

	buf.Reset()
	RenderCustomers(&buf, nil)
	assert.Contains(t, buf.String(), "No sales recorded yet")
}

func TestRenderRuns(t *testing.T) {
	runs := []service.RunSummary{
		{
			RanAt:   time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC),
			Start:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			End:     time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
			Revenue: 12500,
			Spend:   2200,
			Sales:   9,
		},
	}

	var buf bytes.Buffer
	RenderRuns(&buf, runs)
	out := buf.String()
	assert.Contains(t, out, "2024-03-10 09:30")
	assert.Contains(t, out, "$12,500.00")
}
