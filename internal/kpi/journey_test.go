package kpi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funnelcast/funnelcast/internal/model"
	"github.com/funnelcast/funnelcast/internal/reconcile"
)

func journeyDataset() *reconcile.Dataset {
	d := func(day int) time.Time { return time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC) }
	return &reconcile.Dataset{
		Leads: []model.LeadRecord{
			{Date: d(1), Email: "ana@test.com", Name: "ana lopez", Campaign: "IG Reels"},
			{Date: d(2), Email: "luis@test.com", Name: "Luis P", Campaign: "FB"},
		},
		Qualified: []model.LeadRecord{
			{Date: d(3), Email: "ana@test.com", Name: "ana lopez"},
		},
		Sales: []model.SalesRecord{
			{Date: d(5), Email: "ana@test.com", Name: "Ana Lopez", Closer: "Marta",
				Outcome: model.OutcomeSale, OutcomeRaw: "Venta", Amount: 1000, Campaign: "IG Reels"},
			{Date: d(20), Email: "ana@test.com", Name: "Ana Lopez", Closer: "Marta",
				Outcome: model.OutcomeSale, OutcomeRaw: "Venta cuota 2", Amount: 500, Campaign: "IG Reels"},
			{Date: d(6), Email: "luis@test.com", Name: "Luis P", Closer: "Leo",
				Outcome: model.OutcomeNoShow, OutcomeRaw: "No Show", Amount: 0, Campaign: "FB"},
		},
	}
}

func TestLeadJourney(t *testing.T) {
	j := LeadJourney(journeyDataset(), " ANA@Test.com ")

	assert.True(t, j.Found())
	assert.Equal(t, "ana@test.com", j.Email)
	assert.Equal(t, "Ana Lopez", j.Name, "closer sheet name wins over the form name")

	require.NotNil(t, j.Intake)
	assert.Equal(t, "IG Reels", j.Intake.Campaign)
	require.NotNil(t, j.Qualified)
	assert.Equal(t, 3, j.Qualified.Date.Day())

	require.Len(t, j.Calls, 2)
	assert.Equal(t, 1500.0, j.TotalPaid, "installment payments sum")
}

func TestLeadJourneyNoSaleYet(t *testing.T) {
	j := LeadJourney(journeyDataset(), "luis@test.com")

	assert.True(t, j.Found())
	assert.Nil(t, j.Qualified)
	require.Len(t, j.Calls, 1)
	assert.Equal(t, 0.0, j.TotalPaid, "a no-show contributes nothing")
}

func TestLeadJourneyUnknownEmail(t *testing.T) {
	j := LeadJourney(journeyDataset(), "nadie@test.com")
	assert.False(t, j.Found())

	empty := LeadJourney(journeyDataset(), "   ")
	assert.False(t, empty.Found())
	assert.Empty(t, empty.Email)
}

func TestLeadJourneyNameFallsBackToForm(t *testing.T) {
	ds := &reconcile.Dataset{
		Leads: []model.LeadRecord{
			{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Email: "eva@x.com", Name: "Eva R"},
		},
	}
	j := LeadJourney(ds, "eva@x.com")
	assert.Equal(t, "Eva R", j.Name)
}

func TestCustomerRanking(t *testing.T) {
	d := func(day int) time.Time { return time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC) }
	sales := []model.SalesRecord{
		{Date: d(5), Email: "ana@test.com", Name: "Ana", Outcome: model.OutcomeSale, Amount: 1000, Campaign: "IG"},
		{Date: d(6), Email: "beto@test.com", Name: "Beto", Outcome: model.OutcomeSale, Amount: 1200, Campaign: "FB"},
		{Date: d(20), Email: "ana@test.com", Name: "Ana", Outcome: model.OutcomeSale, Amount: 500, Campaign: "TikTok"},
		{Date: d(7), Email: "carla@test.com", Name: "Carla", Outcome: model.OutcomeNoShow, Amount: 0},
	}

	ranking := CustomerRanking(sales)

	require.Len(t, ranking, 2, "non-sale outcomes stay out of the ranking")
	assert.Equal(t, "ana@test.com", ranking[0].Email)
	assert.Equal(t, 1500.0, ranking[0].Revenue, "installments sum into one customer")
	assert.Equal(t, "IG", ranking[0].Campaign, "first recorded campaign wins")
	assert.Equal(t, 20, ranking[0].LastPurchase.Day())
	assert.Equal(t, "beto@test.com", ranking[1].Email)
}

func TestCustomerRankingTiesKeepFirstSeenOrder(t *testing.T) {
	d := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	sales := []model.SalesRecord{
		{Date: d, Email: "a@x.com", Name: "A", Outcome: model.OutcomeSale, Amount: 700},
		{Date: d, Email: "b@x.com", Name: "B", Outcome: model.OutcomeSale, Amount: 700},
		{Date: d, Email: "c@x.com", Name: "C", Outcome: model.OutcomeSale, Amount: 700},
	}

	for i := 0; i < 5; i++ {
		ranking := CustomerRanking(sales)
		require.Len(t, ranking, 3)
		assert.Equal(t, "a@x.com", ranking[0].Email)
		assert.Equal(t, "b@x.com", ranking[1].Email)
		assert.Equal(t, "c@x.com", ranking[2].Email)
	}
}

func TestCustomerRankingWithoutEmails(t *testing.T) {
	d := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	sales := []model.SalesRecord{
		{Date: d, Name: "Walk-in", Outcome: model.OutcomeSale, Amount: 300},
		{Date: d, Name: "Walk-in", Outcome: model.OutcomeSale, Amount: 200},
	}

	ranking := CustomerRanking(sales)
	require.Len(t, ranking, 2, "rows without an email never merge")
	assert.Equal(t, 300.0, ranking[0].Revenue)
}
