package kpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funnelcast/funnelcast/internal/model"
)

func TestFunnelStages(t *testing.T) {
	stages := Funnel(model.Totals{
		Clicks:        1000,
		LandingVisits: 500,
		Leads:         100,
		Qualified:     50,
		Booked:        25,
		Attended:      20,
		Sales:         5,
	})

	require.Len(t, stages, 7)
	assert.Equal(t, "Clics", stages[0].Name)
	assert.Equal(t, 100.0, stages[0].PctPrevious)
	assert.Equal(t, 50.0, stages[1].PctPrevious)
	assert.Equal(t, 20.0, stages[2].PctPrevious)
	assert.Equal(t, 50.0, stages[3].PctPrevious)
	assert.Equal(t, 50.0, stages[4].PctPrevious)
	assert.Equal(t, 80.0, stages[5].PctPrevious)
	assert.Equal(t, 25.0, stages[6].PctPrevious)
}

func TestFunnelZeroStageYieldsZeroPercent(t *testing.T) {
	stages := Funnel(model.Totals{Clicks: 100, LandingVisits: 0, Leads: 10})

	assert.Equal(t, 0.0, stages[1].PctPrevious)
	assert.Equal(t, 0.0, stages[2].PctPrevious, "zero previous stage never divides")
	assert.Equal(t, 10.0, stages[2].Value)
}
