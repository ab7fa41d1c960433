package config

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funnelcast/funnelcast/internal/classify"
	"github.com/funnelcast/funnelcast/internal/common"
	"github.com/funnelcast/funnelcast/internal/kpi"
	"github.com/funnelcast/funnelcast/internal/normalize"
	"github.com/funnelcast/funnelcast/internal/reconcile"
)

func loadYAML(t *testing.T, yaml string) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.SetConfigType("yaml")
	require.NoError(t, viper.ReadConfig(bytes.NewBufferString(yaml)))
}

func TestLoadSources(t *testing.T) {
	loadYAML(t, `
sources:
  - id: ventas
    url: https://example.com/ventas.csv
    kind: sales
    decimal: comma
    day_first: true
    repair: true
  - id: budget_2026
    url: https://example.com/budget.csv
    kind: spend
  - id: journey
    url: https://example.com/journey.csv
    kind: sales
    repair: true
    repair_offset: 6
    repair_min_columns: 7
`)

	sources, err := LoadSources()
	require.NoError(t, err)
	require.Len(t, sources, 3)

	ventas := sources[0]
	assert.Equal(t, reconcile.KindSales, ventas.Kind)
	assert.Equal(t, normalize.CommaDecimal, ventas.Decimal)
	assert.True(t, ventas.DayFirst)
	require.NotNil(t, ventas.Repair)
	assert.Equal(t, normalize.DefaultRepair(), *ventas.Repair)

	spend := sources[1]
	assert.Equal(t, reconcile.KindSpend, spend.Kind)
	assert.Nil(t, spend.Repair)

	journey := sources[2]
	require.NotNil(t, journey.Repair)
	assert.Equal(t, 6, journey.Repair.Offset)
	assert.Equal(t, 7, journey.Repair.MinColumns)
}

func TestLoadSourcesValidation(t *testing.T) {
	loadYAML(t, ``)
	_, err := LoadSources()
	assert.ErrorIs(t, err, common.ErrMissingConfig)

	loadYAML(t, `
sources:
  - url: https://example.com/x.csv
`)
	_, err = LoadSources()
	assert.ErrorIs(t, err, common.ErrInvalidConfig)

	loadYAML(t, `
sources:
  - id: x
    url: https://example.com/x.csv
    kind: nonsense
`)
	_, err = LoadSources()
	assert.ErrorIs(t, err, common.ErrInvalidConfig)

	loadYAML(t, `
sources:
  - id: x
    url: https://example.com/x.csv
    decimal: semicolon
`)
	_, err = LoadSources()
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestLoadPolicies(t *testing.T) {
	loadYAML(t, `
policies:
  attendance: inclusive
  lead_count: rows
`)
	attendance, leadCount := LoadPolicies()
	assert.Equal(t, classify.PolicyInclusive, attendance)
	assert.Equal(t, kpi.CountRows, leadCount)

	loadYAML(t, ``)
	attendance, leadCount = LoadPolicies()
	assert.Equal(t, classify.PolicyByCategory, attendance)
	assert.Equal(t, kpi.CountAuto, leadCount)
}
