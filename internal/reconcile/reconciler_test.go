package reconcile

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funnelcast/funnelcast/internal/classify"
	"github.com/funnelcast/funnelcast/internal/model"
	"github.com/funnelcast/funnelcast/internal/normalize"
	"github.com/funnelcast/funnelcast/internal/source"
)

func testReconciler(f source.Fetcher) *Reconciler {
	return New(f, slog.Default(), classify.PolicyByCategory)
}

func TestLoadSales(t *testing.T) {
	mem := &source.MemFetcher{Tables: map[string]*source.RawTable{
		"ventas": {
			Header: []string{"Fecha", "Lead Name", "Email", "Monto ($)", "Closer", "Resultado", "Origen Campaña"},
			Rows: [][]string{
				{"01/03/2024", "Ana L", "ANA@Test.com ", "$1,500", "Marta", "Venta cerrada", "IG Reels"},
				{"02/03/2024", "Luis P", "luis@test.com", "", "", "No Show", ""},
				{"sin fecha", "Roto", "", "$100", "X", "Venta", ""},
			},
		},
	}}

	ds := testReconciler(mem).Load(context.Background(), []Source{
		{ID: "ventas", URL: "u", Kind: KindSales, DayFirst: true},
	})

	require.Len(t, ds.Sales, 2, "row without parseable date must be dropped")
	first := ds.Sales[0]
	assert.Equal(t, 1500.0, first.Amount)
	assert.Equal(t, "Marta", first.Closer)
	assert.Equal(t, "Ana L", first.Name)
	assert.Equal(t, model.OutcomeSale, first.Outcome)
	assert.True(t, first.Attended)
	assert.Equal(t, "ana@test.com", first.Email)
	assert.Equal(t, "IG Reels", first.Campaign)

	second := ds.Sales[1]
	assert.Equal(t, model.UnassignedCloser, second.Closer)
	assert.Equal(t, model.UnknownCampaign, second.Campaign)
	assert.Equal(t, 0.0, second.Amount)
	assert.False(t, second.Attended)
}

func TestLoadSpendUnionsHeterogeneousSources(t *testing.T) {
	mem := &source.MemFetcher{Tables: map[string]*source.RawTable{
		// Legacy sheet: day-first dates, no click tracking.
		"budget_dic": {
			Header: []string{"Fecha", "Gasto"},
			Rows: [][]string{
				{"15/12/2025", "$200"},
				{"16/12/2025", "$250"},
			},
		},
		// Current sheet: exported by the ads platform with ISO dates.
		"budget_2026": {
			Header: []string{"Day", "Amount spent", "Link clicks", "Landing page views"},
			Rows: [][]string{
				{"2026-01-02", "120.50", "340", "180"},
				{"2025-12-16", "80", "100", "60"}, // overlaps the legacy sheet
			},
		},
	}}

	ds := testReconciler(mem).Load(context.Background(), []Source{
		{ID: "budget_dic", URL: "u1", Kind: KindSpend, DayFirst: true},
		{ID: "budget_2026", URL: "u2", Kind: KindSpend},
	})

	require.Len(t, ds.Spend, 4)

	// Sorted ascending; the overlapping date keeps both rows (additive union).
	var onOverlap []float64
	for _, rec := range ds.Spend {
		if rec.Date.Day() == 16 {
			onOverlap = append(onOverlap, rec.Spend)
		}
	}
	assert.Equal(t, []float64{250, 80}, onOverlap)
	assert.False(t, ds.Spend[0].Date.After(ds.Spend[1].Date))
	assert.False(t, ds.Spend[2].Date.After(ds.Spend[3].Date))

	// Legacy sheet rows default their missing count columns to zero.
	assert.Equal(t, 0, ds.Spend[0].Clicks)

	// The missing columns must be called out by name.
	var msgs []string
	for _, w := range ds.Warnings {
		if w.SourceID == "budget_dic" {
			msgs = append(msgs, w.Message)
		}
	}
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0], "clicks")
	assert.Contains(t, msgs[1], "visits")
}

func TestLoadAppliesRowRepair(t *testing.T) {
	// A shifted export row: anchor blank, values displaced 8 columns right.
	shifted := []string{"", "", "", "", "", "", "", "", "05/03/2024", "Eva", "eva@x.com", "$900", "Leo", "Venta", "FB", ""}
	normal := []string{"06/03/2024", "Tom", "tom@x.com", "$100", "Leo", "No Show", "FB", "", "", "", "", "", "", "", "", ""}

	mem := &source.MemFetcher{Tables: map[string]*source.RawTable{
		"closers": {
			Header: []string{"Fecha", "Nombre", "Email", "Monto ($)", "Closer", "Resultado", "Campaña", "Notas",
				"c9", "c10", "c11", "c12", "c13", "c14", "c15", "c16"},
			Rows: [][]string{shifted, normal},
		},
	}}

	repair := normalize.DefaultRepair()
	ds := testReconciler(mem).Load(context.Background(), []Source{
		{ID: "closers", URL: "u", Kind: KindSales, DayFirst: true, Repair: &repair},
	})

	require.Len(t, ds.Sales, 2)
	assert.Equal(t, "Leo", ds.Sales[0].Closer)
	assert.Equal(t, "Eva", ds.Sales[0].Name)
	assert.Equal(t, 900.0, ds.Sales[0].Amount)
	assert.Equal(t, "eva@x.com", ds.Sales[0].Email)
	assert.Equal(t, model.OutcomeSale, ds.Sales[0].Outcome)
}

func TestLoadFailSoft(t *testing.T) {
	mem := &source.MemFetcher{Tables: map[string]*source.RawTable{
		"ok": {
			Header: []string{"Fecha", "Gasto"},
			Rows:   [][]string{{"01/01/2024", "50"}},
		},
	}}

	ds := testReconciler(mem).Load(context.Background(), []Source{
		{ID: "down", URL: "u", Kind: KindSales},
		{ID: "ok", URL: "u", Kind: KindSpend, DayFirst: true},
	})

	assert.Empty(t, ds.Sales)
	require.Len(t, ds.Spend, 1)
	require.NotEmpty(t, ds.Warnings)
	assert.Equal(t, "down", ds.Warnings[0].SourceID)
	assert.False(t, ds.Empty())
}

func TestLoadSkipsSourceWithoutDateColumn(t *testing.T) {
	mem := &source.MemFetcher{Tables: map[string]*source.RawTable{
		"broken": {
			Header: []string{"Quien", "Cuanto"},
			Rows:   [][]string{{"Ana", "100"}},
		},
	}}

	ds := testReconciler(mem).Load(context.Background(), []Source{
		{ID: "broken", URL: "u", Kind: KindSales},
	})

	assert.True(t, ds.Empty())
	require.NotEmpty(t, ds.Warnings)
	assert.Contains(t, ds.Warnings[0].Message, "date")
}

func TestLoadLeadsTracksBothTiers(t *testing.T) {
	mem := &source.MemFetcher{Tables: map[string]*source.RawTable{
		"vol": {
			Header: []string{"Fecha Creación", "Nombre", "Email Address"},
			Rows: [][]string{
				{"2024-03-01", "Ana", "A@x.com"},
				{"2024-03-02", "Luis", "l@x.com"},
			},
		},
		"qual": {
			Header: []string{"Fecha Creación", "Nombre", "Email"},
			Rows:   [][]string{{"2024-03-02", "Luis", "l@x.com"}},
		},
	}}

	ds := testReconciler(mem).Load(context.Background(), []Source{
		{ID: "vol", URL: "u", Kind: KindLeads},
		{ID: "qual", URL: "u", Kind: KindQualified},
	})

	require.Len(t, ds.Leads, 2)
	require.Len(t, ds.Qualified, 1)
	assert.Equal(t, "a@x.com", ds.Leads[0].Email, "substring header match and normalization")
}

func TestLoadProgressCallback(t *testing.T) {
	mem := &source.MemFetcher{}
	r := testReconciler(mem)

	var seen []string
	r.OnSource = func(id string, done, total int) {
		seen = append(seen, id)
		assert.Equal(t, 2, total)
	}

	r.Load(context.Background(), []Source{
		{ID: "a", URL: "u", Kind: KindSales},
		{ID: "b", URL: "u", Kind: KindSpend},
	})
	assert.Equal(t, []string{"a", "b"}, seen)
}
