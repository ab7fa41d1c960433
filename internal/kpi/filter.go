package kpi

import (
	"time"

	"github.com/funnelcast/funnelcast/internal/model"
	"github.com/funnelcast/funnelcast/internal/normalize"
)

// InRange reports whether t falls inside r, comparing calendar dates only.
// Both endpoints are inclusive.
func InRange(t time.Time, r model.DateRange) bool {
	d := normalize.Day(t)
	return !d.Before(normalize.Day(r.Start)) && !d.After(normalize.Day(r.End))
}

func filterByDate[T any](recs []T, date func(T) time.Time, r model.DateRange) []T {
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		if InRange(date(rec), r) {
			out = append(out, rec)
		}
	}
	return out
}

// FilterSales returns the sales records dated inside r.
func FilterSales(recs []model.SalesRecord, r model.DateRange) []model.SalesRecord {
	return filterByDate(recs, func(s model.SalesRecord) time.Time { return s.Date }, r)
}

// FilterSpend returns the spend records dated inside r.
func FilterSpend(recs []model.SpendRecord, r model.DateRange) []model.SpendRecord {
	return filterByDate(recs, func(s model.SpendRecord) time.Time { return s.Date }, r)
}

// FilterLeads returns the lead records dated inside r.
func FilterLeads(recs []model.LeadRecord, r model.DateRange) []model.LeadRecord {
	return filterByDate(recs, func(l model.LeadRecord) time.Time { return l.Date }, r)
}
