package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/funnelcast/funnelcast/internal/classify"
	"github.com/funnelcast/funnelcast/internal/model"
	"github.com/funnelcast/funnelcast/internal/normalize"
	"github.com/funnelcast/funnelcast/internal/source"
)

// Dataset is the reconciled output of one load: canonical record streams,
// each sorted by date ascending, plus the warnings accumulated along the way.
type Dataset struct {
	Sales     []model.SalesRecord
	Spend     []model.SpendRecord
	Leads     []model.LeadRecord
	Qualified []model.LeadRecord
	Warnings  []model.Warning
}

// Empty reports whether no source produced any record at all. Callers treat
// this as the hard "no data" condition of an otherwise fail-soft load.
func (d *Dataset) Empty() bool {
	return len(d.Sales) == 0 && len(d.Spend) == 0 && len(d.Leads) == 0 && len(d.Qualified) == 0
}

// Reconciler turns raw sheet sources into a Dataset.
type Reconciler struct {
	fetcher    source.Fetcher
	logger     *slog.Logger
	attendance classify.AttendancePolicy

	// OnSource, when set, is called after each source finishes loading.
	// The CLI uses it to drive a progress bar.
	OnSource func(id string, done, total int)
}

// New creates a Reconciler.
func New(fetcher source.Fetcher, logger *slog.Logger, attendance classify.AttendancePolicy) *Reconciler {
	return &Reconciler{fetcher: fetcher, logger: logger, attendance: attendance}
}

// Load fetches every configured source and unions same-kind sources into one
// stream per kind. A source that fails to fetch contributes nothing but a
// warning; overlapping dates across spend sources are kept additively, never
// merged.
func (r *Reconciler) Load(ctx context.Context, sources []Source) *Dataset {
	ds := &Dataset{}

	for i := range sources {
		src := sources[i]
		src.ApplyDefaults()

		table, err := r.fetcher.Fetch(ctx, src.ID, src.URL)
		if err != nil {
			r.logger.Warn("source failed to load", "source", src.ID, "error", err)
			ds.warn(src.ID, err.Error())
			r.progress(src.ID, i+1, len(sources))
			continue
		}

		rows := table.Rows
		if src.Repair != nil {
			rows = normalize.RepairShift(rows, *src.Repair)
		}

		idx, missing := resolveColumns(table.Header, src.Columns)
		if idx[FieldDate] < 0 {
			r.logger.Warn("source has no date column", "source", src.ID)
			ds.warn(src.ID, "no usable date column; source skipped")
			r.progress(src.ID, i+1, len(sources))
			continue
		}
		for _, field := range missing {
			if field == FieldDate {
				continue
			}
			ds.warn(src.ID, fmt.Sprintf("column %q not found; using zero defaults", field))
		}

		switch src.Kind {
		case KindSpend:
			ds.Spend = append(ds.Spend, r.spendRecords(src, idx, rows)...)
		case KindLeads:
			ds.Leads = append(ds.Leads, r.leadRecords(src, idx, rows)...)
		case KindQualified:
			ds.Qualified = append(ds.Qualified, r.leadRecords(src, idx, rows)...)
		default:
			ds.Sales = append(ds.Sales, r.salesRecords(src, idx, rows)...)
		}

		r.progress(src.ID, i+1, len(sources))
	}

	sortByDate(ds)

	r.logger.Info("sources reconciled",
		"sales", len(ds.Sales),
		"spend", len(ds.Spend),
		"leads", len(ds.Leads),
		"qualified", len(ds.Qualified),
		"warnings", len(ds.Warnings))
	return ds
}

func (r *Reconciler) salesRecords(src Source, idx columnIndex, rows [][]string) []model.SalesRecord {
	out := make([]model.SalesRecord, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		date, ok := normalize.ParseDate(cell(row, idx[FieldDate]), src.DayFirst)
		if !ok {
			dropped++
			continue
		}

		outcomeRaw := strings.TrimSpace(cell(row, idx[FieldOutcome]))
		if outcomeRaw == "" {
			outcomeRaw = model.PendingOutcome
		}
		category := classify.Outcome(outcomeRaw)

		closer := strings.TrimSpace(cell(row, idx[FieldCloser]))
		if closer == "" {
			closer = model.UnassignedCloser
		}
		campaign := strings.TrimSpace(cell(row, idx[FieldCampaign]))
		if campaign == "" {
			campaign = model.UnknownCampaign
		}

		out = append(out, model.SalesRecord{
			Date:       date,
			Amount:     nonNegative(normalize.ParseCurrency(cell(row, idx[FieldAmount]), src.Decimal)),
			Closer:     closer,
			Name:       strings.TrimSpace(cell(row, idx[FieldName])),
			OutcomeRaw: outcomeRaw,
			Outcome:    category,
			Attended:   classify.Attended(r.attendance, category, outcomeRaw),
			Email:      model.NormalizeEmail(cell(row, idx[FieldEmail])),
			Campaign:   campaign,
		})
	}
	if dropped > 0 {
		r.logger.Debug("rows without parseable date dropped", "source", src.ID, "dropped", dropped)
	}
	return out
}

func (r *Reconciler) spendRecords(src Source, idx columnIndex, rows [][]string) []model.SpendRecord {
	out := make([]model.SpendRecord, 0, len(rows))
	for _, row := range rows {
		date, ok := normalize.ParseDate(cell(row, idx[FieldDate]), src.DayFirst)
		if !ok {
			continue
		}
		out = append(out, model.SpendRecord{
			Date:          date,
			Spend:         nonNegative(normalize.ParseCurrency(cell(row, idx[FieldSpend]), src.Decimal)),
			Clicks:        normalize.ParseCount(cell(row, idx[FieldClicks]), src.Decimal),
			LandingVisits: normalize.ParseCount(cell(row, idx[FieldVisits]), src.Decimal),
		})
	}
	return out
}

func (r *Reconciler) leadRecords(src Source, idx columnIndex, rows [][]string) []model.LeadRecord {
	out := make([]model.LeadRecord, 0, len(rows))
	for _, row := range rows {
		date, ok := normalize.ParseDate(cell(row, idx[FieldDate]), src.DayFirst)
		if !ok {
			continue
		}
		out = append(out, model.LeadRecord{
			Date:     date,
			Email:    model.NormalizeEmail(cell(row, idx[FieldEmail])),
			Name:     strings.TrimSpace(cell(row, idx[FieldName])),
			Campaign: strings.TrimSpace(cell(row, idx[FieldCampaign])),
		})
	}
	return out
}

func (r *Reconciler) progress(id string, done, total int) {
	if r.OnSource != nil {
		r.OnSource(id, done, total)
	}
}

func (d *Dataset) warn(sourceID, msg string) {
	d.Warnings = append(d.Warnings, model.Warning{SourceID: sourceID, Message: msg})
}

func sortByDate(ds *Dataset) {
	sort.SliceStable(ds.Sales, func(i, j int) bool { return ds.Sales[i].Date.Before(ds.Sales[j].Date) })
	sort.SliceStable(ds.Spend, func(i, j int) bool { return ds.Spend[i].Date.Before(ds.Spend[j].Date) })
	sort.SliceStable(ds.Leads, func(i, j int) bool { return ds.Leads[i].Date.Before(ds.Leads[j].Date) })
	sort.SliceStable(ds.Qualified, func(i, j int) bool { return ds.Qualified[i].Date.Before(ds.Qualified[j].Date) })
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
