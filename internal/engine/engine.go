// Package engine orchestrates one report run: load sources, aggregate the
// filtered records, and project pacing against the freshest goals.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/funnelcast/funnelcast/internal/kpi"
	"github.com/funnelcast/funnelcast/internal/model"
	"github.com/funnelcast/funnelcast/internal/pacing"
	"github.com/funnelcast/funnelcast/internal/reconcile"
	"github.com/funnelcast/funnelcast/internal/service"
)

// ReportEngine wires the reconciler, the goal store and the aggregator.
type ReportEngine struct {
	reconciler *reconcile.Reconciler
	goals      service.GoalStore
	history    service.RunHistory
	logger     *slog.Logger
	sources    []reconcile.Source
	config     Config
}

// Config holds the run-independent knobs of the engine.
type Config struct {
	OperatingCost float64
	LeadCount     kpi.LeadCountPolicy
}

// RunOptions scope a single report run.
type RunOptions struct {
	Range       model.DateRange
	Closer      string
	Now         time.Time // pacing reference; zero means current time
	SaveHistory bool
}

// New creates a report engine. The goal store may be nil, in which case the
// default targets apply; history may be nil to skip run recording.
func New(reconciler *reconcile.Reconciler, sources []reconcile.Source, goals service.GoalStore, history service.RunHistory, logger *slog.Logger, config Config) *ReportEngine {
	return &ReportEngine{
		reconciler: reconciler,
		sources:    sources,
		goals:      goals,
		history:    history,
		logger:     logger,
		config:     config,
	}
}

// Reconciler exposes the underlying reconciler so callers can attach a
// progress hook before running.
func (e *ReportEngine) Reconciler() *reconcile.Reconciler {
	return e.reconciler
}

// Run executes one full pipeline pass and returns the report. Degraded
// sources surface as report warnings; only context cancellation is an error.
func (e *ReportEngine) Run(ctx context.Context, opts RunOptions) (*model.Report, error) {
	ds := e.reconciler.Load(ctx, e.sources)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("report run canceled: %w", err)
	}

	report := kpi.Aggregate(ds, kpi.Params{
		Range:         opts.Range,
		Closer:        opts.Closer,
		OperatingCost: e.config.OperatingCost,
		LeadCount:     e.config.LeadCount,
	})

	goals := model.DefaultGoals()
	if e.goals != nil {
		stored, err := e.goals.GetGoals(ctx)
		if err != nil {
			e.logger.Warn("failed to load goals, using defaults", "error", err)
			report.Warnings = append(report.Warnings, model.Warning{
				SourceID: "goals",
				Message:  fmt.Sprintf("using default targets: %v", err),
			})
		} else {
			goals = stored
		}
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	pacing.Fill(report, goals, pacing.CalendarFor(now))

	if opts.SaveHistory && e.history != nil {
		if err := e.history.SaveRun(ctx, report); err != nil {
			e.logger.Warn("failed to record run", "error", err)
		}
	}

	e.logger.Info("report run completed",
		"revenue", report.Totals.Revenue,
		"spend", report.Totals.Spend,
		"sales", report.Totals.Sales,
		"no_data", report.NoData)

	return report, nil
}

// LeadLookup traces one email across every stream. The search is not scoped
// to a date range: a lead's history spans whatever the sources hold.
func (e *ReportEngine) LeadLookup(ctx context.Context, email string) (kpi.Journey, error) {
	ds := e.reconciler.Load(ctx, e.sources)
	if err := ctx.Err(); err != nil {
		return kpi.Journey{}, fmt.Errorf("lead lookup canceled: %w", err)
	}
	return kpi.LeadJourney(ds, email), nil
}

// Customers returns the all-time customer revenue ranking.
func (e *ReportEngine) Customers(ctx context.Context) ([]kpi.CustomerStanding, error) {
	ds := e.reconciler.Load(ctx, e.sources)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("customer ranking canceled: %w", err)
	}
	return kpi.CustomerRanking(ds.Sales), nil
}
