// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/funnelcast/funnelcast/internal/model"
)

// GoalStore persists the operator-set targets. Targets are read fresh on every
// aggregation call; the pipeline never caches them.
type GoalStore interface {
	GetGoals(ctx context.Context) (model.GoalConfig, error)
	SaveGoals(ctx context.Context, goals model.GoalConfig) error
}

// RunHistory records the headline KPIs of past report runs so that periods can
// be compared later.
type RunHistory interface {
	SaveRun(ctx context.Context, report *model.Report) error
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)
}

// RunSummary is one persisted report run.
type RunSummary struct {
	RanAt   time.Time
	Start   time.Time
	End     time.Time
	Closer  string
	Revenue float64
	Spend   float64
	Leads   int
	Sales   int
}

// ReportWriter exports a computed report to an external destination.
type ReportWriter interface {
	Write(ctx context.Context, report *model.Report) error
}

// Store combines everything the CLI needs from persistence.
type Store interface {
	GoalStore
	RunHistory
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
