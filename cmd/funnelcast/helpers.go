package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/funnelcast/funnelcast/internal/config"
	"github.com/funnelcast/funnelcast/internal/engine"
	"github.com/funnelcast/funnelcast/internal/model"
	"github.com/funnelcast/funnelcast/internal/reconcile"
	"github.com/funnelcast/funnelcast/internal/service"
	"github.com/funnelcast/funnelcast/internal/source"
	"github.com/funnelcast/funnelcast/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Store, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/funnelcast/funnelcast.db"
	}

	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// buildEngine wires the fetcher, reconciler and stores into a report engine.
// The store may be nil for runs that need no persistence.
func buildEngine(logger *slog.Logger, store service.Store) (*engine.ReportEngine, error) {
	sources, err := config.LoadSources()
	if err != nil {
		return nil, err
	}
	attendance, leadCount := config.LoadPolicies()

	timeout := viper.GetDuration("fetch.timeout")
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ttl := viper.GetDuration("fetch.cache_ttl")
	if ttl == 0 {
		ttl = 5 * time.Minute
	}

	var fetcher source.Fetcher = source.NewCSVFetcher(timeout)
	fetcher = source.NewCachedFetcher(fetcher, ttl)

	rec := reconcile.New(fetcher, logger, attendance)

	var goals service.GoalStore
	var history service.RunHistory
	if store != nil {
		goals = store
		history = store
	}

	return engine.New(rec, sources, goals, history, logger, engine.Config{
		OperatingCost: viper.GetFloat64("costs.operating"),
		LeadCount:     leadCount,
	}), nil
}

// resolvePeriod turns a preset name or explicit start/end strings into a range.
func resolvePeriod(preset, start, end string) (model.DateRange, error) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if start != "" || end != "" {
		if start == "" || end == "" {
			return model.DateRange{}, fmt.Errorf("start and end must be given together")
		}
		s, err := time.Parse("2006-01-02", start)
		if err != nil {
			return model.DateRange{}, fmt.Errorf("bad start date %q, want YYYY-MM-DD", start)
		}
		e, err := time.Parse("2006-01-02", end)
		if err != nil {
			return model.DateRange{}, fmt.Errorf("bad end date %q, want YYYY-MM-DD", end)
		}
		if s.After(e) {
			return model.DateRange{}, fmt.Errorf("start date is after end date")
		}
		return model.DateRange{Start: s, End: e}, nil
	}

	switch preset {
	case "", "this_month":
		return model.DateRange{
			Start: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, time.UTC),
		}, nil
	case "last_month":
		return model.DateRange{
			Start: time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(now.Year(), now.Month(), 0, 0, 0, 0, 0, time.UTC),
		}, nil
	case "today":
		return model.DateRange{Start: today, End: today}, nil
	case "yesterday":
		y := today.AddDate(0, 0, -1)
		return model.DateRange{Start: y, End: y}, nil
	case "this_week":
		// Week starts on Monday.
		offset := (int(today.Weekday()) + 6) % 7
		return model.DateRange{Start: today.AddDate(0, 0, -offset), End: today}, nil
	case "last_7d":
		return model.DateRange{Start: today.AddDate(0, 0, -6), End: today}, nil
	case "last_30d":
		return model.DateRange{Start: today.AddDate(0, 0, -29), End: today}, nil
	case "quarter":
		qMonth := time.Month((int(now.Month())-1)/3*3 + 1)
		return model.DateRange{
			Start: time.Date(now.Year(), qMonth, 1, 0, 0, 0, 0, time.UTC),
			End:   today,
		}, nil
	case "year":
		return model.DateRange{
			Start: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC),
			End:   today,
		}, nil
	default:
		return model.DateRange{}, fmt.Errorf("unknown period %q (want this_month, last_month, this_week, today, yesterday, last_7d, last_30d, quarter, year)", preset)
	}
}
