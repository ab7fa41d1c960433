package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/funnelcast/funnelcast/internal/model"
	"github.com/funnelcast/funnelcast/internal/service"
)

// SaveRun records the headline figures of a completed report run.
func (s *SQLiteStorage) SaveRun(ctx context.Context, report *model.Report) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateReport(report); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO report_runs (ran_at, range_start, range_end, closer, revenue, spend, leads, sales, warnings)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC(),
		report.Range.Start,
		report.Range.End,
		report.Closer,
		report.Totals.Revenue,
		report.Totals.Spend,
		report.Totals.Leads,
		report.Totals.Sales,
		len(report.Warnings))
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLiteStorage) ListRuns(ctx context.Context, limit int) ([]service.RunSummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT ran_at, range_start, range_end, closer, revenue, spend, leads, sales
		 FROM report_runs ORDER BY ran_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []service.RunSummary
	for rows.Next() {
		var r service.RunSummary
		if err := rows.Scan(&r.RanAt, &r.Start, &r.End, &r.Closer, &r.Revenue, &r.Spend, &r.Leads, &r.Sales); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return out, nil
}
