package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/funnelcast/funnelcast/internal/model"
)

// GetGoals returns the persisted targets, or the defaults when none have been
// saved yet. Callers read fresh on every aggregation.
func (s *SQLiteStorage) GetGoals(ctx context.Context) (model.GoalConfig, error) {
	if err := validateContext(ctx); err != nil {
		return model.GoalConfig{}, err
	}

	var goals model.GoalConfig
	err := s.db.QueryRowContext(ctx,
		`SELECT revenue_target, ad_budget_target, updated_at FROM goals WHERE id = 1`,
	).Scan(&goals.RevenueTarget, &goals.AdBudgetTarget, &goals.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DefaultGoals(), nil
	}
	if err != nil {
		return model.GoalConfig{}, fmt.Errorf("failed to get goals: %w", err)
	}
	return goals, nil
}

// SaveGoals overwrites the single goals row.
func (s *SQLiteStorage) SaveGoals(ctx context.Context, goals model.GoalConfig) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := goals.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO goals (id, revenue_target, ad_budget_target, updated_at)
		 VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			revenue_target = excluded.revenue_target,
			ad_budget_target = excluded.ad_budget_target,
			updated_at = excluded.updated_at`,
		goals.RevenueTarget, goals.AdBudgetTarget, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save goals: %w", err)
	}
	return nil
}
