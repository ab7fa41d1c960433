package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/funnelcast/funnelcast/internal/cli"
	"github.com/funnelcast/funnelcast/internal/model"
)

func goalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Show or set the monthly targets",
	}

	cmd.AddCommand(goalsShowCmd())
	cmd.AddCommand(goalsSetCmd())

	return cmd
}

func goalsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current targets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			goals, err := store.GetGoals(ctx)
			if err != nil {
				return err
			}

			cli.RenderGoals(os.Stdout, goals)
			return nil
		},
	}
}

func goalsSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the revenue and ad budget targets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			goals, err := store.GetGoals(ctx)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("revenue") {
				goals.RevenueTarget, _ = cmd.Flags().GetFloat64("revenue")
			}
			if cmd.Flags().Changed("budget") {
				goals.AdBudgetTarget, _ = cmd.Flags().GetFloat64("budget")
			}
			if err := goals.Validate(); err != nil {
				return err
			}

			if err := store.SaveGoals(ctx, goals); err != nil {
				return err
			}

			slog.Info("Targets updated",
				"revenue_target", goals.RevenueTarget,
				"ad_budget_target", goals.AdBudgetTarget)
			cli.RenderGoals(os.Stdout, goals)
			return nil
		},
	}

	cmd.Flags().Float64("revenue", model.DefaultGoals().RevenueTarget, "monthly revenue target")
	cmd.Flags().Float64("budget", model.DefaultGoals().AdBudgetTarget, "monthly ad budget")

	return cmd
}
