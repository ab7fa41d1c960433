package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/funnelcast/funnelcast/internal/cli"
)

func leadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lead <email>",
		Short: "Trace one lead's history across every source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			eng, err := buildEngine(slog.Default(), nil)
			if err != nil {
				return err
			}

			journey, err := eng.LeadLookup(ctx, args[0])
			if err != nil {
				return err
			}

			cli.RenderJourney(os.Stdout, journey)
			return nil
		},
	}
}

func customersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customers",
		Short: "Rank customers by total revenue",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			limit, _ := cmd.Flags().GetInt("limit")

			eng, err := buildEngine(slog.Default(), nil)
			if err != nil {
				return err
			}

			ranking, err := eng.Customers(ctx)
			if err != nil {
				return fmt.Errorf("failed to rank customers: %w", err)
			}
			if limit > 0 && len(ranking) > limit {
				ranking = ranking[:limit]
			}

			cli.RenderCustomers(os.Stdout, ranking)
			return nil
		},
	}

	cmd.Flags().Int("limit", 0, "show only the top N customers")

	return cmd
}
