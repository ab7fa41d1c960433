package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/funnelcast/funnelcast/internal/cli"
)

func runsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent report runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			limit, _ := cmd.Flags().GetInt("limit")

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			runs, err := store.ListRuns(ctx, limit)
			if err != nil {
				return err
			}

			cli.RenderRuns(os.Stdout, runs)
			return nil
		},
	}

	cmd.Flags().Int("limit", 20, "maximum number of runs to show")

	return cmd
}
