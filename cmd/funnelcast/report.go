package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/funnelcast/funnelcast/internal/cli"
	"github.com/funnelcast/funnelcast/internal/engine"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run the pipeline and print the KPI report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			period, _ := cmd.Flags().GetString("period")
			start, _ := cmd.Flags().GetString("start")
			end, _ := cmd.Flags().GetString("end")
			closer, _ := cmd.Flags().GetString("closer")
			save, _ := cmd.Flags().GetBool("save")

			rng, err := resolvePeriod(period, start, end)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() {
				if closeErr := store.Close(); closeErr != nil {
					slog.Warn("Failed to close storage", "error", closeErr)
				}
			}()

			eng, err := buildEngine(slog.Default(), store)
			if err != nil {
				return err
			}

			var bar *progressbar.ProgressBar
			eng.Reconciler().OnSource = func(id string, done, total int) {
				if bar == nil {
					bar = progressbar.NewOptions(total,
						progressbar.OptionSetWriter(os.Stderr),
						progressbar.OptionEnableColorCodes(true),
						progressbar.OptionShowCount(),
						progressbar.OptionSetWidth(40),
						progressbar.OptionSetDescription("[cyan][bold]Loading sources...[reset]"),
						progressbar.OptionOnCompletion(func() {
							fmt.Fprintln(os.Stderr)
						}),
					)
				}
				_ = bar.Set(done)
			}

			report, err := eng.Run(ctx, engine.RunOptions{
				Range:       rng,
				Closer:      closer,
				SaveHistory: save,
			})
			if err != nil {
				return err
			}

			cli.RenderReport(os.Stdout, report)
			return nil
		},
	}

	cmd.Flags().String("period", "", "period preset (this_month, last_month, this_week, today, yesterday, last_7d, last_30d, quarter, year)")
	cmd.Flags().String("start", "", "period start (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "period end (YYYY-MM-DD)")
	cmd.Flags().String("closer", "", "scope the report to one closer (zeroes ad spend)")
	cmd.Flags().Bool("save", true, "record the run in history")

	return cmd
}
