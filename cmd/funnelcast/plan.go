package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/funnelcast/funnelcast/internal/cli"
	"github.com/funnelcast/funnelcast/internal/pacing"
)

func planCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Simulate a campaign budget before launch",
		RunE: func(cmd *cobra.Command, _ []string) error {
			budget, _ := cmd.Flags().GetFloat64("budget")
			days, _ := cmd.Flags().GetInt("days")
			price, _ := cmd.Flags().GetFloat64("price")
			roas, _ := cmd.Flags().GetFloat64("roas")
			rawSplits, _ := cmd.Flags().GetStringSlice("channel")
			useDefaults, _ := cmd.Flags().GetBool("default-channels")

			if budget <= 0 || days <= 0 {
				return fmt.Errorf("budget and days must be positive")
			}

			channels, err := parseChannelSplits(rawSplits)
			if err != nil {
				return err
			}
			if len(channels) == 0 && useDefaults {
				channels = pacing.DefaultChannels()
			}

			out := pacing.Plan(pacing.PlanInput{
				Budget:       budget,
				Days:         days,
				ProductPrice: price,
				TargetROAS:   roas,
				Channels:     channels,
			})

			cli.RenderPlan(os.Stdout, out)
			return nil
		},
	}

	cmd.Flags().Float64("budget", 0, "total budget to invest")
	cmd.Flags().Int("days", 30, "campaign length in days")
	cmd.Flags().Float64("price", 0, "product price used to project sales")
	cmd.Flags().Float64("roas", 3, "target return on ad spend")
	cmd.Flags().StringSlice("channel", nil, "channel split as name:pct, repeatable")
	cmd.Flags().Bool("default-channels", false, "use the suggested Meta/TikTok/YouTube/Otros split")

	return cmd
}

func parseChannelSplits(raw []string) ([]pacing.ChannelSplit, error) {
	var out []pacing.ChannelSplit
	for _, item := range raw {
		name, pctStr, ok := strings.Cut(item, ":")
		if !ok {
			return nil, fmt.Errorf("invalid channel split %q, expected name:pct", item)
		}
		pct, err := strconv.ParseFloat(strings.TrimSpace(pctStr), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid channel percentage in %q: %w", item, err)
		}
		out = append(out, pacing.ChannelSplit{Name: strings.TrimSpace(name), Pct: pct})
	}
	return out, nil
}
