package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/funnelcast/funnelcast/internal/cli"
	"github.com/funnelcast/funnelcast/internal/config"
)

func sourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List the configured data sources",
		RunE: func(_ *cobra.Command, _ []string) error {
			sources, err := config.LoadSources()
			if err != nil {
				return err
			}

			fmt.Fprintln(os.Stdout, cli.TitleStyle.Render("Configured sources"))
			for _, src := range sources {
				decimal := string(src.Decimal)
				order := "month-first"
				if src.DayFirst {
					order = "day-first"
				}
				repair := "off"
				if src.Repair != nil {
					repair = "on"
				}
				fmt.Fprintf(os.Stdout, "  %s  kind=%s decimal=%s dates=%s repair=%s\n",
					cli.BoldStyle.Render(src.ID), src.Kind, decimal, order, repair)
				fmt.Fprintf(os.Stdout, "    %s\n", cli.SubtleStyle.Render(src.URL))
			}
			return nil
		},
	}
}
