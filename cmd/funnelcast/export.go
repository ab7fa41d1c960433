package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/funnelcast/funnelcast/internal/cli"
	"github.com/funnelcast/funnelcast/internal/config"
	"github.com/funnelcast/funnelcast/internal/engine"
	"github.com/funnelcast/funnelcast/internal/sheets"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Run the pipeline and write the report to Google Sheets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			period, _ := cmd.Flags().GetString("period")
			start, _ := cmd.Flags().GetString("start")
			end, _ := cmd.Flags().GetString("end")
			closer, _ := cmd.Flags().GetString("closer")

			rng, err := resolvePeriod(period, start, end)
			if err != nil {
				return err
			}

			sheetsConfig, err := config.LoadSheetsConfig()
			if err != nil {
				return fmt.Errorf("sheets configuration invalid: %w", err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			eng, err := buildEngine(slog.Default(), store)
			if err != nil {
				return err
			}

			report, err := eng.Run(ctx, engine.RunOptions{
				Range:  rng,
				Closer: closer,
			})
			if err != nil {
				return err
			}

			writer, err := sheets.NewWriter(ctx, *sheetsConfig, slog.Default())
			if err != nil {
				return fmt.Errorf("failed to create sheets writer: %w", err)
			}

			if err := writer.Write(ctx, report); err != nil {
				return fmt.Errorf("failed to write report to sheets: %w", err)
			}

			fmt.Fprintf(os.Stdout, "%s Report exported to Google Sheets\n",
				cli.SuccessStyle.Render(cli.SuccessIcon))
			return nil
		},
	}

	cmd.Flags().String("period", "this_month", "period preset (this_month, last_month, this_week, today, yesterday, last_7d, last_30d, quarter, year)")
	cmd.Flags().String("start", "", "explicit range start, YYYY-MM-DD")
	cmd.Flags().String("end", "", "explicit range end, YYYY-MM-DD")
	cmd.Flags().String("closer", "", "scope the report to one closer")

	cmd.AddCommand(exportAuthCmd())

	return cmd
}

func exportAuthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Run the interactive OAuth2 flow and cache a refresh token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			clientID := viper.GetString("sheets.client_id")
			if clientID == "" {
				clientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
			}
			clientSecret := viper.GetString("sheets.client_secret")
			if clientSecret == "" {
				clientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
			}
			if clientID == "" || clientSecret == "" {
				return fmt.Errorf("OAuth2 client ID and secret are required for authentication")
			}

			tokenFile := config.ExpandPath("~/.config/funnelcast/token.json")
			token, err := sheets.GetOrCreateToken(ctx, sheets.OAuth2Config{
				ClientID:     clientID,
				ClientSecret: clientSecret,
				TokenFile:    tokenFile,
			})
			if err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}

			fmt.Fprintf(os.Stdout, "%s Authenticated, token saved to %s\n",
				cli.SuccessStyle.Render(cli.SuccessIcon), tokenFile)
			if token.RefreshToken != "" {
				fmt.Fprintln(os.Stdout, cli.SubtleStyle.Render(
					"Set GOOGLE_SHEETS_REFRESH_TOKEN to reuse this credential non-interactively."))
			}
			return nil
		},
	}
}
