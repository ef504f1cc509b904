package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"dex-trades/internal/app"
)

var (
	chartSymbol string
	chartFrom   string
	chartTo     string
	chartOutput string
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render a stored price series as a PNG chart",
	RunE: func(cmd *cobra.Command, args []string) error {
		if chartSymbol == "" {
			return fmt.Errorf("--symbol must be provided")
		}
		if chartOutput == "" {
			return fmt.Errorf("--output must be provided")
		}

		opts := app.ChartOptions{
			Symbol:     chartSymbol,
			OutputPath: chartOutput,
		}

		if chartFrom != "" {
			from, err := parseTimestamp(chartFrom)
			if err != nil {
				return fmt.Errorf("invalid --from value: %w", err)
			}
			opts.From = &from
		}

		if chartTo != "" {
			to, err := parseTimestamp(chartTo)
			if err != nil {
				return fmt.Errorf("invalid --to value: %w", err)
			}
			opts.To = &to
		}

		return getApp().Chart(cmd.Context(), opts)
	},
}

func init() {
	chartCmd.Flags().StringVar(&chartSymbol, "symbol", "", "Symbol to chart")
	chartCmd.Flags().StringVar(&chartFrom, "from", "", "Start timestamp (unix or RFC3339, inclusive)")
	chartCmd.Flags().StringVar(&chartTo, "to", "", "End timestamp (unix or RFC3339, inclusive)")
	chartCmd.Flags().StringVar(&chartOutput, "output", "", "Path to write the PNG chart")
}
