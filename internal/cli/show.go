package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"dex-trades/internal/app"
)

var (
	showSymbol string
	showFrom   string
	showTo     string
	showLimit  int
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display stored hourly price points",
	RunE: func(cmd *cobra.Command, args []string) error {
		if showSymbol == "" {
			return fmt.Errorf("--symbol must be provided")
		}
		if showLimit <= 0 {
			return fmt.Errorf("--limit must be greater than zero")
		}

		opts := app.ShowOptions{
			Symbol: showSymbol,
			Limit:  showLimit,
		}

		if showFrom != "" {
			from, err := parseTimestamp(showFrom)
			if err != nil {
				return fmt.Errorf("invalid --from value: %w", err)
			}
			opts.From = &from
		}

		if showTo != "" {
			to, err := parseTimestamp(showTo)
			if err != nil {
				return fmt.Errorf("invalid --to value: %w", err)
			}
			opts.To = &to
		}

		return getApp().Show(cmd.Context(), opts)
	},
}

func init() {
	showCmd.Flags().StringVar(&showSymbol, "symbol", "", "Symbol to display")
	showCmd.Flags().StringVar(&showFrom, "from", "", "Start timestamp (unix or RFC3339, inclusive)")
	showCmd.Flags().StringVar(&showTo, "to", "", "End timestamp (unix or RFC3339, inclusive)")
	showCmd.Flags().IntVar(&showLimit, "limit", 20, "Number of points to display when no window is given")
}
