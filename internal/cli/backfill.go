package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"dex-trades/internal/app"
)

var (
	backfillSymbols []string
)

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Fetch and store full hourly histories for symbols",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(backfillSymbols) == 0 {
			return fmt.Errorf("--symbol must be provided at least once")
		}

		opts := app.BackfillOptions{
			Symbols: backfillSymbols,
		}

		return getApp().Backfill(cmd.Context(), opts)
	},
}

func init() {
	backfillCmd.Flags().StringArrayVar(&backfillSymbols, "symbol", nil, "Symbol to backfill (repeatable)")
}
