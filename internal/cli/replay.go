package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"dex-trades/internal/app"
)

var (
	replayInput string
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Dry-run detection over a saved batch without pricing",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayInput == "" {
			return fmt.Errorf("--input must be provided")
		}

		opts := app.ReplayOptions{
			InputPath: replayInput,
		}

		return getApp().Replay(cmd.Context(), opts)
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to a transaction batch JSON file")
}
