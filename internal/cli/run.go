package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"dex-trades/internal/app"
)

var (
	runInput  string
	runOutput string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process a saved transaction batch and emit priced trades",
	RunE: func(cmd *cobra.Command, args []string) error {
		if runInput == "" {
			return fmt.Errorf("--input must be provided")
		}

		opts := app.RunOptions{
			InputPath:  runInput,
			OutputPath: runOutput,
		}

		return getApp().Run(cmd.Context(), opts)
	},
}

func init() {
	runCmd.Flags().StringVar(&runInput, "input", "", "Path to a transaction batch JSON file")
	runCmd.Flags().StringVar(&runOutput, "output", "", "Write priced trades to this file instead of stdout")
}
