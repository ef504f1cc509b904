package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"dex-trades/internal/app"
)

var (
	resolveSymbol string
	resolveAt     string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "解析单个符号在指定时刻的历史美元价格",
	RunE: func(cmd *cobra.Command, args []string) error {
		if resolveSymbol == "" || resolveAt == "" {
			return errors.New("--symbol 与 --at 必须提供")
		}

		at, err := parseTimestamp(resolveAt)
		if err != nil {
			return fmt.Errorf("--at 格式不合法 (unix 秒或 RFC3339): %w", err)
		}

		opts := app.ResolveOptions{
			Symbol: resolveSymbol,
			At:     at,
		}

		return getApp().Resolve(cmd.Context(), opts)
	},
}

func init() {
	resolveCmd.Flags().StringVar(&resolveSymbol, "symbol", "", "要解析的符号")
	resolveCmd.Flags().StringVar(&resolveAt, "at", "", "时间点 (unix 秒或 RFC3339)")
}
