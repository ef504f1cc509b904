package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"dex-trades/internal/domain"
)

// chartMaxPoints caps how many points feed one rendered series.
const chartMaxPoints = 4096

// Chart renders a stored hourly series to a PNG line chart.
func (a *App) Chart(ctx context.Context, opts ChartOptions) error {
	symbol := strings.ToUpper(strings.TrimSpace(opts.Symbol))
	if symbol == "" {
		return errors.New("--symbol must be provided")
	}
	if opts.OutputPath == "" {
		return errors.New("--output must be provided")
	}

	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if closeStore != nil {
		defer closeStore()
	}

	from, to := windowBounds(opts.From, opts.To)
	points, err := store.Range(ctx, symbol, from, to)
	if err != nil {
		return err
	}
	if len(points) < 2 {
		return fmt.Errorf("need at least two stored points to chart %s", symbol)
	}

	downsampled := downsamplePoints(points, chartMaxPoints)
	a.Logger.Info().Str("symbol", symbol).Int("total", len(points)).Int("rendered", len(downsampled)).Msg("rendering chart")

	x := make([]time.Time, len(downsampled))
	y := make([]float64, len(downsampled))
	for i, p := range downsampled {
		x[i] = time.Unix(p.Timestamp, 0).UTC()
		y[i] = p.Open.InexactFloat64()
	}

	graph := chart.Chart{
		Width:  1280,
		Height: 720,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: "Price (USD)",
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    symbol,
				XValues: x,
				YValues: y,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := ensureDir(opts.OutputPath); err != nil {
		return err
	}

	file, err := os.Create(opts.OutputPath)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}

func downsamplePoints(points []domain.PricePoint, max int) []domain.PricePoint {
	if max <= 0 || len(points) <= max {
		return points
	}

	result := make([]domain.PricePoint, 0, max)
	step := float64(len(points)-1) / float64(max-1)
	for i := 0; i < max; i++ {
		idx := int(math.Round(step * float64(i)))
		if idx >= len(points) {
			idx = len(points) - 1
		}
		result = append(result, points[idx])
	}
	return result
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
