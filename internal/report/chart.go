package report

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/qtrace/internal/model"
)

const (
	chartHeight      = 12
	chartBarWidth    = 3
	chartMinWidth    = 20
	legendSQLMaxSize = 72
)

// ChartOptions control the execution count chart.
type ChartOptions struct {
	Top      int // number of ranked groups to chart
	Width    int
	MinCount int
}

// RenderChart draws a bar chart of the top ranked groups by execution count,
// followed by a legend mapping bar labels to SQL text. It returns an empty
// string when no group is reported.
func RenderChart(agg model.AggregateReader, opts ChartOptions) string {
	ranked := Rank(agg.Groups(), max(opts.MinCount, 1))
	if opts.Top > 0 && len(ranked) > opts.Top {
		ranked = ranked[:opts.Top]
	}
	if len(ranked) == 0 {
		return ""
	}

	width := opts.Width
	if minWidth := len(ranked) * (chartBarWidth + 1); width < minWidth {
		width = minWidth
	}
	width = max(width, chartMinWidth)

	bc := barchart.New(width, chartHeight,
		barchart.WithBarGap(1),
		barchart.WithBarWidth(chartBarWidth),
	)

	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Background(lipgloss.Color("39"))
	for i, g := range ranked {
		bc.Push(barchart.BarData{
			Label: fmt.Sprintf("#%d", i+1),
			Values: []barchart.BarValue{
				{Name: fmt.Sprintf("#%d", i+1), Value: float64(g.Count), Style: barStyle},
			},
		})
	}
	bc.Draw()

	var b strings.Builder
	b.WriteString(bc.View())
	b.WriteString("\n\n")
	for i, g := range ranked {
		fmt.Fprintf(&b, "#%-3d %6d  %s\n", i+1, g.Count, truncate(g.SQL, legendSQLMaxSize))
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
