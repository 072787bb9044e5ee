// Package report renders aggregated query groups as text, charts and YAML.
package report

import (
	"fmt"
	"strings"

	"github.com/tinytelemetry/qtrace/internal/model"
)

const (
	separator      = "------------------------------"
	traceSeparator = "   ---------------------------"
)

// Options control what the report shows.
type Options struct {
	MinCount int  // groups executed fewer times are left out of the body
	Color    bool // emphasis styling
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{MinCount: model.DefaultMinCount}
}

// Render builds the text report. It does not modify the aggregation, so
// rendering it twice yields identical output.
func Render(agg model.AggregateReader, opts Options) string {
	th := newTheme(opts.Color)
	totals := agg.Totals()
	var b strings.Builder

	b.WriteString(th.dim(separator) + "\n")

	for _, g := range Rank(agg.Groups(), minCount(opts)) {
		writeGroup(&b, th, g, totals.TotalQueries)
	}

	b.WriteString("\n")
	writeFooter(&b, th, totals)
	return b.String()
}

// FormatPercent formats a percentage with two decimals.
func FormatPercent(count, total int) string {
	return fmt.Sprintf("%.2f%%", Percent(count, total))
}

func writeGroup(b *strings.Builder, th theme, g model.QueryGroup, total int) {
	fmt.Fprintf(b, "⚡ %s\n", th.heading(g.SQL))
	fmt.Fprintf(b, "Executed: %s (%s)\n",
		th.emph(fmt.Sprintf("%d times", g.Count)),
		th.emph(FormatPercent(g.Count, total)))

	if len(g.Bindings) > 0 {
		b.WriteString("Params:\n")
		for _, p := range g.Bindings {
			fmt.Fprintf(b, "%s used %s\n", p.Bindings, th.emph(fmt.Sprintf("%d times", p.Count)))
		}
	}

	b.WriteString("Traces:\n")
	for _, tr := range g.Traces {
		fmt.Fprintf(b, "   Happened %s\n", th.emph(fmt.Sprintf("%d times", tr.Count)))
		for _, frame := range tr.Frames {
			b.WriteString(frame + "\n")
		}
		b.WriteString(th.dim(traceSeparator) + "\n")
	}
	b.WriteString("\n")
}

func writeFooter(b *strings.Builder, th theme, totals model.RunTotals) {
	b.WriteString(th.dim(separator) + "\n")
	fmt.Fprintf(b, "---   Total Queries: %s   ---\n", th.emph(fmt.Sprint(totals.TotalQueries)))
	fmt.Fprintf(b, "---   Savepoints:    %s   ---\n", th.emph(fmt.Sprint(totals.Savepoints())))
	fmt.Fprintf(b, "---   Read Queries:  %s   ---\n", th.emph(fmt.Sprint(totals.ReadQueries)))
	fmt.Fprintf(b, "---   Write Queries: %s   ---\n", th.emph(fmt.Sprint(totals.WriteQueries())))
	b.WriteString(th.dim(separator) + "\n")
}

func minCount(opts Options) int {
	if opts.MinCount < 1 {
		return 1
	}
	return opts.MinCount
}
