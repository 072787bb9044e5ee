package report

import (
	"cmp"
	"slices"

	"github.com/tinytelemetry/qtrace/internal/model"
)

// Rank returns the groups with at least minCount executions, highest count
// first. Ties keep first-seen order. Bindings and traces inside each group
// are ranked the same way.
func Rank(groups []model.QueryGroup, minCount int) []model.QueryGroup {
	out := make([]model.QueryGroup, 0, len(groups))
	for _, g := range groups {
		if g.Count < minCount {
			continue
		}
		g.Bindings = slices.Clone(g.Bindings)
		slices.SortStableFunc(g.Bindings, func(a, b model.BindingCount) int {
			return cmp.Compare(b.Count, a.Count)
		})
		g.Traces = slices.Clone(g.Traces)
		slices.SortStableFunc(g.Traces, func(a, b model.TraceOccurrence) int {
			return cmp.Compare(b.Count, a.Count)
		})
		out = append(out, g)
	}
	slices.SortStableFunc(out, func(a, b model.QueryGroup) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return out
}

// Percent returns count as a percentage of total, or 0 when total is 0.
func Percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
