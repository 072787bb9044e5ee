// Package aggregate folds query events into per-SQL groups and run totals.
package aggregate

import (
	"strings"

	"github.com/tinytelemetry/qtrace/internal/model"
)

const (
	savepointMarker = "SAVEPOINT"
	readMarker      = "SELECT"

	// traceSeparator joins frames into a trace key. Log lines never contain
	// the ASCII unit separator.
	traceSeparator = "\x1f"
)

type group struct {
	sql   string
	count int

	bindingIndex map[string]int
	bindings     []model.BindingCount

	traceIndex map[string]int
	traces     []model.TraceOccurrence
}

// Aggregator owns the sql → group mapping and the run totals for one run.
// Groups, bindings and traces keep first-seen order.
type Aggregator struct {
	index  map[string]int
	groups []*group
	totals model.RunTotals
}

// New creates an empty aggregator.
func New() *Aggregator {
	return &Aggregator{index: make(map[string]int)}
}

// Add folds one completed event.
func (a *Aggregator) Add(event *model.QueryEvent) {
	if event == nil {
		return
	}

	a.totals.TotalQueries++
	if !strings.Contains(event.SQL, savepointMarker) {
		a.totals.QueriesExcludingSavepoints++
	}
	if strings.Contains(event.SQL, readMarker) {
		a.totals.ReadQueries++
	}

	g := a.groupFor(event.SQL)
	g.count++

	if event.HasBindings {
		i, ok := g.bindingIndex[event.Bindings]
		if !ok {
			i = len(g.bindings)
			g.bindingIndex[event.Bindings] = i
			g.bindings = append(g.bindings, model.BindingCount{Bindings: event.Bindings})
		}
		g.bindings[i].Count++
	}

	key := TraceKey(event.Trace)
	i, ok := g.traceIndex[key]
	if !ok {
		i = len(g.traces)
		g.traceIndex[key] = i
		g.traces = append(g.traces, model.TraceOccurrence{Frames: cloneFrames(event.Trace)})
	}
	g.traces[i].Count++
}

// Totals returns the run totals.
func (a *Aggregator) Totals() model.RunTotals {
	return a.totals
}

// Groups returns a copy of every group in first-seen order.
func (a *Aggregator) Groups() []model.QueryGroup {
	out := make([]model.QueryGroup, 0, len(a.groups))
	for _, g := range a.groups {
		out = append(out, g.snapshot())
	}
	return out
}

// Group returns a copy of the group for sql.
func (a *Aggregator) Group(sql string) (model.QueryGroup, bool) {
	i, ok := a.index[sql]
	if !ok {
		return model.QueryGroup{}, false
	}
	return a.groups[i].snapshot(), true
}

// Len returns the number of distinct SQL texts seen.
func (a *Aggregator) Len() int {
	return len(a.groups)
}

// TraceKey returns the deduplication identity of a trace.
func TraceKey(frames []string) string {
	return strings.Join(frames, traceSeparator)
}

func (a *Aggregator) groupFor(sql string) *group {
	if i, ok := a.index[sql]; ok {
		return a.groups[i]
	}
	g := &group{
		sql:          sql,
		bindingIndex: make(map[string]int),
		traceIndex:   make(map[string]int),
	}
	a.index[sql] = len(a.groups)
	a.groups = append(a.groups, g)
	return g
}

func (g *group) snapshot() model.QueryGroup {
	qg := model.QueryGroup{
		SQL:    g.sql,
		Count:  g.count,
		Traces: make([]model.TraceOccurrence, len(g.traces)),
	}
	if len(g.bindings) > 0 {
		qg.Bindings = append([]model.BindingCount(nil), g.bindings...)
	}
	for i, tr := range g.traces {
		qg.Traces[i] = model.TraceOccurrence{Frames: cloneFrames(tr.Frames), Count: tr.Count}
	}
	return qg
}

func cloneFrames(frames []string) []string {
	if len(frames) == 0 {
		return nil
	}
	return append([]string(nil), frames...)
}
