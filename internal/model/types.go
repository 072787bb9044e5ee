package model

// QueryEvent represents one executed query occurrence reconstructed from an
// event line and the stack frames that follow it.
type QueryEvent struct {
	SQL         string
	Bindings    string
	HasBindings bool // false when the line carried no bindings segment
	Trace       []string
	Line        int // line number of the event start, 0 when unknown
}

// BindingCount is one distinct binding text and how often it was seen.
type BindingCount struct {
	Bindings string `yaml:"bindings"`
	Count    int    `yaml:"count"`
}

// TraceOccurrence is one distinct call-site trace and how often it was seen.
type TraceOccurrence struct {
	Frames []string `yaml:"frames"`
	Count  int      `yaml:"count"`
}

// QueryGroup aggregates all events sharing the same SQL text. Bindings and
// Traces are kept in first-seen order.
type QueryGroup struct {
	SQL      string            `yaml:"sql"`
	Count    int               `yaml:"count"`
	Bindings []BindingCount    `yaml:"bindings,omitempty"`
	Traces   []TraceOccurrence `yaml:"traces"`
}

// RunTotals are scalar counters kept across every event of a run.
type RunTotals struct {
	TotalQueries               int `yaml:"total_queries"`
	QueriesExcludingSavepoints int `yaml:"queries_excluding_savepoints"`
	ReadQueries                int `yaml:"read_queries"`
}

// Savepoints returns the number of savepoint queries.
func (t RunTotals) Savepoints() int {
	return t.TotalQueries - t.QueriesExcludingSavepoints
}

// WriteQueries returns the number of non-savepoint, non-read queries.
func (t RunTotals) WriteQueries() int {
	return t.QueriesExcludingSavepoints - t.ReadQueries
}
