package model

// EventSink receives completed query events in file order.
type EventSink interface {
	Add(event *QueryEvent)
}

// AggregateReader provides read-only access to the folded aggregation state.
type AggregateReader interface {
	Groups() []QueryGroup
	Totals() RunTotals
}
