package model

// Shared defaults used by the CLI and the parsing packages.
const (
	DefaultQueryMarker       = "ActiveRecord"
	DefaultSQLMarker         = ":sql"
	DefaultAllocationsMarker = ":allocations"
	DefaultBindsMarker       = ":binds"

	DefaultMinCount    = 2
	DefaultChartTop    = 10
	DefaultMaxLineSize = 1024 * 1024 // 1MB
)

// Markers are the literal substrings that delimit the instrumentation payload
// inside a log line.
type Markers struct {
	Query       string // log namespace of the query instrumentation
	SQL         string // field carrying the SQL text
	Allocations string // field that always follows the SQL text
	Binds       string // field carrying the bound parameters
}

// DefaultMarkers returns the markers emitted by ActiveRecord query tracing.
func DefaultMarkers() Markers {
	return Markers{
		Query:       DefaultQueryMarker,
		SQL:         DefaultSQLMarker,
		Allocations: DefaultAllocationsMarker,
		Binds:       DefaultBindsMarker,
	}
}

// WithDefaults fills empty markers with their defaults.
func (m Markers) WithDefaults() Markers {
	d := DefaultMarkers()
	if m.Query == "" {
		m.Query = d.Query
	}
	if m.SQL == "" {
		m.SQL = d.SQL
	}
	if m.Allocations == "" {
		m.Allocations = d.Allocations
	}
	if m.Binds == "" {
		m.Binds = d.Binds
	}
	return m
}
