package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinytelemetry/qtrace/internal/model"
)

func TestExtract_WithBindings(t *testing.T) {
	t.Parallel()
	e := NewExtractor(model.DefaultMarkers())

	line := `2024-01-15 10:30:45 D ActiveRecord -- { :sql => "SELECT \"users\".* FROM \"users\" WHERE \"users\".\"id\" = $1", :binds => {\"id\" => 7}, :allocations => 41 }`
	event, err := e.Extract(line)
	require.NoError(t, err)

	assert.Equal(t, "SELECT users.* FROM users WHERE users.id = $1", event.SQL)
	assert.True(t, event.HasBindings)
	assert.Equal(t, "{id => 7}", event.Bindings)
	assert.Empty(t, event.Trace)
}

func TestExtract_WithoutBindings(t *testing.T) {
	t.Parallel()
	e := NewExtractor(model.DefaultMarkers())

	event, err := e.Extract(`2024-01-15 ActiveRecord { :sql => "SAVEPOINT active_record_1", :allocations => 3 }`)
	require.NoError(t, err)

	assert.Equal(t, "SAVEPOINT active_record_1", event.SQL)
	assert.False(t, event.HasBindings)
	assert.Empty(t, event.Bindings)
}

func TestExtract_LiteralsStayInline(t *testing.T) {
	t.Parallel()
	e := NewExtractor(model.DefaultMarkers())

	a, err := e.Extract(`ActiveRecord { :sql => "SELECT * FROM t WHERE id = 1", :allocations => 1 }`)
	require.NoError(t, err)
	b, err := e.Extract(`ActiveRecord { :sql => "SELECT * FROM t WHERE id = 2", :allocations => 1 }`)
	require.NoError(t, err)

	assert.NotEqual(t, a.SQL, b.SQL)
}

func TestExtract_Malformed(t *testing.T) {
	t.Parallel()
	e := NewExtractor(model.DefaultMarkers())

	tests := []struct {
		name string
		line string
	}{
		{"no allocations boundary", `ActiveRecord { :sql => "SELECT 1" }`},
		{"no arrow after sql marker", `ActiveRecord { :sql "SELECT 1", :allocations => 1 }`},
		{"empty sql", `ActiveRecord { :sql => "", :allocations => 1 }`},
		{"marker only", `ActiveRecord :sql`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := e.Extract(tt.line)
			require.ErrorIs(t, err, ErrMalformedEventLine)
			assert.Nil(t, event)
		})
	}
}

func TestExtract_BindsDelimiterInsideData(t *testing.T) {
	t.Parallel()
	e := NewExtractor(model.DefaultMarkers())

	// The grouping key is cut at the first delimiter even when it is SQL data.
	event, err := e.Extract(`ActiveRecord { :sql => "SELECT 'a, :binds' FROM t", :allocations => 1 }`)
	require.NoError(t, err)
	assert.Equal(t, `"SELECT 'a`, event.SQL)
}

func TestGroupingKey(t *testing.T) {
	t.Parallel()
	e := NewExtractor(model.DefaultMarkers())

	tests := []struct {
		payload string
		want    string
	}{
		{`"SELECT 1", :binds => {a => 1}, `, `"SELECT 1"`},
		{`"SELECT 1", `, `"SELECT 1", `},
		{`x, :binds, :binds`, `x`},
	}

	for _, tt := range tests {
		t.Run(tt.payload, func(t *testing.T) {
			assert.Equal(t, tt.want, e.GroupingKey(tt.payload))
		})
	}
}

func TestExtractBindings(t *testing.T) {
	t.Parallel()
	e := NewExtractor(model.DefaultMarkers())

	got, ok := e.ExtractBindings(`"SELECT 1", :binds => {id => 1, name => {first => a}}, `)
	require.True(t, ok)
	assert.Equal(t, "{id => 1, name => {first => a}}", got)

	_, ok = e.ExtractBindings(`"SELECT 1", :binds => [], `)
	assert.False(t, ok, "bindings without a closing brace boundary are absent")

	_, ok = e.ExtractBindings(`"SELECT 1", `)
	assert.False(t, ok)
}

func TestExtractPayload_StripsEscapedQuotes(t *testing.T) {
	t.Parallel()
	e := NewExtractor(model.DefaultMarkers())

	got, err := e.ExtractPayload(`:sql => \"a\" \"b\":allocations`)
	require.NoError(t, err)
	assert.Equal(t, "a b", got)
}

func TestNormalizeKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{`"SELECT 1", `, "SELECT 1"},
		{`  "SELECT 1"  `, "SELECT 1"},
		{`SELECT 1`, "SELECT 1"},
		{`"`, `"`},
		{`""`, ""},
	}

	for _, tt := range tests {
		if got := normalizeKey(tt.in); got != tt.want {
			t.Errorf("normalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
