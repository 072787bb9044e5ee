package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderChart_Legend(t *testing.T) {
	t.Parallel()
	a := sampleAggregation()

	out := RenderChart(a, ChartOptions{Top: 10, Width: 40, MinCount: 2})
	assert.Contains(t, out, "#1        3  SELECT a\n")
	assert.Contains(t, out, "#2        2  SAVEPOINT x\n")
	assert.NotContains(t, out, "UPDATE b")
}

func TestRenderChart_Top(t *testing.T) {
	t.Parallel()
	a := sampleAggregation()

	out := RenderChart(a, ChartOptions{Top: 1, Width: 40, MinCount: 2})
	assert.Contains(t, out, "SELECT a")
	assert.NotContains(t, out, "SAVEPOINT x")
}

func TestRenderChart_Empty(t *testing.T) {
	t.Parallel()
	a := build(ev{sql: "SELECT once"})

	assert.Equal(t, "", RenderChart(a, ChartOptions{Top: 10, MinCount: 2}))
}

func TestTruncate(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, 5, len([]rune(truncate(strings.Repeat("é", 10), 5))))
}
