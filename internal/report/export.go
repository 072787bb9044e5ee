package report

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/tinytelemetry/qtrace/internal/model"
)

// Export is the machine-readable form of the report.
type Export struct {
	Totals ExportTotals  `yaml:"totals"`
	Groups []ExportGroup `yaml:"groups"`
}

// ExportTotals mirrors the report footer.
type ExportTotals struct {
	TotalQueries int `yaml:"total_queries"`
	Savepoints   int `yaml:"savepoints"`
	ReadQueries  int `yaml:"read_queries"`
	WriteQueries int `yaml:"write_queries"`
}

// ExportGroup is one reported query group.
type ExportGroup struct {
	SQL      string                  `yaml:"sql"`
	Count    int                     `yaml:"count"`
	Percent  string                  `yaml:"percent"`
	Bindings []model.BindingCount    `yaml:"bindings,omitempty"`
	Traces   []model.TraceOccurrence `yaml:"traces"`
}

// BuildExport applies the report's suppression and ordering rules.
func BuildExport(agg model.AggregateReader, opts Options) Export {
	totals := agg.Totals()
	ex := Export{
		Totals: ExportTotals{
			TotalQueries: totals.TotalQueries,
			Savepoints:   totals.Savepoints(),
			ReadQueries:  totals.ReadQueries,
			WriteQueries: totals.WriteQueries(),
		},
		Groups: []ExportGroup{},
	}
	for _, g := range Rank(agg.Groups(), minCount(opts)) {
		ex.Groups = append(ex.Groups, ExportGroup{
			SQL:      g.SQL,
			Count:    g.Count,
			Percent:  FormatPercent(g.Count, totals.TotalQueries),
			Bindings: g.Bindings,
			Traces:   g.Traces,
		})
	}
	return ex
}

// WriteYAML writes the report as YAML.
func WriteYAML(w io.Writer, agg model.AggregateReader, opts Options) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(BuildExport(agg, opts)); err != nil {
		return fmt.Errorf("encoding yaml report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flushing yaml report: %w", err)
	}
	return nil
}
