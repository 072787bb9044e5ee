package main

import (
	"github.com/tinytelemetry/qtrace/internal/model"
)

const (
	formatText = "text"
	formatYAML = "yaml"

	defaultFormat     = formatText
	defaultMinCount   = model.DefaultMinCount
	defaultChartTop   = model.DefaultChartTop
	defaultChartWidth = 80
	defaultMaxLine    = model.DefaultMaxLineSize
)

// appConfig is internal runtime configuration.
// It is package-private to keep defaults and shape local to the CLI entrypoint.
type appConfig struct {
	SourceRoot        string `mapstructure:"source-root"`
	QueryMarker       string `mapstructure:"query-marker"`
	SQLMarker         string `mapstructure:"sql-marker"`
	AllocationsMarker string `mapstructure:"allocations-marker"`
	BindsMarker       string `mapstructure:"binds-marker"`
	MinCount          int    `mapstructure:"min-count"`
	Color             bool   `mapstructure:"color"`
	Chart             bool   `mapstructure:"chart"`
	ChartTop          int    `mapstructure:"chart-top"`
	ChartWidth        int    `mapstructure:"chart-width"`
	Format            string `mapstructure:"format"`
	Pager             bool   `mapstructure:"pager"`
	MaxLineSize       int    `mapstructure:"max-line-size"`
	Verbose           bool   `mapstructure:"verbose"`
	ConfigPath        string `mapstructure:"-"` // not from config file
}

func (c appConfig) markers() model.Markers {
	return model.Markers{
		Query:       c.QueryMarker,
		SQL:         c.SQLMarker,
		Allocations: c.AllocationsMarker,
		Binds:       c.BindsMarker,
	}.WithDefaults()
}
