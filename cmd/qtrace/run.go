package main

import (
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/tinytelemetry/qtrace/internal/aggregate"
	"github.com/tinytelemetry/qtrace/internal/ingest"
	"github.com/tinytelemetry/qtrace/internal/logparse"
	"github.com/tinytelemetry/qtrace/internal/logsource"
	"github.com/tinytelemetry/qtrace/internal/report"
	"github.com/tinytelemetry/qtrace/internal/tui"
)

// pagerFunc opens the pager. Tests replace it.
var pagerFunc = tui.Run

// run processes one log and writes the report to out.
func run(cfg appConfig, path string, out io.Writer, logger *zap.Logger) error {
	lines, err := logsource.ReadFile(path, logsource.Config{MaxLineSize: cfg.MaxLineSize})
	if err != nil {
		return err
	}

	markers := cfg.markers()
	agg := aggregate.New()
	proc := ingest.NewProcessor(
		logparse.NewClassifier(cfg.SourceRoot, markers),
		ingest.NewExtractor(markers),
		agg,
		logger,
	)
	stats := proc.Run(lines)

	logger.Debug("processed log",
		zap.String("path", path),
		zap.String("source_root", cfg.SourceRoot),
		zap.Int("lines", stats.Lines),
		zap.Int("events", stats.Events),
		zap.Int("frames", stats.Frames),
		zap.Int("orphan_frames", stats.OrphanFrames),
		zap.Int("noise", stats.Noise),
		zap.Int("groups", agg.Len()))
	if stats.Malformed > 0 {
		logger.Warn("skipped malformed event lines",
			zap.String("path", path),
			zap.Int("count", stats.Malformed))
	}

	opts := report.Options{MinCount: cfg.MinCount, Color: cfg.Color}

	if cfg.Format == formatYAML {
		return report.WriteYAML(out, agg, opts)
	}

	text := report.Render(agg, opts)
	if cfg.Chart {
		if chart := report.RenderChart(agg, report.ChartOptions{
			Top:      cfg.ChartTop,
			Width:    cfg.ChartWidth,
			MinCount: cfg.MinCount,
		}); chart != "" {
			text += "\n" + chart
		}
	}

	if cfg.Pager {
		return pagerFunc(filepath.Base(path), text)
	}

	if _, err := io.WriteString(out, text); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
