package ingest

import (
	"go.uber.org/zap"

	"github.com/tinytelemetry/qtrace/internal/logparse"
	"github.com/tinytelemetry/qtrace/internal/model"
)

// Processor runs the line state machine: it classifies each line, extracts
// events from event starts, accumulates the stack frames that follow them and
// hands every completed event to the sink.
type Processor struct {
	classifier *logparse.Classifier
	extractor  *Extractor
	sink       model.EventSink
	logger     *zap.Logger

	// Event whose trace is still being accumulated. Frames always attach to
	// the most recently started event, whatever its SQL.
	current *model.QueryEvent

	stats Stats
}

// NewProcessor creates a new line processor.
func NewProcessor(
	classifier *logparse.Classifier,
	extractor *Extractor,
	sink model.EventSink,
	logger *zap.Logger,
) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		classifier: classifier,
		extractor:  extractor,
		sink:       sink,
		logger:     logger,
	}
}

// ProcessLine processes a single log line and returns how it was classified.
func (p *Processor) ProcessLine(line string) logparse.LineKind {
	p.stats.Lines++

	kind := p.classifier.Classify(line)
	switch kind {
	case logparse.EventStart:
		p.startEvent(line)
	case logparse.StackFrame:
		p.appendFrame(line)
	default:
		p.stats.Noise++
	}
	return kind
}

// Flush completes the open event, if any. Call it once input is exhausted.
func (p *Processor) Flush() {
	p.complete()
}

// Run processes every line in order and flushes the final event.
func (p *Processor) Run(lines []string) Stats {
	for _, line := range lines {
		p.ProcessLine(line)
	}
	p.Flush()
	return p.stats
}

// Stats returns the counters accumulated so far.
func (p *Processor) Stats() Stats {
	return p.stats
}

func (p *Processor) startEvent(line string) {
	p.stats.EventStarts++

	event, err := p.extractor.Extract(line)
	if err != nil {
		// The previous event stays open, so following frames still attach to it.
		p.stats.Malformed++
		p.logger.Debug("skipping event line",
			zap.Int("line", p.stats.Lines),
			zap.Error(err))
		return
	}

	p.complete()
	event.Line = p.stats.Lines
	p.current = event
}

func (p *Processor) appendFrame(line string) {
	if p.current == nil {
		p.stats.OrphanFrames++
		return
	}
	p.stats.Frames++
	p.current.Trace = append(p.current.Trace, line)
}

func (p *Processor) complete() {
	if p.current == nil {
		return
	}
	p.stats.Events++
	if p.sink != nil {
		p.sink.Add(p.current)
	}
	p.current = nil
}
