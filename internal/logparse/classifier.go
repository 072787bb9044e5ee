package logparse

import (
	"regexp"
	"strings"

	"github.com/tinytelemetry/qtrace/internal/model"
)

// DatePrefixRegex matches lines that start with a YYYY-MM-DD date.
var DatePrefixRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// LineKind tags a raw input line.
type LineKind int

const (
	Noise LineKind = iota
	EventStart
	StackFrame
)

func (k LineKind) String() string {
	switch k {
	case EventStart:
		return "EventStart"
	case StackFrame:
		return "StackFrame"
	default:
		return "Noise"
	}
}

// Classifier partitions an interleaved query log into event starts, stack
// frames and noise using prefix and marker heuristics.
type Classifier struct {
	sourceRoot  string
	queryMarker string
	sqlMarker   string
}

// NewClassifier creates a classifier for frames under sourceRoot.
func NewClassifier(sourceRoot string, markers model.Markers) *Classifier {
	markers = markers.WithDefaults()
	return &Classifier{
		sourceRoot:  sourceRoot,
		queryMarker: markers.Query,
		sqlMarker:   markers.SQL,
	}
}

// Classify tags one line.
func (c *Classifier) Classify(line string) LineKind {
	if c.IsQueryWithPayload(line) {
		return EventStart
	}
	if !c.IsRootCandidate(line) {
		return Noise
	}
	if c.hasSourceRoot(line) {
		return StackFrame
	}
	// dated header line
	return Noise
}

// IsRootCandidate reports whether the line starts with a date or the source root.
func (c *Classifier) IsRootCandidate(line string) bool {
	return DatePrefixRegex.MatchString(line) || c.hasSourceRoot(line)
}

// IsQueryMarked reports whether the line belongs to the query instrumentation namespace.
func (c *Classifier) IsQueryMarked(line string) bool {
	return strings.Contains(line, c.queryMarker)
}

// IsQueryWithPayload reports whether the line is query-marked and carries an SQL payload.
func (c *Classifier) IsQueryWithPayload(line string) bool {
	return c.IsQueryMarked(line) && strings.Contains(line, c.sqlMarker)
}

func (c *Classifier) hasSourceRoot(line string) bool {
	return c.sourceRoot != "" && strings.HasPrefix(line, c.sourceRoot)
}
