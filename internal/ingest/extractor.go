package ingest

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tinytelemetry/qtrace/internal/model"
)

// ErrMalformedEventLine is returned when an event line lacks the SQL payload
// or the boundary that terminates it.
var ErrMalformedEventLine = errors.New("malformed event line")

// escapedQuote is the serialization artifact stripped from captured SQL.
const escapedQuote = `\"`

// Extractor pulls the SQL text and optional bindings out of an event line.
type Extractor struct {
	markers model.Markers
	sqlRe   *regexp.Regexp // payload between the SQL marker and the allocations marker
	keyRe   *regexp.Regexp // SQL text before the bindings delimiter
	bindsRe *regexp.Regexp // bindings value, up to the last "}," boundary
}

// NewExtractor compiles the payload patterns for markers.
func NewExtractor(markers model.Markers) *Extractor {
	markers = markers.WithDefaults()
	return &Extractor{
		markers: markers,
		sqlRe:   regexp.MustCompile(regexp.QuoteMeta(markers.SQL) + `.+?=> (.+?)` + regexp.QuoteMeta(markers.Allocations)),
		keyRe:   regexp.MustCompile(`^(.*?), ` + regexp.QuoteMeta(markers.Binds)),
		bindsRe: regexp.MustCompile(regexp.QuoteMeta(markers.Binds) + `.+?=>(.+\}),`),
	}
}

// Extract parses an event line into a QueryEvent with an empty trace.
// A line without bindings is valid; a line without the SQL payload is not.
func (e *Extractor) Extract(line string) (*model.QueryEvent, error) {
	payload, err := e.ExtractPayload(line)
	if err != nil {
		return nil, err
	}

	sql := normalizeKey(e.GroupingKey(payload))
	if sql == "" {
		return nil, fmt.Errorf("%w: empty SQL text", ErrMalformedEventLine)
	}

	event := &model.QueryEvent{SQL: sql}
	if bindings, ok := e.ExtractBindings(payload); ok {
		event.Bindings = bindings
		event.HasBindings = true
	}
	return event, nil
}

// ExtractPayload returns the cleaned text between the SQL marker and the
// allocations marker.
func (e *Extractor) ExtractPayload(line string) (string, error) {
	m := e.sqlRe.FindStringSubmatch(line)
	if m == nil {
		return "", fmt.Errorf("%w: no %s payload terminated by %s", ErrMalformedEventLine, e.markers.SQL, e.markers.Allocations)
	}
	return strings.ReplaceAll(m[1], escapedQuote, ""), nil
}

// GroupingKey returns the payload up to the first bindings delimiter, or the
// whole payload when there is none. SQL that contains the delimiter as data is
// truncated there.
func (e *Extractor) GroupingKey(payload string) string {
	if m := e.keyRe.FindStringSubmatch(payload); m != nil {
		return m[1]
	}
	return payload
}

// ExtractBindings returns the bindings text, if the payload has a bindings segment.
func (e *Extractor) ExtractBindings(payload string) (string, bool) {
	m := e.bindsRe.FindStringSubmatch(payload)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// normalizeKey trims the field separator and one pair of enclosing quotes
// left around the SQL value.
func normalizeKey(key string) string {
	key = strings.TrimSpace(key)
	key = strings.TrimSpace(strings.TrimSuffix(key, ","))
	if len(key) >= 2 && key[0] == '"' && key[len(key)-1] == '"' {
		key = strings.TrimSpace(key[1 : len(key)-1])
	}
	return key
}
