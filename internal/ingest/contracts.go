package ingest

// Stats counts what the processor did with each input line.
type Stats struct {
	Lines        int // lines seen
	EventStarts  int // lines classified as event starts
	Events       int // events extracted and handed to the sink
	Malformed    int // event starts skipped because extraction failed
	Frames       int // stack frames attached to an event
	OrphanFrames int // stack frames seen before any event
	Noise        int // lines ignored
}
