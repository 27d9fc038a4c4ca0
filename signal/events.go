package signal

// Event marks a discrete onset in a recording.
type Event struct {
	// Sample is the onset index into the recording.
	Sample int

	// Code identifies the event class. Several codes may map to one
	// named condition.
	Code int
}

// Span is a half-open sample range [Start, End).
type Span struct {
	Start int
	End   int
}

// Len returns the number of samples covered by the span.
func (s Span) Len() int {
	if s.End <= s.Start {
		return 0
	}

	return s.End - s.Start
}
