package sim

// EventSource is a pull-based stream of cache events, implemented both by
// the synthetic workload generators and by the trace file readers.
//
// NextEvent returns the next event and true, or a zero Event and false at
// end-of-stream. A source that has returned false must keep returning
// false; the only source that never ends is the unbounded workload
// generator. Cancellation is external: a caller stops a source by simply
// not calling NextEvent again.
type EventSource interface {
	NextEvent() (Event, bool)

	// SizeHint returns the exact number of events remaining and true when
	// the source knows it, or 0 and false otherwise. The hint exists for
	// progress reporting only; correctness must never depend on it.
	SizeHint() (int, bool)
}

// NoSizeHint is embedded by sources of unknown length (file readers,
// unbounded generators) to supply the default SizeHint.
type NoSizeHint struct{}

// SizeHint reports that the remaining event count is unknown.
func (NoSizeHint) SizeHint() (int, bool) { return 0, false }

// SliceSource replays a fixed slice of events. It is mostly useful in
// tests and for short hand-built traces.
type SliceSource struct {
	events []Event
	pos    int
}

// NewSliceSource creates a source over the given events. The slice is not
// copied; the caller must not mutate it while the source is in use.
func NewSliceSource(events []Event) *SliceSource {
	return &SliceSource{events: events}
}

// NextEvent returns the next event in the slice until exhausted.
func (s *SliceSource) NextEvent() (Event, bool) {
	if s.pos >= len(s.events) {
		return Event{}, false
	}
	e := s.events[s.pos]
	s.pos++
	return e, true
}

// SizeHint reports the exact number of events remaining.
func (s *SliceSource) SizeHint() (int, bool) {
	return len(s.events) - s.pos, true
}
