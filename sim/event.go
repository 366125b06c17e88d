package sim

// Op is the operation carried by a trace event.
type Op uint8

const (
	// OpGet is a cache lookup. Sources that carry no operation column
	// default to Get.
	OpGet Op = iota
	// OpInsert inserts or updates a key.
	OpInsert
	// OpDelete removes a key.
	OpDelete
)

// String returns the lowercase wire name of the operation.
func (o Op) String() string {
	switch o {
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	default:
		return "get"
	}
}

// Event is a single cache access in a trace. Events are immutable values;
// the With* mutators return modified copies.
//
// Weight and TS are optional: nil means the source did not carry them.
// Weight feeds size-aware policies, TS feeds TTL/time-aware policies.
type Event struct {
	Key    uint64
	Op     Op
	Weight *uint32
	TS     *uint64
}

// Get creates a Get event, the common case.
func Get(key uint64) Event {
	return Event{Key: key, Op: OpGet}
}

// Insert creates an Insert event.
func Insert(key uint64) Event {
	return Event{Key: key, Op: OpInsert}
}

// Delete creates a Delete event.
func Delete(key uint64) Event {
	return Event{Key: key, Op: OpDelete}
}

// WithWeight returns a copy of the event carrying a weight.
func (e Event) WithWeight(weight uint32) Event {
	e.Weight = &weight
	return e
}

// WithTS returns a copy of the event carrying a timestamp.
func (e Event) WithTS(ts uint64) Event {
	e.TS = &ts
	return e
}
