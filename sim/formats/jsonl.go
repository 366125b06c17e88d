package formats

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"

	"github.com/cachebench/cachebench/sim"
)

// jsonEvent is the wire representation of an event. The op field is
// omitted for Get, the default.
type jsonEvent struct {
	Key    uint64  `json:"key"`
	Op     string  `json:"op,omitempty"`
	Weight *uint32 `json:"weight,omitempty"`
	TS     *uint64 `json:"ts,omitempty"`
}

func (je jsonEvent) event() sim.Event {
	var op sim.Op
	switch strings.ToLower(je.Op) {
	case "insert":
		op = sim.OpInsert
	case "delete":
		op = sim.OpDelete
	default:
		op = sim.OpGet
	}
	return sim.Event{Key: je.Key, Op: op, Weight: je.Weight, TS: je.TS}
}

func toJSONEvent(e sim.Event) jsonEvent {
	je := jsonEvent{Key: e.Key, Weight: e.Weight, TS: e.TS}
	if e.Op != sim.OpGet {
		je.Op = e.Op.String()
	}
	return je
}

// JsonlReader reads traces with one JSON object per line. This is the
// only line format that carries the full event model (op, weight,
// timestamp). Lines that fail to parse are skipped.
type JsonlReader struct {
	sim.NoSizeHint
	scanner *bufio.Scanner
}

// NewJsonlReader creates a reader over r.
func NewJsonlReader(r io.Reader) *JsonlReader {
	return &JsonlReader{scanner: newLineScanner(r)}
}

// NextEvent returns the next valid event.
func (jr *JsonlReader) NextEvent() (sim.Event, bool) {
	for jr.scanner.Scan() {
		line := strings.TrimSpace(jr.scanner.Text())
		if line == "" {
			continue
		}
		var je jsonEvent
		if err := json.Unmarshal([]byte(line), &je); err != nil {
			continue
		}
		return je.event(), true
	}
	return sim.Event{}, false
}

// JsonlWriter writes traces with one JSON object per line.
type JsonlWriter struct {
	w *bufio.Writer
}

// NewJsonlWriter creates a writer over w.
func NewJsonlWriter(w io.Writer) *JsonlWriter {
	return &JsonlWriter{w: bufio.NewWriter(w)}
}

// WriteEvent writes one event line.
func (jw *JsonlWriter) WriteEvent(e sim.Event) error {
	data, err := json.Marshal(toJSONEvent(e))
	if err != nil {
		return err
	}
	if _, err := jw.w.Write(data); err != nil {
		return err
	}
	return jw.w.WriteByte('\n')
}

// Flush flushes buffered output.
func (jw *JsonlWriter) Flush() error {
	return jw.w.Flush()
}
