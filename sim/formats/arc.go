package formats

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/cachebench/cachebench/sim"
)

// ArcReader reads the ARC research trace format: space-separated
// "timestamp key [size]" lines. The timestamp column is ignored, the
// optional size becomes the event weight, and every access is a Get (the
// format carries no explicit inserts or deletes). Comment lines starting
// with '#' are skipped.
type ArcReader struct {
	sim.NoSizeHint
	scanner *bufio.Scanner
}

// NewArcReader creates a reader over r.
func NewArcReader(r io.Reader) *ArcReader {
	return &ArcReader{scanner: newLineScanner(r)}
}

// NextEvent returns the next valid access as a Get event.
func (ar *ArcReader) NextEvent() (sim.Event, bool) {
	for ar.scanner.Scan() {
		line := strings.TrimSpace(ar.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}
		key, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			continue
		}
		event := sim.Get(key)
		if len(parts) >= 3 {
			if weight, err := strconv.ParseUint(parts[2], 10, 32); err == nil {
				event = event.WithWeight(uint32(weight))
			}
		}
		return event, true
	}
	return sim.Event{}, false
}
