package formats

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cachebench/cachebench/sim"
)

// KeyOnlyReader reads the simplest trace format: one u64 key per line,
// every line a Get. Invalid lines are skipped.
type KeyOnlyReader struct {
	sim.NoSizeHint
	scanner *bufio.Scanner
}

// NewKeyOnlyReader creates a reader over r.
func NewKeyOnlyReader(r io.Reader) *KeyOnlyReader {
	return &KeyOnlyReader{scanner: newLineScanner(r)}
}

// NextEvent returns the next valid key as a Get event.
func (kr *KeyOnlyReader) NextEvent() (sim.Event, bool) {
	for kr.scanner.Scan() {
		line := strings.TrimSpace(kr.scanner.Text())
		if line == "" {
			continue
		}
		key, err := strconv.ParseUint(line, 10, 64)
		if err != nil {
			continue
		}
		return sim.Get(key), true
	}
	return sim.Event{}, false
}

// KeyOnlyWriter writes traces in key-only format.
type KeyOnlyWriter struct {
	w *bufio.Writer
}

// NewKeyOnlyWriter creates a writer over w.
func NewKeyOnlyWriter(w io.Writer) *KeyOnlyWriter {
	return &KeyOnlyWriter{w: bufio.NewWriter(w)}
}

// WriteEvent writes the event's key; the operation is not representable
// in this format and is dropped.
func (kw *KeyOnlyWriter) WriteEvent(e sim.Event) error {
	return kw.WriteKey(e.Key)
}

// WriteKey writes one key line.
func (kw *KeyOnlyWriter) WriteKey(key uint64) error {
	_, err := fmt.Fprintf(kw.w, "%d\n", key)
	return err
}

// Flush flushes buffered output.
func (kw *KeyOnlyWriter) Flush() error {
	return kw.w.Flush()
}
