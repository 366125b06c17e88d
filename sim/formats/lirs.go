package formats

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/cachebench/cachebench/sim"
)

// LirsReader reads LIRS research traces: one block number per line, each
// treated as a Get on that key. The layout is identical to key-only but
// kept as its own type for semantic clarity about the trace source; it
// additionally skips '#' comment lines found in published LIRS traces.
type LirsReader struct {
	sim.NoSizeHint
	scanner *bufio.Scanner
}

// NewLirsReader creates a reader over r.
func NewLirsReader(r io.Reader) *LirsReader {
	return &LirsReader{scanner: newLineScanner(r)}
}

// NextEvent returns the next block access as a Get event.
func (lr *LirsReader) NextEvent() (sim.Event, bool) {
	for lr.scanner.Scan() {
		line := strings.TrimSpace(lr.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
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
