package formats

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/spaolacci/murmur3"

	"github.com/cachebench/cachebench/sim"
)

// CachelibConfig controls the cachelib CSV trace reader. Traces carry a
// header row by default and string keys, which are hashed to 64-bit keys.
type CachelibConfig struct {
	KeyCol    int
	OpCol     int
	SizeCol   *int
	HasHeader bool
}

// DefaultCachelibConfig matches the common key,op,size export layout.
func DefaultCachelibConfig() CachelibConfig {
	size := 2
	return CachelibConfig{KeyCol: 0, OpCol: 1, SizeCol: &size, HasHeader: true}
}

// CachelibReader reads cachelib-style CSV traces. Keys are arbitrary
// strings and are mapped to uint64 via murmur3 so downstream consumers
// see a numeric keyspace. Rows with unknown operations are skipped.
type CachelibReader struct {
	sim.NoSizeHint
	scanner   *bufio.Scanner
	config    CachelibConfig
	firstLine bool
}

// NewCachelibReader creates a reader over r.
func NewCachelibReader(r io.Reader, config CachelibConfig) *CachelibReader {
	return &CachelibReader{scanner: newLineScanner(r), config: config, firstLine: true}
}

// NextEvent returns the next valid row as an event.
func (cr *CachelibReader) NextEvent() (sim.Event, bool) {
	for cr.scanner.Scan() {
		skipHeader := cr.firstLine && cr.config.HasHeader
		cr.firstLine = false
		if skipHeader {
			continue
		}

		line := strings.TrimSpace(cr.scanner.Text())
		if line == "" {
			continue
		}
		cols := strings.Split(line, ",")
		if cr.config.KeyCol >= len(cols) || cr.config.OpCol >= len(cols) {
			continue
		}
		rawKey := strings.TrimSpace(cols[cr.config.KeyCol])
		if rawKey == "" {
			continue
		}

		var op sim.Op
		switch strings.ToLower(strings.TrimSpace(cols[cr.config.OpCol])) {
		case "get", "gets":
			op = sim.OpGet
		case "set", "add":
			op = sim.OpInsert
		case "delete", "del":
			op = sim.OpDelete
		default:
			continue
		}

		event := sim.Event{Key: murmur3.Sum64([]byte(rawKey)), Op: op}
		if raw := column(cols, cr.config.SizeCol); raw != "" {
			if size, err := strconv.ParseUint(raw, 10, 32); err == nil {
				event = event.WithWeight(uint32(size))
			}
		}
		return event, true
	}
	return sim.Event{}, false
}
