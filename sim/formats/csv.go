package formats

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/cachebench/cachebench/sim"
)

// CsvConfig maps trace columns for the generic CSV reader. Column indexes
// are 0-based; nil means the column is absent.
type CsvConfig struct {
	KeyCol    int
	OpCol     *int
	WeightCol *int
	TSCol     *int
	Delimiter string
	HasHeader bool
}

// DefaultCsvConfig returns the four-column layout key,op,weight,ts.
func DefaultCsvConfig() CsvConfig {
	op, weight, ts := 1, 2, 3
	return CsvConfig{
		KeyCol:    0,
		OpCol:     &op,
		WeightCol: &weight,
		TSCol:     &ts,
		Delimiter: ",",
	}
}

// KeyOnlyCsvConfig returns a single-column key layout.
func KeyOnlyCsvConfig() CsvConfig {
	return CsvConfig{KeyCol: 0, Delimiter: ","}
}

// CsvReader reads traces in a configurable CSV layout. Rows missing the
// key column or with an unparseable key are skipped.
type CsvReader struct {
	sim.NoSizeHint
	scanner   *bufio.Scanner
	config    CsvConfig
	firstLine bool
}

// NewCsvReader creates a reader over r with the given column mapping.
func NewCsvReader(r io.Reader, config CsvConfig) *CsvReader {
	if config.Delimiter == "" {
		config.Delimiter = ","
	}
	return &CsvReader{scanner: newLineScanner(r), config: config, firstLine: true}
}

// NextEvent returns the next valid row as an event.
func (cr *CsvReader) NextEvent() (sim.Event, bool) {
	for cr.scanner.Scan() {
		skipHeader := cr.firstLine && cr.config.HasHeader
		cr.firstLine = false
		if skipHeader {
			continue
		}

		line := strings.TrimSpace(cr.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cols := strings.Split(line, cr.config.Delimiter)
		if cr.config.KeyCol >= len(cols) {
			continue
		}
		key, err := strconv.ParseUint(strings.TrimSpace(cols[cr.config.KeyCol]), 10, 64)
		if err != nil {
			continue
		}

		event := sim.Event{Key: key, Op: parseOp(column(cols, cr.config.OpCol))}
		if raw := column(cols, cr.config.WeightCol); raw != "" {
			if weight, err := strconv.ParseUint(raw, 10, 32); err == nil {
				event = event.WithWeight(uint32(weight))
			}
		}
		if raw := column(cols, cr.config.TSCol); raw != "" {
			if ts, err := strconv.ParseUint(raw, 10, 64); err == nil {
				event = event.WithTS(ts)
			}
		}
		return event, true
	}
	return sim.Event{}, false
}

// column returns the trimmed value at the optional index, or "".
func column(cols []string, idx *int) string {
	if idx == nil || *idx >= len(cols) {
		return ""
	}
	return strings.TrimSpace(cols[*idx])
}

// parseOp maps common operation spellings to an Op; anything unknown
// defaults to Get.
func parseOp(s string) sim.Op {
	switch strings.ToLower(s) {
	case "insert", "set", "add", "1":
		return sim.OpInsert
	case "delete", "del", "2":
		return sim.OpDelete
	default:
		return sim.OpGet
	}
}

// CsvWriter writes traces in the default four-column CSV layout.
type CsvWriter struct {
	w *bufio.Writer
}

// NewCsvWriter creates a writer over w.
func NewCsvWriter(w io.Writer) *CsvWriter {
	return &CsvWriter{w: bufio.NewWriter(w)}
}

// WriteEvent writes one key,op,weight,ts row; absent optionals are left
// empty.
func (cw *CsvWriter) WriteEvent(e sim.Event) error {
	weight, ts := "", ""
	if e.Weight != nil {
		weight = strconv.FormatUint(uint64(*e.Weight), 10)
	}
	if e.TS != nil {
		ts = strconv.FormatUint(*e.TS, 10)
	}
	_, err := cw.w.WriteString(strconv.FormatUint(e.Key, 10) + "," + e.Op.String() + "," + weight + "," + ts + "\n")
	return err
}

// Flush flushes buffered output.
func (cw *CsvWriter) Flush() error {
	return cw.w.Flush()
}
