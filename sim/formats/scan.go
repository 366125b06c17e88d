package formats

import (
	"bufio"
	"io"
)

// maxLineBytes bounds a single trace line. bufio's 64KiB default is too
// small for traces with large keys or extra columns, and overflowing it
// ends the scan instead of skipping the line.
const maxLineBytes = 1 << 20

// newLineScanner returns a line scanner sized for trace files.
func newLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return scanner
}
