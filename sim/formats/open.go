package formats

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/snappy"
)

// Open opens a trace file for reading. Paths ending in ".sz" are
// decompressed transparently with snappy framing.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace %s: %w", path, err)
	}
	if strings.HasSuffix(path, ".sz") {
		return &snappyReadCloser{r: snappy.NewReader(f), f: f}, nil
	}
	return f, nil
}

// Create creates a trace file for writing. Paths ending in ".sz" are
// compressed transparently with snappy framing.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create trace %s: %w", path, err)
	}
	if strings.HasSuffix(path, ".sz") {
		return &snappyWriteCloser{w: snappy.NewBufferedWriter(f), f: f}, nil
	}
	return f, nil
}

type snappyReadCloser struct {
	r *snappy.Reader
	f *os.File
}

func (s *snappyReadCloser) Read(p []byte) (int, error) { return s.r.Read(p) }
func (s *snappyReadCloser) Close() error               { return s.f.Close() }

type snappyWriteCloser struct {
	w *snappy.Writer
	f *os.File
}

func (s *snappyWriteCloser) Write(p []byte) (int, error) { return s.w.Write(p) }

// Close flushes the compressor before closing the file.
func (s *snappyWriteCloser) Close() error {
	if err := s.w.Close(); err != nil {
		s.f.Close()
		return err
	}
	return s.f.Close()
}
