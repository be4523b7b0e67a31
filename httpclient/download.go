package httpclient

import (
	"errors"
	"io"
	"iter"
)

const defaultChunkSize = 32 * 1024

// Chunk is one piece of a streaming download.
type Chunk struct {
	// Data holds the bytes of this chunk. It is not reused between chunks.
	Data []byte
	// Progress is the percentage received so far (0-100), or nil when the
	// server did not declare a content length.
	Progress *float64
}

// Download reads a streaming response as a sequence of byte chunks with
// running progress.
type Download struct {
	// Length is the declared content length, nil when absent.
	Length *int64

	body      io.ReadCloser
	chunkSize int
	received  int64
	done      bool
}

// NewDownload wraps a stream. A chunkSize <= 0 selects 32 KiB.
func NewDownload(s *StreamResponse, chunkSize int) *Download {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	d := &Download{body: s.Body, chunkSize: chunkSize}
	if s.ContentLength >= 0 {
		length := s.ContentLength
		d.Length = &length
	}
	return d
}

// Next returns the next chunk, or io.EOF once the body is exhausted.
func (d *Download) Next() (Chunk, error) {
	if d.done {
		return Chunk{}, io.EOF
	}
	buf := make([]byte, d.chunkSize)
	for {
		n, err := d.body.Read(buf)
		if n > 0 {
			d.received += int64(n)
			if errors.Is(err, io.EOF) {
				d.done = true
			}
			return Chunk{Data: buf[:n], Progress: d.progress()}, nil
		}
		if errors.Is(err, io.EOF) {
			d.done = true
			return Chunk{}, io.EOF
		}
		if err != nil {
			return Chunk{}, NewConnectionError(err)
		}
	}
}

// All iterates the remaining chunks. Iteration stops after the first error.
func (d *Download) All() iter.Seq2[Chunk, error] {
	return func(yield func(Chunk, error) bool) {
		for {
			chunk, err := d.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(chunk, err) || err != nil {
				return
			}
		}
	}
}

// Received returns the number of bytes read so far.
func (d *Download) Received() int64 {
	return d.received
}

// Close releases the underlying response body.
func (d *Download) Close() error {
	d.done = true
	return d.body.Close()
}

func (d *Download) progress() *float64 {
	if d.Length == nil {
		return nil
	}
	p := 100.0
	if *d.Length > 0 {
		p = float64(d.received) / float64(*d.Length) * 100
	}
	return &p
}
