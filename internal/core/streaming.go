package core

// streaming.go provides memory-efficient streaming readers for CSV input.
//
// These readers wrap io.Reader to handle common CSV issues without loading
// the entire file into memory:
//
//   - StreamingCountingReader: Tracks raw bytes read for progress reporting
//   - BOMSkippingReader: Removes UTF-8 BOM (0xEF 0xBB 0xBF) from Windows files
//   - StreamingUTF8Sanitizer: Replaces invalid UTF-8 bytes with '?'
//
// Use WrapForStreaming to apply them in the correct order.

import (
	"bytes"
	"io"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// StreamingUTF8Sanitizer wraps an io.Reader and replaces invalid UTF-8 bytes
// with '?' on the fly. The replacement is one byte so output never grows.
type StreamingUTF8Sanitizer struct {
	reader io.Reader
	buf    []byte
	ready  []byte // Sanitized bytes not yet returned
	err    error  // Deferred error from the underlying reader

	// Trailing bytes of the previous read that may start a multi-byte sequence
	pending []byte
}

// NewStreamingUTF8Sanitizer creates a new streaming UTF-8 sanitizer.
func NewStreamingUTF8Sanitizer(r io.Reader) *StreamingUTF8Sanitizer {
	return &StreamingUTF8Sanitizer{
		reader:  r,
		buf:     make([]byte, sanitizerBufSize),
		pending: make([]byte, 0, utf8.UTFMax),
	}
}

const sanitizerBufSize = 32 << 10

// Read implements io.Reader.
func (s *StreamingUTF8Sanitizer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	for len(s.ready) == 0 {
		if s.err != nil {
			return 0, s.err
		}
		s.fill()
	}

	n := copy(p, s.ready)
	s.ready = s.ready[n:]
	return n, nil
}

// fill reads the next chunk and sanitizes it into ready.
func (s *StreamingUTF8Sanitizer) fill() {
	n := copy(s.buf, s.pending)
	s.pending = s.pending[:0]

	m, err := s.reader.Read(s.buf[n:])
	n += m
	s.err = err

	written := s.sanitize(s.buf[:n], err != nil)
	s.ready = s.buf[:written]
}

// sanitize rewrites data in place and returns the number of bytes to emit.
// Unless final is set, an incomplete sequence at the end is moved to pending.
func (s *StreamingUTF8Sanitizer) sanitize(data []byte, final bool) int {
	write := 0
	for read := 0; read < len(data); {
		b := data[read]
		if b < utf8.RuneSelf {
			data[write] = b
			write++
			read++
			continue
		}

		if !final && !utf8.FullRune(data[read:]) {
			s.pending = append(s.pending, data[read:]...)
			return write
		}

		r, size := utf8.DecodeRune(data[read:])
		if r == utf8.RuneError && size == 1 {
			data[write] = '?'
			write++
			read++
			continue
		}

		copy(data[write:], data[read:read+size])
		write += size
		read += size
	}
	return write
}

// BOMSkippingReader wraps an io.Reader and skips the UTF-8 BOM if present.
type BOMSkippingReader struct {
	reader  io.Reader
	checked bool
	head    []byte // Bytes read during the BOM check that are not a BOM
}

// NewBOMSkippingReader creates a new BOM-skipping reader.
func NewBOMSkippingReader(r io.Reader) *BOMSkippingReader {
	return &BOMSkippingReader{reader: r}
}

// Read implements io.Reader. On the first read, it checks for and skips the BOM.
func (r *BOMSkippingReader) Read(p []byte) (int, error) {
	if !r.checked {
		r.checked = true

		var buf [3]byte
		n, err := io.ReadFull(r.reader, buf[:])
		if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
			return 0, err
		}
		if n < 3 || !bytes.Equal(buf[:], utf8BOM) {
			r.head = append([]byte(nil), buf[:n]...)
		}
	}

	if len(r.head) > 0 {
		copied := copy(p, r.head)
		r.head = r.head[copied:]
		return copied, nil
	}

	return r.reader.Read(p)
}

// StreamingCountingReader wraps an io.Reader to track bytes read.
type StreamingCountingReader struct {
	reader    io.Reader
	BytesRead int64
	Total     int64 // If known (0 if unknown)
}

// NewStreamingCountingReader creates a counting reader with optional total size.
func NewStreamingCountingReader(r io.Reader, total int64) *StreamingCountingReader {
	return &StreamingCountingReader{
		reader: r,
		Total:  total,
	}
}

// Read implements io.Reader.
func (r *StreamingCountingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.BytesRead += int64(n)
	return n, err
}

// Progress returns the read progress as a percentage (0-100).
// Returns 0 if total is unknown.
func (r *StreamingCountingReader) Progress() int {
	if r.Total <= 0 {
		return 0
	}
	return int(r.BytesRead * 100 / r.Total)
}

// WrapForStreaming wraps r for CSV parsing and returns the counter separately.
//
// The order matters:
//  1. Counting sits on the raw input so progress matches the file size
//  2. The BOM is stripped before any decoding
//  3. UTF-8 sanitization, when enabled, sees BOM-free text
func WrapForStreaming(r io.Reader, totalSize int64, sanitize bool) (io.Reader, *StreamingCountingReader) {
	counter := NewStreamingCountingReader(r, totalSize)
	var out io.Reader = NewBOMSkippingReader(counter)
	if sanitize {
		out = NewStreamingUTF8Sanitizer(out)
	}
	return out, counter
}
