// Package file provides offset-tracking wrappers for archive streams.
package file

import (
	"errors"
	"fmt"
	"io"

	"github.com/meigma/minitar/internal/tartype"
)

// ErrOverflow indicates a counter exceeded its maximum value.
var ErrOverflow = errors.New("counter overflow")

// CountingReader wraps a reader and tracks the current offset.
type CountingReader struct {
	R io.Reader
	N int64

	end      int64
	endKnown bool
}

// Read implements io.Reader.
func (cr *CountingReader) Read(p []byte) (int, error) {
	n, err := cr.R.Read(p)
	if n > 0 {
		if cr.N > (1<<63-1)-int64(n) {
			return n, ErrOverflow
		}
		cr.N += int64(n)
	}
	return n, err
}

// Skip advances past n bytes without returning them. When the source is an
// io.Seeker the bytes are skipped by seeking; otherwise they are read and
// discarded. Skipping beyond the end of the source is ErrShortIO.
func (cr *CountingReader) Skip(n int64) error {
	if n == 0 {
		return nil
	}
	if s, ok := cr.R.(io.Seeker); ok {
		return cr.seek(s, n)
	}
	copied, err := io.CopyN(io.Discard, cr, n)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: skipped %d of %d bytes", tartype.ErrShortIO, copied, n)
		}
		return err
	}
	return nil
}

func (cr *CountingReader) seek(s io.Seeker, n int64) error {
	cur, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("%w: %w", tartype.ErrSeek, err)
	}
	if !cr.endKnown {
		end, err := s.Seek(0, io.SeekEnd)
		if err != nil {
			return fmt.Errorf("%w: %w", tartype.ErrSeek, err)
		}
		if _, err := s.Seek(cur, io.SeekStart); err != nil {
			return fmt.Errorf("%w: %w", tartype.ErrSeek, err)
		}
		cr.end, cr.endKnown = end, true
	}
	if n > cr.end-cur {
		return fmt.Errorf("%w: entry data extends %d bytes past end of archive", tartype.ErrShortIO, n-(cr.end-cur))
	}
	if _, err := s.Seek(n, io.SeekCurrent); err != nil {
		return fmt.Errorf("%w: %w", tartype.ErrSeek, err)
	}
	cr.N += n
	return nil
}

// CountingWriter wraps a writer and counts bytes written.
type CountingWriter struct {
	W io.Writer
	N uint64
}

// Write implements io.Writer.
func (cw *CountingWriter) Write(p []byte) (int, error) {
	n, err := cw.W.Write(p)
	if n > 0 {
		//nolint:gosec // n is guaranteed non-negative by io.Writer contract
		if cw.N > ^uint64(0)-uint64(n) {
			return n, ErrOverflow
		}
		cw.N += uint64(n) //nolint:gosec // overflow checked above
	}
	return n, err
}
