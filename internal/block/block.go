// Package block implements fixed-size block I/O for ustar archives.
package block

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/meigma/minitar/internal/tartype"
	"github.com/meigma/minitar/internal/ustar"
)

// Size is the archive block size.
const Size = ustar.BlockSize

// TerminatorBlocks is the number of zero blocks that close an archive.
const TerminatorBlocks = 2

// TerminatorSize is the byte length of the end-of-archive marker.
const TerminatorSize = TerminatorBlocks * Size

var zero [Size]byte

// IsTerminator reports whether every byte of b is zero.
func IsTerminator(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of blocks needed to hold n bytes.
func Count(n uint64) uint64 {
	return n/Size + min(n%Size, 1)
}

// Padding returns the number of zero bytes that follow n content bytes.
func Padding(n uint64) uint64 {
	return Count(n)*Size - n
}

// Read fills buf (one block) from r. A clean end of input is reported as
// io.EOF; a partial block is ErrShortIO.
func Read(r io.Reader, buf []byte) error {
	n, err := io.ReadFull(r, buf)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		return io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("%w: read %d of %d bytes", tartype.ErrShortIO, n, len(buf))
	default:
		return fmt.Errorf("%w: %w", tartype.ErrShortIO, err)
	}
}

// Write writes buf in full.
func Write(w io.Writer, buf []byte) error {
	n, err := w.Write(buf)
	if err != nil {
		return fmt.Errorf("%w: %w", tartype.ErrShortIO, err)
	}
	if n != len(buf) {
		return fmt.Errorf("%w: wrote %d of %d bytes", tartype.ErrShortIO, n, len(buf))
	}
	return nil
}

// WriteTerminator writes the end-of-archive marker.
func WriteTerminator(w io.Writer) error {
	for range TerminatorBlocks {
		if err := Write(w, zero[:]); err != nil {
			return err
		}
	}
	return nil
}

// WritePadded copies exactly size bytes from r to w in whole blocks,
// zero-padding the final block. The source must supply size bytes;
// running out early is ErrShortIO.
func WritePadded(w io.Writer, r io.Reader, size uint64) error {
	var buf [Size]byte
	remaining := size
	for remaining > 0 {
		chunk := min(remaining, Size)
		clear(buf[chunk:])
		n, err := io.ReadFull(r, buf[:chunk])
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return fmt.Errorf("%w: source ended after %d of %d bytes", tartype.ErrShortIO, size-remaining+uint64(n), size) //nolint:gosec // n is non-negative
			}
			return err
		}
		if err := Write(w, buf[:]); err != nil {
			return err
		}
		remaining -= chunk
	}
	return nil
}

// CopyContent reads Count(size) whole blocks from r and writes the first
// size bytes to w, discarding the padding.
func CopyContent(w io.Writer, r io.Reader, size uint64) error {
	var buf [Size]byte
	remaining := size
	for remaining > 0 {
		if err := Read(r, buf[:]); err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: archive ended inside entry data", tartype.ErrShortIO)
			}
			return err
		}
		chunk := min(remaining, Size)
		if err := Write(w, buf[:chunk]); err != nil {
			return err
		}
		remaining -= chunk
	}
	return nil
}

// TruncateTrailing shrinks the file at path by n bytes. Files shorter than
// n bytes are truncated to zero.
func TruncateTrailing(path string, n int64) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %w", tartype.ErrStat, err)
	}
	size := max(info.Size()-n, 0)
	if err := os.Truncate(path, size); err != nil {
		return fmt.Errorf("%w: %w", tartype.ErrTruncate, err)
	}
	return nil
}
