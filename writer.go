package minitar

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/meigma/minitar/internal/block"
	"github.com/meigma/minitar/internal/file"
	"github.com/meigma/minitar/internal/platform"
	"github.com/meigma/minitar/internal/write"
)

var errWriterClosed = errors.New("minitar: write after close")

// Writer streams archive entries to an io.Writer.
//
// Each entry is a header block followed by the entry content padded to a
// block boundary. Close writes the end-of-archive marker; it does not
// close the underlying writer.
type Writer struct {
	cw     *file.CountingWriter
	cfg    *config
	files  int
	total  int
	closed bool
}

// NewWriter returns a Writer that writes archive blocks to w.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	return newWriter(w, newConfig(opts))
}

func newWriter(w io.Writer, cfg *config) *Writer {
	return &Writer{
		cw:  &file.CountingWriter{W: w},
		cfg: cfg,
	}
}

// Written returns the number of bytes written so far.
func (tw *Writer) Written() uint64 {
	return tw.cw.N
}

// WriteHeader writes h followed by the content read from r. Exactly the
// size recorded in h is read from r; a shorter source is ErrShortIO.
func (tw *Writer) WriteHeader(h *Header, r io.Reader) error {
	if tw.closed {
		return errWriterClosed
	}
	size, err := h.Size()
	if err != nil {
		return fmt.Errorf("%s: %w", h.Name(), err)
	}
	if err := block.Write(tw.cw, h[:]); err != nil {
		return fmt.Errorf("write header %s: %w", h.Name(), err)
	}
	if err := block.WritePadded(tw.cw, r, size); err != nil {
		return fmt.Errorf("write data %s: %w", h.Name(), err)
	}
	tw.files++
	tw.cfg.log().Debug("wrote entry", "name", h.Name(), "size", size)
	tw.cfg.reportProgress(StageWriting, h.Name(), tw.cw.N, tw.files, tw.total)
	return nil
}

// WriteFile archives the regular file at path under its given name.
//
// The header is written before the file is opened. If the file cannot be
// opened or yields fewer bytes than its stat'd size, the archive is left
// with a header and no complete content.
func (tw *Writer) WriteFile(path string) error {
	if tw.closed {
		return errWriterClosed
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStat, err)
	}
	h, err := headerFromInfo(path, info)
	if err != nil {
		return err
	}
	if err := block.Write(tw.cw, h[:]); err != nil {
		return fmt.Errorf("write header %s: %w", path, err)
	}

	f, err := platform.OpenRead(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer f.Close()

	mode := tw.cfg.changeDetection
	if mode == write.ChangeDetectionStrict {
		opened, err := f.Stat()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrStat, err)
		}
		if err := write.CheckSameFile(path, info, opened, mode); err != nil {
			return err
		}
	}

	size := uint64(info.Size()) //nolint:gosec // regular file sizes are non-negative
	if err := block.WritePadded(tw.cw, f, size); err != nil {
		return fmt.Errorf("write data %s: %w", path, err)
	}
	if err := write.CheckFileUnchanged(f, path, info, mode); err != nil {
		return err
	}

	tw.files++
	tw.cfg.log().Debug("wrote entry", "name", path, "size", size)
	tw.cfg.reportProgress(StageWriting, path, tw.cw.N, tw.files, tw.total)
	return nil
}

// Close writes the two zero blocks that end the archive. Further writes
// fail. Close is idempotent.
func (tw *Writer) Close() error {
	if tw.closed {
		return nil
	}
	tw.closed = true
	return block.WriteTerminator(tw.cw)
}

// writeFiles archives every path in files, in order, then closes tw.
func (tw *Writer) writeFiles(files FileSet) error {
	tw.total = files.Len()
	for path := range files.All() {
		if err := tw.WriteFile(path); err != nil {
			return err
		}
	}
	return tw.Close()
}
