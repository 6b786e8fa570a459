package minitar

import (
	"errors"
	"fmt"
	"io"

	"github.com/meigma/minitar/internal/block"
	"github.com/meigma/minitar/internal/file"
	"github.com/meigma/minitar/internal/sizing"
	"github.com/meigma/minitar/internal/ustar"
)

// Reader walks the entries of an archive.
//
// Next advances to the following header, skipping whatever content of the
// current entry was not read. When the source implements io.Seeker the
// skip is a seek; otherwise the bytes are read and discarded.
type Reader struct {
	cr  *file.CountingReader
	cfg *config
	hdr ustar.Header

	cur       *Entry
	remaining uint64 // unread content bytes of cur
	pad       uint64 // padding after cur's content
	done      bool
}

// NewReader returns a Reader that reads archive blocks from r.
func NewReader(r io.Reader, opts ...Option) *Reader {
	return newReader(r, newConfig(opts))
}

func newReader(r io.Reader, cfg *config) *Reader {
	return &Reader{
		cr:  &file.CountingReader{R: r},
		cfg: cfg,
	}
}

// Next advances to the next entry and returns it. It returns io.EOF at the
// first zero block, and also when the input ends cleanly on a header
// boundary, which is what an archive whose append failed looks like.
// A partial header block is ErrShortIO.
func (tr *Reader) Next() (*Entry, error) {
	if tr.done {
		return nil, io.EOF
	}
	if err := tr.skipRest(); err != nil {
		return nil, err
	}

	offset := tr.cr.N
	if err := block.Read(tr.cr, tr.hdr[:]); err != nil {
		if errors.Is(err, io.EOF) {
			tr.finish()
			return nil, io.EOF
		}
		return nil, fmt.Errorf("header at offset %d: %w", offset, err)
	}
	if tr.hdr.IsZero() {
		tr.finish()
		return nil, io.EOF
	}
	if tr.cfg.verifyChecksum && !tr.hdr.VerifyChecksum() {
		return nil, fmt.Errorf("%w: header at offset %d", ErrChecksum, offset)
	}

	e, err := tr.hdr.Entry()
	if err != nil {
		return nil, fmt.Errorf("header at offset %d: %w", offset, err)
	}
	e.Offset = offset
	tr.cur = e
	tr.remaining = e.Size
	tr.pad = block.Padding(e.Size)
	return e, nil
}

// Header returns a copy of the raw header of the current entry. Before the
// first entry and after Next returns io.EOF it is all zeros.
func (tr *Reader) Header() Header {
	return tr.hdr
}

func (tr *Reader) finish() {
	tr.done = true
	tr.cur = nil
	tr.hdr = ustar.Header{}
	tr.remaining, tr.pad = 0, 0
}

// Read reads content of the current entry. It returns io.EOF once the
// entry's recorded size has been consumed. An archive that ends inside the
// content is ErrShortIO.
func (tr *Reader) Read(p []byte) (int, error) {
	if tr.cur == nil || tr.remaining == 0 {
		return 0, io.EOF
	}
	if uint64(len(p)) > tr.remaining {
		p = p[:tr.remaining]
	}
	n, err := tr.cr.Read(p)
	tr.remaining -= uint64(n) //nolint:gosec // n is non-negative and at most len(p)
	if errors.Is(err, io.EOF) {
		if tr.remaining > 0 {
			return n, fmt.Errorf("%w: archive ended inside %s", ErrShortIO, tr.cur.Name)
		}
		err = nil
	}
	return n, err
}

// copyEntry writes the unread content of the current entry to w. An entry
// untouched by Read is copied in whole blocks, padding included.
func (tr *Reader) copyEntry(w io.Writer) error {
	if tr.cur == nil {
		return nil
	}
	if tr.remaining != tr.cur.Size {
		_, err := io.Copy(w, tr)
		return err
	}
	if err := block.CopyContent(w, tr.cr, tr.remaining); err != nil {
		return fmt.Errorf("%s: %w", tr.cur.Name, err)
	}
	tr.remaining, tr.pad = 0, 0
	return nil
}

func (tr *Reader) skipRest() error {
	total, ok := sizing.AddUint64(tr.remaining, tr.pad)
	if !ok {
		return ErrSizeOverflow
	}
	if total == 0 {
		return nil
	}
	n, err := sizing.ToInt64(total, ErrSizeOverflow)
	if err != nil {
		return err
	}
	if err := tr.cr.Skip(n); err != nil {
		return fmt.Errorf("skip %s: %w", tr.cur.Name, err)
	}
	tr.remaining, tr.pad = 0, 0
	return nil
}

// offset returns the number of archive bytes consumed so far.
func (tr *Reader) offset() uint64 {
	return uint64(tr.cr.N) //nolint:gosec // offsets are non-negative
}
