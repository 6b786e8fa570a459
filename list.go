package minitar

import (
	"errors"
	"fmt"
	"io"

	"github.com/meigma/minitar/internal/platform"
)

// List returns the names of the entries in the archive at archivePath, in
// archive order. Names appended more than once appear once per copy.
//
// Entry content is skipped by seeking. An entry whose recorded size runs
// past the end of the file is ErrShortIO.
func List(archivePath string, opts ...Option) ([]string, error) {
	return listNames(archivePath, newConfig(opts))
}

// Entries returns the decoded headers of the entries in the archive at
// archivePath, in archive order.
func Entries(archivePath string, opts ...Option) ([]Entry, error) {
	cfg := newConfig(opts)
	var entries []Entry
	err := walk(archivePath, cfg, StageListing, func(_ *Reader, e *Entry) error {
		entries = append(entries, *e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func listNames(archivePath string, cfg *config) ([]string, error) {
	var names []string
	err := walk(archivePath, cfg, StageListing, func(_ *Reader, e *Entry) error {
		names = append(names, e.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// walk opens archivePath and calls fn for each entry until the end of the
// archive. fn may consume the entry's content through the Reader.
func walk(archivePath string, cfg *config, stage ProgressStage, fn func(*Reader, *Entry) error) error {
	f, err := platform.OpenRead(archivePath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer f.Close()

	tr := newReader(f, cfg)
	done := 0
	for {
		e, err := tr.Next()
		if errors.Is(err, io.EOF) {
			cfg.log().Debug("end of archive", "archive", archivePath, "entries", done, "offset", tr.offset())
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", archivePath, err)
		}
		cfg.log().Debug("entry", "name", e.Name, "size", e.Size, "offset", e.Offset)
		if err := fn(tr, e); err != nil {
			return err
		}
		done++
		cfg.reportProgress(stage, e.Name, tr.offset(), done, 0)
	}
}
