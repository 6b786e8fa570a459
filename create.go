package minitar

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/meigma/minitar/fileset"
	"github.com/meigma/minitar/internal/block"
	"github.com/meigma/minitar/internal/platform"
)

const archivePerm = 0o644

// Create writes a new archive at archivePath containing files, in order.
// An existing file at archivePath is truncated.
//
// On failure the archive is left partially written.
func Create(archivePath string, files FileSet, opts ...Option) error {
	cfg := newConfig(opts)
	cfg.log().Info("creating archive", "archive", archivePath, "files", files.Len())

	f, err := platform.CreateTrunc(archivePath, archivePerm)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOpen, err)
	}
	if err := newWriter(f, cfg).writeFiles(files); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Append adds files to the end of the existing archive at archivePath.
//
// The end-of-archive marker is stripped, the new entries are written, and
// a fresh marker follows them. By default this happens in place: a failure
// after the marker is stripped leaves an archive without one. Use
// WithAtomicAppend to replace the archive only on success.
func Append(archivePath string, files FileSet, opts ...Option) error {
	cfg := newConfig(opts)
	return appendFiles(archivePath, files, cfg)
}

// Update appends files to the archive at archivePath, requiring that every
// path is already present in it. Readers that extract in archive order then
// see the appended copy last.
//
// If any path is missing the archive is left untouched and the error wraps
// ErrNotInArchive.
func Update(archivePath string, files FileSet, opts ...Option) error {
	cfg := newConfig(opts)

	names, err := listNames(archivePath, cfg)
	if err != nil {
		return err
	}
	present := fileset.Of(slices.Values(names))
	requested := fileset.Of(files.All())
	if !requested.IsSubsetOf(present) {
		for path := range requested.All() {
			if !present.Contains(path) {
				return fmt.Errorf("%w: %s", ErrNotInArchive, path)
			}
		}
	}
	return appendFiles(archivePath, files, cfg)
}

func appendFiles(archivePath string, files FileSet, cfg *config) error {
	cfg.log().Info("appending to archive", "archive", archivePath, "files", files.Len(), "atomic", cfg.atomicAppend)

	probe, err := platform.OpenRead(archivePath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOpen, err)
	}
	if cfg.atomicAppend {
		defer probe.Close()
		return appendAtomic(archivePath, probe, files, cfg)
	}
	probe.Close()

	if err := block.TruncateTrailing(archivePath, block.TerminatorSize); err != nil {
		return err
	}
	f, err := platform.OpenAppend(archivePath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOpen, err)
	}
	if err := newWriter(f, cfg).writeFiles(files); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// appendAtomic copies src without its end-of-archive marker into a
// temporary file beside archivePath, writes the new entries there, and
// renames it over the archive.
func appendAtomic(archivePath string, src *os.File, files FileSet, cfg *config) (err error) {
	info, err := src.Stat()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStat, err)
	}
	keep := max(info.Size()-block.TerminatorSize, 0)

	tmp, err := os.CreateTemp(filepath.Dir(archivePath), "."+filepath.Base(archivePath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOpen, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if n, err := io.CopyN(tmp, src, keep); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: copied %d of %d archive bytes", ErrShortIO, n, keep)
		}
		return fmt.Errorf("copy archive: %w", err)
	}
	if err := newWriter(tmp, cfg).writeFiles(files); err != nil {
		return err
	}
	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod temp archive: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp archive: %w", err)
	}
	if err := os.Rename(tmpPath, archivePath); err != nil {
		return fmt.Errorf("rename temp archive: %w", err)
	}
	return nil
}
