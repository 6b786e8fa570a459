// Package extract materializes archive entries on the filesystem.
package extract

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/moby/sys/sequential"

	"github.com/meigma/minitar/internal/tartype"
)

// createPerm is the mode new files are created with before the umask.
const createPerm = 0o666

// modeMask selects the bits a header records.
const modeMask = fs.ModePerm | fs.ModeSetuid | fs.ModeSetgid | fs.ModeSticky

// target is the filesystem a Sink writes into: either the host filesystem
// or an os.Root confined to the destination directory.
type target interface {
	OpenFile(name string, flag int, perm fs.FileMode) (*os.File, error)
	MkdirAll(name string, perm fs.FileMode) error
	Chmod(name string, mode fs.FileMode) error
	Chtimes(name string, atime, mtime time.Time) error
	Remove(name string) error
	Close() error
}

// Sink writes entries to files named after them.
//
// Without a destination directory entries are written at their recorded
// names, relative to the working directory. With one, names must be local
// paths and every file operation is confined to the directory.
type Sink struct {
	destDir       string
	preserveMode  bool
	preserveTimes bool
}

// Option configures a Sink.
type Option func(*Sink)

// WithDestDir confines extraction to dir.
func WithDestDir(dir string) Option {
	return func(s *Sink) {
		s.destDir = dir
	}
}

// WithPreserveMode applies the recorded permission, setuid, setgid and
// sticky bits on Commit.
func WithPreserveMode(preserve bool) Option {
	return func(s *Sink) {
		s.preserveMode = preserve
	}
}

// WithPreserveTimes applies the recorded modification time on Commit.
func WithPreserveTimes(preserve bool) Option {
	return func(s *Sink) {
		s.preserveTimes = preserve
	}
}

// NewSink returns a Sink configured by opts.
func NewSink(opts ...Option) *Sink {
	s := &Sink{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create opens (creating or truncating) the file for entry. Missing parent
// directories are created.
func (s *Sink) Create(entry *tartype.Entry) (*Committer, error) {
	if entry.Name == "" {
		return nil, &fs.PathError{Op: "extract", Path: entry.Name, Err: fs.ErrInvalid}
	}
	t, rel, err := s.open(entry.Name)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(rel); dir != "." {
		if err := t.MkdirAll(dir, 0o750); err != nil {
			_ = t.Close() //nolint:errcheck // best-effort cleanup
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	f, err := t.OpenFile(rel, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, createPerm)
	if err != nil {
		_ = t.Close() //nolint:errcheck // best-effort cleanup
		return nil, fmt.Errorf("%w: %w", tartype.ErrOpen, err)
	}
	return &Committer{
		entry:  entry,
		rel:    rel,
		file:   f,
		target: t,
		sink:   s,
	}, nil
}

func (s *Sink) open(name string) (target, string, error) {
	rel := filepath.FromSlash(name)
	if s.destDir == "" {
		return hostFS{}, rel, nil
	}
	if !filepath.IsLocal(rel) {
		return nil, "", &fs.PathError{Op: "extract", Path: name, Err: tartype.ErrUnsafePath}
	}
	root, err := os.OpenRoot(s.destDir)
	if err != nil {
		return nil, "", fmt.Errorf("open destination root %s: %w", s.destDir, err)
	}
	return root, rel, nil
}

// Committer receives one entry's content.
type Committer struct {
	entry  *tartype.Entry
	rel    string
	file   *os.File
	target target
	sink   *Sink
}

// Write implements io.Writer.
func (c *Committer) Write(p []byte) (int, error) {
	return c.file.Write(p)
}

// Commit closes the file and applies the requested metadata.
func (c *Committer) Commit() error {
	defer c.target.Close()

	if err := c.file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", c.rel, err)
	}
	if c.sink.preserveMode {
		if err := c.target.Chmod(c.rel, c.entry.Mode&modeMask); err != nil {
			return fmt.Errorf("chmod: %w", err)
		}
	}
	if c.sink.preserveTimes {
		if err := c.target.Chtimes(c.rel, c.entry.ModTime, c.entry.ModTime); err != nil {
			return fmt.Errorf("chtimes: %w", err)
		}
	}
	return nil
}

// Discard closes and removes the partially written file.
func (c *Committer) Discard() error {
	_ = c.file.Close() //nolint:errcheck // best-effort cleanup
	err := c.target.Remove(c.rel)
	if errors.Is(err, fs.ErrNotExist) {
		err = nil
	}
	return errors.Join(err, c.target.Close())
}

// hostFS is the unconfined target used when no destination is set.
type hostFS struct{}

func (hostFS) OpenFile(name string, flag int, perm fs.FileMode) (*os.File, error) {
	return sequential.OpenFile(name, flag, perm)
}

func (hostFS) MkdirAll(name string, perm fs.FileMode) error { return os.MkdirAll(name, perm) }

func (hostFS) Chmod(name string, mode fs.FileMode) error { return os.Chmod(name, mode) }

func (hostFS) Chtimes(name string, atime, mtime time.Time) error {
	return os.Chtimes(name, atime, mtime)
}

func (hostFS) Remove(name string) error { return os.Remove(name) }

func (hostFS) Close() error { return nil }
