package extract

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/minitar/internal/tartype"
)

func TestSinkCommit(t *testing.T) {
	t.Parallel()

	dest := t.TempDir()
	mtime := time.Unix(1600000000, 0)
	s := NewSink(WithDestDir(dest), WithPreserveMode(true), WithPreserveTimes(true))

	c, err := s.Create(&tartype.Entry{Name: "a/b/c.txt", Mode: 0o600, ModTime: mtime})
	require.NoError(t, err)
	_, err = c.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, c.Commit())

	path := filepath.Join(dest, "a", "b", "c.txt")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o600), info.Mode().Perm())
	assert.Equal(t, mtime.Unix(), info.ModTime().Unix())
}

func TestSinkTruncatesExisting(t *testing.T) {
	t.Parallel()

	dest := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dest, "f"), []byte("a much longer body"), 0o644))

	s := NewSink(WithDestDir(dest))
	c, err := s.Create(&tartype.Entry{Name: "f"})
	require.NoError(t, err)
	_, err = c.Write([]byte("short"))
	require.NoError(t, err)
	require.NoError(t, c.Commit())

	data, err := os.ReadFile(filepath.Join(dest, "f"))
	require.NoError(t, err)
	assert.Equal(t, "short", string(data))
}

func TestSinkDiscard(t *testing.T) {
	t.Parallel()

	dest := t.TempDir()
	s := NewSink(WithDestDir(dest))
	c, err := s.Create(&tartype.Entry{Name: "partial"})
	require.NoError(t, err)
	_, err = c.Write([]byte("half"))
	require.NoError(t, err)
	require.NoError(t, c.Discard())

	_, err = os.Stat(filepath.Join(dest, "partial"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSinkWithoutDestDirUsesName(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sub", "abs.txt")
	c, err := NewSink().Create(&tartype.Entry{Name: path})
	require.NoError(t, err)
	_, err = c.Write([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, c.Commit())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestSinkRejectsNonLocalNames(t *testing.T) {
	t.Parallel()

	s := NewSink(WithDestDir(t.TempDir()))
	for _, name := range []string{"../up", "/etc/passwd", "a/../../up", ""} {
		_, err := s.Create(&tartype.Entry{Name: name})
		var pathErr *fs.PathError
		require.ErrorAs(t, err, &pathErr, name)
	}
}

func TestSinkRootBlocksSymlinkEscape(t *testing.T) {
	t.Parallel()

	dest := t.TempDir()
	outside := t.TempDir()
	require.NoError(t, os.Symlink(outside, filepath.Join(dest, "link")))

	_, err := NewSink(WithDestDir(dest)).Create(&tartype.Entry{Name: "link/escape.txt"})
	require.Error(t, err)
	_, statErr := os.Stat(filepath.Join(outside, "escape.txt"))
	require.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestSinkPreservesSpecialModeBits(t *testing.T) {
	t.Parallel()

	dest := t.TempDir()
	mode := 0o755 | fs.ModeSetuid
	c, err := NewSink(WithDestDir(dest), WithPreserveMode(true)).Create(&tartype.Entry{Name: "tool", Mode: mode})
	require.NoError(t, err)
	require.NoError(t, c.Commit())

	info, err := os.Stat(filepath.Join(dest, "tool"))
	require.NoError(t, err)
	assert.Equal(t, mode, info.Mode()&modeMask)
}
