package write

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckFileUnchanged(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(path, []byte("one"), 0o644))

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	require.NoError(t, err)
	defer f.Close()

	before, err := f.Stat()
	require.NoError(t, err)

	assert.NoError(t, CheckFileUnchanged(f, path, before, ChangeDetectionStrict))

	_, err = f.WriteAt([]byte("longer"), 0)
	require.NoError(t, err)

	assert.NoError(t, CheckFileUnchanged(f, path, before, ChangeDetectionNone))
	assert.Error(t, CheckFileUnchanged(f, path, before, ChangeDetectionStrict))
}

func TestCheckFileUnchangedModTime(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(path, []byte("one"), 0o644))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	before, err := f.Stat()
	require.NoError(t, err)

	later := before.ModTime().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, later, later))

	assert.Error(t, CheckFileUnchanged(f, path, before, ChangeDetectionStrict))
}

func TestCheckSameFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	require.NoError(t, os.WriteFile(a, []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("b"), 0o644))

	ia, err := os.Stat(a)
	require.NoError(t, err)
	ib, err := os.Stat(b)
	require.NoError(t, err)

	assert.NoError(t, CheckSameFile(a, ia, ia, ChangeDetectionStrict))
	assert.NoError(t, CheckSameFile(a, ia, ib, ChangeDetectionNone))
	assert.Error(t, CheckSameFile(a, ia, ib, ChangeDetectionStrict))
}
