package minitar

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/minitar/internal/testutil"
)

func TestAppend(t *testing.T) {
	t.Parallel()

	archive, paths := createTestArchive(t, map[string][]byte{"a.txt": []byte("first")})
	more := testutil.WriteFiles(t, t.TempDir(), map[string][]byte{"b.txt": []byte("second")})

	require.NoError(t, Append(archive, mustSet(t, more...)))

	names, err := List(archive)
	require.NoError(t, err)
	assert.Equal(t, append(paths, more...), names)
	assert.Len(t, testutil.ReadFile(t, archive), 512*4+1024)
}

func TestAppendMissingArchive(t *testing.T) {
	t.Parallel()
	testutil.RequireOwnerNames(t)

	dir := t.TempDir()
	paths := testutil.WriteFiles(t, dir, map[string][]byte{"a": []byte("a")})
	archive := filepath.Join(dir, "missing.tar")

	for _, atomic := range []bool{false, true} {
		err := Append(archive, mustSet(t, paths...), WithAtomicAppend(atomic))
		require.ErrorIs(t, err, ErrOpen)
		_, statErr := os.Stat(archive)
		require.ErrorIs(t, statErr, os.ErrNotExist)
	}
}

func TestAtomicAppendMatchesInPlace(t *testing.T) {
	t.Parallel()

	archive, _ := createTestArchive(t, map[string][]byte{
		"a.txt": []byte("alpha"),
		"b.bin": bytes.Repeat([]byte{1, 2, 3}, 300),
	})
	more := testutil.WriteFiles(t, t.TempDir(), map[string][]byte{
		"c.txt": []byte("gamma"),
		"d.bin": bytes.Repeat([]byte{9}, 1025),
	})

	copyPath := filepath.Join(t.TempDir(), "copy.tar")
	require.NoError(t, os.WriteFile(copyPath, testutil.ReadFile(t, archive), 0o600))

	require.NoError(t, Append(archive, mustSet(t, more...)))
	require.NoError(t, Append(copyPath, mustSet(t, more...), WithAtomicAppend(true)))

	assert.Equal(t, testutil.ReadFile(t, archive), testutil.ReadFile(t, copyPath))

	info, err := os.Stat(copyPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "atomic append keeps the archive mode")
}

func TestAppendFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		atomic    bool
		wantSize  int
		untouched bool
	}{
		{"in place leaves no terminator", false, 1024, false},
		{"atomic leaves archive untouched", true, 2048, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			archive, paths := createTestArchive(t, map[string][]byte{"a.txt": []byte("0123456789")})
			before := testutil.ReadFile(t, archive)
			missing := filepath.Join(t.TempDir(), "missing")

			err := Append(archive, mustSet(t, missing), WithAtomicAppend(tt.atomic))
			require.ErrorIs(t, err, ErrStat)

			after := testutil.ReadFile(t, archive)
			assert.Len(t, after, tt.wantSize)
			if tt.untouched {
				assert.Equal(t, before, after)
			}

			// Either way the surviving entries still list.
			names, err := List(archive)
			require.NoError(t, err)
			assert.Equal(t, paths, names)

			// No temporary files are left beside the archive.
			dirEntries, err := os.ReadDir(filepath.Dir(archive))
			require.NoError(t, err)
			for _, de := range dirEntries {
				assert.NotContains(t, de.Name(), ".tmp-")
			}
		})
	}
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	archive, paths := createTestArchive(t, map[string][]byte{
		"a.txt": []byte("old"),
		"b.txt": []byte("bee"),
	})
	require.NoError(t, os.WriteFile(paths[0], []byte("new!"), 0o644))

	require.NoError(t, Update(archive, mustSet(t, paths[0])))

	names, err := List(archive)
	require.NoError(t, err)
	assert.Equal(t, []string{paths[0], paths[1], paths[0]}, names)

	// Extraction processes entries in order, so the update wins.
	require.NoError(t, os.Remove(paths[0]))
	require.NoError(t, Extract(archive))
	assert.Equal(t, "new!", string(testutil.ReadFile(t, paths[0])))
}

func TestUpdateRejectsMissingPath(t *testing.T) {
	t.Parallel()

	archive, paths := createTestArchive(t, map[string][]byte{"a.txt": []byte("a")})
	extra := testutil.WriteFiles(t, t.TempDir(), map[string][]byte{"new.txt": []byte("n")})
	before := testutil.ReadFile(t, archive)

	for _, atomic := range []bool{false, true} {
		err := Update(archive, mustSet(t, paths[0], extra[0]), WithAtomicAppend(atomic))
		require.ErrorIs(t, err, ErrNotInArchive)
		assert.Contains(t, err.Error(), extra[0])
		assert.Equal(t, before, testutil.ReadFile(t, archive))
	}
}

func TestUpdateMissingArchive(t *testing.T) {
	t.Parallel()

	err := Update(filepath.Join(t.TempDir(), "none.tar"), mustSet(t, "a"))
	require.ErrorIs(t, err, ErrOpen)
}
