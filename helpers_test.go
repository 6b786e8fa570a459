package minitar

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meigma/minitar/fileset"
	"github.com/meigma/minitar/internal/testutil"
)

// createTestArchive writes files under a temp dir, archives them in sorted
// path order, and returns the archive path and member paths.
func createTestArchive(t *testing.T, files map[string][]byte, opts ...Option) (archive string, paths []string) {
	t.Helper()
	testutil.RequireOwnerNames(t)

	dir := t.TempDir()
	paths = testutil.WriteFiles(t, filepath.Join(dir, "src"), files)
	archive = filepath.Join(dir, "out.tar")
	require.NoError(t, Create(archive, mustSet(t, paths...), opts...))
	return archive, paths
}

func mustSet(t *testing.T, paths ...string) *fileset.Set {
	t.Helper()
	s, err := fileset.New(paths...)
	require.NoError(t, err)
	return s
}
