// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/meigma/minitar/internal/platform"
)

// WriteFiles creates files under dir, creating parent directories as
// needed, and returns their full paths in sorted order.
func WriteFiles(tb testing.TB, dir string, files map[string][]byte) []string {
	tb.Helper()

	paths := make([]string, 0, len(files))
	for name, data := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			tb.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			tb.Fatalf("write %s: %v", path, err)
		}
		paths = append(paths, path)
	}
	slices.Sort(paths)
	return paths
}

// ReadFile returns the contents of path, failing the test on error.
func ReadFile(tb testing.TB, path string) []byte {
	tb.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read %s: %v", path, err)
	}
	return data
}

// RequireOwnerNames skips the test when the current uid or gid has no
// user or group name, as happens in minimal containers.
func RequireOwnerNames(tb testing.TB) {
	tb.Helper()

	uid, gid := os.Getuid(), os.Getgid()
	if uid < 0 || gid < 0 {
		return
	}
	if _, err := platform.LookupUser(uint32(uid)); err != nil { //nolint:gosec // checked non-negative
		tb.Skipf("uid %d has no user name: %v", uid, err)
	}
	if _, err := platform.LookupGroup(uint32(gid)); err != nil { //nolint:gosec // checked non-negative
		tb.Skipf("gid %d has no group name: %v", gid, err)
	}
}

// StreamOnly hides every method of r except Read, so consumers cannot seek.
func StreamOnly(r io.Reader) io.Reader {
	return struct{ io.Reader }{r}
}
