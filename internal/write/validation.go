// Package write holds checks applied while member files are streamed into
// an archive.
package write

import (
	"fmt"
	"io/fs"
	"os"
)

// ChangeDetection controls how strictly file changes are detected while a
// member is streamed.
type ChangeDetection uint8

const (
	ChangeDetectionNone ChangeDetection = iota
	ChangeDetectionStrict
)

// CheckSameFile verifies the opened file is the one that was stat'd when
// its header was built. It is a no-op unless mode is strict.
func CheckSameFile(path string, statted, opened fs.FileInfo, mode ChangeDetection) error {
	if mode != ChangeDetectionStrict {
		return nil
	}
	if !os.SameFile(statted, opened) {
		return fmt.Errorf("file replaced during archive creation: %s", path)
	}
	return nil
}

// CheckFileUnchanged verifies a file wasn't modified while it was written.
// In strict mode, it compares size, mtime, and permissions before/after.
func CheckFileUnchanged(f *os.File, path string, before fs.FileInfo, mode ChangeDetection) error {
	if mode != ChangeDetectionStrict {
		return nil
	}
	after, err := f.Stat()
	if err != nil {
		return err
	}
	if after.Size() != before.Size() || !after.ModTime().Equal(before.ModTime()) || after.Mode().Perm() != before.Mode().Perm() {
		return fmt.Errorf("file changed during archive creation: %s", path)
	}
	return nil
}
