package platform

import (
	"os"

	"github.com/moby/sys/sequential"
)

// Archive and member files are read and written front to back, so they are
// opened with sequential access hints where the platform supports them.

// OpenRead opens name for reading.
func OpenRead(name string) (*os.File, error) {
	return sequential.Open(name)
}

// CreateTrunc opens name for writing, creating or truncating it.
func CreateTrunc(name string, perm os.FileMode) (*os.File, error) {
	return sequential.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
}

// OpenAppend opens an existing file for appending.
func OpenAppend(name string) (*os.File, error) {
	return sequential.OpenFile(name, os.O_WRONLY|os.O_APPEND, 0)
}
