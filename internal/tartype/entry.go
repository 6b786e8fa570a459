package tartype

import (
	"io/fs"
	"time"
)

// Entry is the decoded form of an archive header.
type Entry struct {
	// Name is the path recorded in the header.
	Name string

	// Mode is the entry's permission bits, including setuid, setgid and
	// sticky.
	Mode fs.FileMode

	// UID is the owner's user ID.
	UID uint32

	// GID is the owner's group ID.
	GID uint32

	// Uname is the owner's user name.
	Uname string

	// Gname is the owner's group name.
	Gname string

	// Size is the content length in bytes, excluding block padding.
	Size uint64

	// ModTime is the modification time, with one second resolution.
	ModTime time.Time

	// Typeflag is the raw entry kind byte.
	Typeflag byte

	// DevMajor and DevMinor are the device numbers of the file system the
	// entry was read from.
	DevMajor uint32
	DevMinor uint32

	// Offset is the byte offset of the entry's header within the archive.
	Offset int64
}
