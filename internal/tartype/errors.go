package tartype

import "errors"

// Sentinel errors for archive operations.
var (
	// ErrStat is returned when a path cannot be stat'd.
	ErrStat = errors.New("minitar: stat failed")

	// ErrOwnerLookup is returned when a uid has no resolvable user name.
	ErrOwnerLookup = errors.New("minitar: owner lookup failed")

	// ErrGroupLookup is returned when a gid has no resolvable group name.
	ErrGroupLookup = errors.New("minitar: group lookup failed")

	// ErrOpen is returned when an archive or member file cannot be opened.
	ErrOpen = errors.New("minitar: open failed")

	// ErrShortIO is returned when fewer bytes than required were transferred.
	ErrShortIO = errors.New("minitar: short read or write")

	// ErrParse is returned when a header field is not valid octal text.
	ErrParse = errors.New("minitar: header parse failed")

	// ErrSeek is returned when the archive cannot be repositioned.
	ErrSeek = errors.New("minitar: seek failed")

	// ErrTruncate is returned when the archive cannot be shrunk before an append.
	ErrTruncate = errors.New("minitar: truncate failed")

	// ErrNameTooLong is returned when a path does not fit the name field.
	ErrNameTooLong = errors.New("minitar: name too long")

	// ErrFieldOverflow is returned when a numeric value does not fit its field.
	ErrFieldOverflow = errors.New("minitar: field overflow")

	// ErrNotRegular is returned when a member path is not a regular file.
	ErrNotRegular = errors.New("minitar: not a regular file")

	// ErrChecksum is returned when checksum verification is enabled and a
	// header does not match its stored checksum.
	ErrChecksum = errors.New("minitar: checksum mismatch")

	// ErrUnsafePath is returned when an entry name would escape the
	// extraction directory.
	ErrUnsafePath = errors.New("minitar: unsafe entry path")

	// ErrNotInArchive is returned by Update when a requested path is not
	// already present in the archive.
	ErrNotInArchive = errors.New("minitar: file not present in archive")

	// ErrSizeOverflow is returned when byte counts exceed supported limits.
	ErrSizeOverflow = errors.New("minitar: size overflow")
)
