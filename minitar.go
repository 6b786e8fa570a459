package minitar

import (
	"iter"

	"github.com/meigma/minitar/internal/block"
	"github.com/meigma/minitar/internal/tartype"
	"github.com/meigma/minitar/internal/ustar"
)

// Re-export types from internal packages for the public API.
type (
	// Header is a raw 512-byte ustar header record.
	Header = ustar.Header

	// Entry is the decoded form of an archive header.
	Entry = tartype.Entry

	// ProgressEvent represents a progress update during operations.
	ProgressEvent = tartype.ProgressEvent

	// ProgressStage identifies the current phase of an operation.
	ProgressStage = tartype.ProgressStage

	// ProgressFunc receives progress updates during operations.
	ProgressFunc = tartype.ProgressFunc
)

// Format constants.
const (
	// BlockSize is the size of every header and data block.
	BlockSize = block.Size

	// MaxNameLen is the longest entry name a header can hold.
	MaxNameLen = ustar.NameSize

	// TypeReg is the typeflag of regular file entries.
	TypeReg = ustar.TypeReg

	// TypeDir is the typeflag of directory entries. It is never written.
	TypeDir = ustar.TypeDir
)

// Re-export progress stage constants.
const (
	StageWriting    = tartype.StageWriting
	StageListing    = tartype.StageListing
	StageExtracting = tartype.StageExtracting
	StageDigesting  = tartype.StageDigesting
)

// Sentinel errors re-exported from internal/tartype.
var (
	ErrStat          = tartype.ErrStat
	ErrOwnerLookup   = tartype.ErrOwnerLookup
	ErrGroupLookup   = tartype.ErrGroupLookup
	ErrOpen          = tartype.ErrOpen
	ErrShortIO       = tartype.ErrShortIO
	ErrParse         = tartype.ErrParse
	ErrSeek          = tartype.ErrSeek
	ErrTruncate      = tartype.ErrTruncate
	ErrNameTooLong   = tartype.ErrNameTooLong
	ErrFieldOverflow = tartype.ErrFieldOverflow
	ErrNotRegular    = tartype.ErrNotRegular
	ErrChecksum      = tartype.ErrChecksum
	ErrUnsafePath    = tartype.ErrUnsafePath
	ErrNotInArchive  = tartype.ErrNotInArchive
	ErrSizeOverflow  = tartype.ErrSizeOverflow
)

// FileSet is an ordered sequence of distinct paths supplied by the caller.
//
// The archive functions only read a FileSet; they never modify it.
// [github.com/meigma/minitar/fileset.Set] is the standard implementation.
type FileSet interface {
	// All yields the paths in order.
	All() iter.Seq[string]

	// Len returns the number of paths.
	Len() int

	// Contains reports whether path is in the set.
	Contains(path string) bool
}
