package tartype

// ProgressEvent represents a progress update during archive operations.
type ProgressEvent struct {
	// Stage identifies the current phase of the operation.
	Stage ProgressStage

	// Path is the entry currently being processed, if applicable.
	Path string

	// BytesDone is the number of content bytes completed so far.
	BytesDone uint64

	// FilesDone is the number of entries completed.
	FilesDone int

	// FilesTotal is the total number of entries.
	// Zero indicates the total is unknown (e.g., while reading an archive).
	FilesTotal int
}

// ProgressStage identifies the current phase of an operation.
type ProgressStage uint8

// Progress stages for archive operations.
const (
	// StageWriting indicates entries are being written to an archive.
	StageWriting ProgressStage = iota

	// StageListing indicates headers are being walked.
	StageListing

	// StageExtracting indicates entries are being written to disk.
	StageExtracting

	// StageDigesting indicates entry contents are being hashed.
	StageDigesting
)

// String returns the string representation of the stage.
func (s ProgressStage) String() string {
	switch s {
	case StageWriting:
		return "writing"
	case StageListing:
		return "listing"
	case StageExtracting:
		return "extracting"
	case StageDigesting:
		return "digesting"
	default:
		return "unknown"
	}
}

// ProgressFunc receives progress updates during operations.
// Callbacks run synchronously on the goroutine performing the operation.
type ProgressFunc func(ProgressEvent)
