package minitar

import (
	"log/slog"

	"github.com/meigma/minitar/internal/write"
)

// ChangeDetection controls how strictly member files are checked for
// modification while they are streamed into an archive.
type ChangeDetection = write.ChangeDetection

const (
	ChangeDetectionNone   = write.ChangeDetectionNone
	ChangeDetectionStrict = write.ChangeDetectionStrict
)

// config holds settings shared by every archive operation. Each operation
// reads only the fields that apply to it.
type config struct {
	logger   *slog.Logger
	progress ProgressFunc

	// writing
	changeDetection ChangeDetection
	atomicAppend    bool

	// reading
	verifyChecksum bool

	// extraction
	destDir       string
	preserveMode  bool
	preserveTimes bool
}

// Option configures an archive operation.
type Option func(*config)

func newConfig(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *config) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

func (c *config) reportProgress(stage ProgressStage, path string, bytesDone uint64, filesDone, filesTotal int) {
	if c.progress == nil {
		return
	}
	c.progress(ProgressEvent{
		Stage:      stage,
		Path:       path,
		BytesDone:  bytesDone,
		FilesDone:  filesDone,
		FilesTotal: filesTotal,
	})
}

// WithLogger sets the logger for archive operations.
// If not set, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithProgress sets a callback to receive progress updates.
// The callback runs synchronously on the calling goroutine.
func WithProgress(fn ProgressFunc) Option {
	return func(cfg *config) {
		cfg.progress = fn
	}
}

// WithChangeDetection controls whether the writer verifies member files did
// not change while they were archived. The zero value disables the check.
func WithChangeDetection(cd ChangeDetection) Option {
	return func(cfg *config) {
		cfg.changeDetection = cd
	}
}

// WithAtomicAppend makes Append and Update build the new archive in a
// temporary file that replaces the original only on success.
func WithAtomicAppend(enabled bool) Option {
	return func(cfg *config) {
		cfg.atomicAppend = enabled
	}
}

// WithVerifyChecksum makes readers reject headers whose stored checksum
// does not match their contents.
func WithVerifyChecksum(enabled bool) Option {
	return func(cfg *config) {
		cfg.verifyChecksum = enabled
	}
}

// WithDestDir extracts entries under dir instead of at their recorded
// names. Entry names must then be local paths.
func WithDestDir(dir string) Option {
	return func(cfg *config) {
		cfg.destDir = dir
	}
}

// WithPreserveMode applies the recorded permission bits to extracted files.
func WithPreserveMode(enabled bool) Option {
	return func(cfg *config) {
		cfg.preserveMode = enabled
	}
}

// WithPreserveTimes applies the recorded modification time to extracted files.
func WithPreserveTimes(enabled bool) Option {
	return func(cfg *config) {
		cfg.preserveTimes = enabled
	}
}
