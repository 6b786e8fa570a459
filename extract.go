package minitar

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/meigma/minitar/internal/extract"
)

// Extract writes every entry of the archive at archivePath to a file named
// after it, creating or truncating the file. Entries are processed in
// archive order, so when a name occurs more than once the last copy wins.
//
// Extraction stops at the first error. Files already extracted are left in
// place; the file being written when the error occurred is removed.
func Extract(archivePath string, opts ...Option) error {
	cfg := newConfig(opts)
	cfg.log().Info("extracting archive", "archive", archivePath, "dest", cfg.destDir)

	sink := extract.NewSink(
		extract.WithDestDir(cfg.destDir),
		extract.WithPreserveMode(cfg.preserveMode),
		extract.WithPreserveTimes(cfg.preserveTimes),
	)
	seen := mapset.NewThreadUnsafeSet[string]()

	err := walk(archivePath, cfg, StageExtracting, func(tr *Reader, e *Entry) error {
		c, err := sink.Create(e)
		if err != nil {
			return fmt.Errorf("extract %s: %w", e.Name, err)
		}
		if err := tr.copyEntry(c); err != nil {
			_ = c.Discard() //nolint:errcheck // best-effort cleanup
			return fmt.Errorf("extract %s: %w", e.Name, err)
		}
		if err := c.Commit(); err != nil {
			return fmt.Errorf("extract %s: %w", e.Name, err)
		}
		if !seen.Add(e.Name) {
			cfg.log().Debug("overwrote earlier copy", "name", e.Name)
		}
		return nil
	})
	if err != nil {
		return err
	}
	cfg.log().Info("extracted archive", "archive", archivePath, "files", seen.Cardinality())
	return nil
}
