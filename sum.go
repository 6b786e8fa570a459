package minitar

import (
	_ "crypto/sha256" // register sha256 for digest.Canonical
	"fmt"

	"github.com/opencontainers/go-digest"
)

// EntryDigest is the content digest of one archive entry.
type EntryDigest struct {
	// Name is the entry's recorded name.
	Name string

	// Size is the content length in bytes.
	Size uint64

	// Digest is the sha256 digest of the content, without padding.
	Digest digest.Digest
}

// String formats d the way sha256sum does, with the algorithm prefix kept.
func (d EntryDigest) String() string {
	return fmt.Sprintf("%s  %s", d.Digest, d.Name)
}

// Sum returns a digest of every entry's content in the archive at
// archivePath, in archive order.
func Sum(archivePath string, opts ...Option) ([]EntryDigest, error) {
	cfg := newConfig(opts)

	var sums []EntryDigest
	err := walk(archivePath, cfg, StageDigesting, func(tr *Reader, e *Entry) error {
		d := digest.Canonical.Digester()
		if err := tr.copyEntry(d.Hash()); err != nil {
			return fmt.Errorf("digest %s: %w", e.Name, err)
		}
		sums = append(sums, EntryDigest{Name: e.Name, Size: e.Size, Digest: d.Digest()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sums, nil
}
