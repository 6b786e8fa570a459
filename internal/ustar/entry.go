package ustar

import "github.com/meigma/minitar/internal/tartype"

// Entry decodes h. Only the size field must parse: it locates the next
// header. Other numeric fields that fail to parse decode as zero, so
// archives from writers that leave optional fields blank still read.
func (h *Header) Entry() (*tartype.Entry, error) {
	size, err := h.Size()
	if err != nil {
		return nil, err
	}
	mode, _ := h.Mode()
	uid, _ := h.UID()
	gid, _ := h.GID()
	mtime, _ := h.ModTime()
	major, minor, _ := h.Device()

	return &tartype.Entry{
		Name:     h.Name(),
		Mode:     FileMode(mode),
		UID:      uid,
		GID:      gid,
		Uname:    h.Uname(),
		Gname:    h.Gname(),
		Size:     size,
		ModTime:  mtime,
		Typeflag: h.Typeflag(),
		DevMajor: major,
		DevMinor: minor,
	}, nil
}
