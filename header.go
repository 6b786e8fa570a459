package minitar

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/meigma/minitar/internal/platform"
	"github.com/meigma/minitar/internal/ustar"
)

// BuildHeader stats path and returns a sealed header describing it.
//
// The name field holds path exactly as given. Owner and group ids must
// resolve to names; an unknown uid or gid is an error rather than an empty
// name. Only regular files are accepted.
func BuildHeader(path string) (*Header, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStat, err)
	}
	return headerFromInfo(path, info)
}

// Checksum returns the checksum of h: the sum of its bytes with the
// checksum field counted as spaces.
func Checksum(h *Header) uint32 {
	return h.Checksum()
}

func headerFromInfo(name string, info fs.FileInfo) (*Header, error) {
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s (%s)", ErrNotRegular, name, info.Mode().Type())
	}

	uid, gid := platform.FileOwner(info)
	uname, err := platform.LookupUser(uid)
	if err != nil {
		return nil, fmt.Errorf("%w: uid %d: %w", ErrOwnerLookup, uid, err)
	}
	gname, err := platform.LookupGroup(gid)
	if err != nil {
		return nil, fmt.Errorf("%w: gid %d: %w", ErrGroupLookup, gid, err)
	}
	major, minor := platform.FileDevice(info)

	var h ustar.Header
	if err := h.SetName(name); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if err := h.SetMode(ustar.ModeBits(info.Mode())); err != nil {
		return nil, fmt.Errorf("%s: mode: %w", name, err)
	}
	if err := h.SetUID(uid); err != nil {
		return nil, fmt.Errorf("%s: uid: %w", name, err)
	}
	if err := h.SetGID(gid); err != nil {
		return nil, fmt.Errorf("%s: gid: %w", name, err)
	}
	if err := h.SetSize(uint64(info.Size())); err != nil { //nolint:gosec // regular file sizes are non-negative
		return nil, fmt.Errorf("%s: size: %w", name, err)
	}
	if err := h.SetModTime(info.ModTime()); err != nil {
		return nil, fmt.Errorf("%s: mtime: %w", name, err)
	}
	h.SetTypeflag(ustar.TypeReg)
	h.SetFormat()
	if err := h.SetUname(uname); err != nil {
		return nil, fmt.Errorf("%s: uname: %w", name, err)
	}
	if err := h.SetGname(gname); err != nil {
		return nil, fmt.Errorf("%s: gname: %w", name, err)
	}
	if err := h.SetDevice(major, minor); err != nil {
		return nil, fmt.Errorf("%s: device: %w", name, err)
	}
	h.Seal()
	return &h, nil
}
