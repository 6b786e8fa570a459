// Package ustar encodes and decodes POSIX ustar header records.
//
// A header is a single 512-byte block. Every field lives at a fixed offset
// and numeric fields are zero-padded octal ASCII terminated by a NUL inside
// their width:
//
//	offset  width  field
//	     0    100  name      NUL-padded
//	   100      8  mode      7 octal digits + NUL
//	   108      8  uid       7 octal digits + NUL
//	   116      8  gid       7 octal digits + NUL
//	   124     12  size      11 octal digits + NUL
//	   136     12  mtime     11 octal digits + NUL
//	   148      8  chksum    6 octal digits + NUL + space
//	   156      1  typeflag
//	   157    100  linkname  unused
//	   257      6  magic     "ustar\x00"
//	   263      2  version   "00", not NUL-terminated
//	   265     32  uname     NUL-padded
//	   297     32  gname     NUL-padded
//	   329      8  devmajor  7 octal digits + NUL
//	   337      8  devminor  7 octal digits + NUL
//	   345    155  prefix    unused
//	   500     12  padding
package ustar

import (
	"bytes"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/meigma/minitar/internal/tartype"
)

// BlockSize is the size of every header and data block.
const BlockSize = 512

// Field offsets and widths.
const (
	nameOff, nameLen         = 0, 100
	modeOff, modeLen         = 100, 8
	uidOff, uidLen           = 108, 8
	gidOff, gidLen           = 116, 8
	sizeOff, sizeLen         = 124, 12
	mtimeOff, mtimeLen       = 136, 12
	chksumOff, chksumLen     = 148, 8
	typeflagOff              = 156
	magicOff, magicLen       = 257, 6
	versionOff, versionLen   = 263, 2
	unameOff, unameLen       = 265, 32
	gnameOff, gnameLen       = 297, 32
	devmajorOff, devmajorLen = 329, 8
	devminorOff, devminorLen = 337, 8
)

// Exported field limits.
const (
	// NameSize is the maximum length of an entry name in bytes.
	NameSize = nameLen

	// OwnerNameSize is the maximum length of uname and gname in bytes.
	OwnerNameSize = unameLen
)

// Type flags.
const (
	TypeReg = '0'
	TypeDir = '5'
)

// Format identifiers.
const (
	Magic   = "ustar\x00"
	Version = "00"
)

// Re-export sentinel errors used by the codec.
var (
	ErrFieldOverflow = tartype.ErrFieldOverflow
	ErrNameTooLong   = tartype.ErrNameTooLong
	ErrParse         = tartype.ErrParse
)

// Header is a raw header record.
type Header [BlockSize]byte

// SetName stores name. Names of exactly NameSize bytes are stored without a
// terminating NUL.
func (h *Header) SetName(name string) error {
	return setString(h[nameOff:nameOff+nameLen], name, ErrNameTooLong)
}

// Name returns the stored name.
func (h *Header) Name() string {
	return cString(h[nameOff : nameOff+nameLen])
}

// SetMode stores the permission bits.
func (h *Header) SetMode(mode uint32) error {
	return FormatOctal(h[modeOff:modeOff+modeLen], uint64(mode&0o7777))
}

// Mode returns the stored permission bits.
func (h *Header) Mode() (uint32, error) {
	v, err := ParseOctal(h[modeOff : modeOff+modeLen])
	return uint32(v), err //nolint:gosec // 7 octal digits fit uint32
}

// SetUID stores the owner id.
func (h *Header) SetUID(uid uint32) error {
	return FormatOctal(h[uidOff:uidOff+uidLen], uint64(uid))
}

// UID returns the stored owner id.
func (h *Header) UID() (uint32, error) {
	v, err := ParseOctal(h[uidOff : uidOff+uidLen])
	return uint32(v), err //nolint:gosec // 7 octal digits fit uint32
}

// SetGID stores the group id.
func (h *Header) SetGID(gid uint32) error {
	return FormatOctal(h[gidOff:gidOff+gidLen], uint64(gid))
}

// GID returns the stored group id.
func (h *Header) GID() (uint32, error) {
	v, err := ParseOctal(h[gidOff : gidOff+gidLen])
	return uint32(v), err //nolint:gosec // 7 octal digits fit uint32
}

// SetSize stores the content length.
func (h *Header) SetSize(size uint64) error {
	return FormatOctal(h[sizeOff:sizeOff+sizeLen], size)
}

// Size returns the stored content length.
func (h *Header) Size() (uint64, error) {
	return ParseOctal(h[sizeOff : sizeOff+sizeLen])
}

// SetModTime stores t as epoch seconds. Times before the epoch are stored as zero.
func (h *Header) SetModTime(t time.Time) error {
	sec := max(t.Unix(), 0)
	return FormatOctal(h[mtimeOff:mtimeOff+mtimeLen], uint64(sec)) //nolint:gosec // clamped above
}

// ModTime returns the stored modification time.
func (h *Header) ModTime() (time.Time, error) {
	v, err := ParseOctal(h[mtimeOff : mtimeOff+mtimeLen])
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(v), 0), nil //nolint:gosec // 11 octal digits fit int64
}

// SetTypeflag stores the entry kind.
func (h *Header) SetTypeflag(flag byte) {
	h[typeflagOff] = flag
}

// Typeflag returns the entry kind.
func (h *Header) Typeflag() byte {
	return h[typeflagOff]
}

// SetFormat stores the ustar magic and version.
func (h *Header) SetFormat() {
	copy(h[magicOff:magicOff+magicLen], Magic)
	copy(h[versionOff:versionOff+versionLen], Version)
}

// IsUstar reports whether the magic and version identify a ustar record.
func (h *Header) IsUstar() bool {
	return string(h[magicOff:magicOff+magicLen]) == Magic &&
		string(h[versionOff:versionOff+versionLen]) == Version
}

// SetUname stores the owner name.
func (h *Header) SetUname(name string) error {
	return setString(h[unameOff:unameOff+unameLen], name, ErrNameTooLong)
}

// Uname returns the owner name.
func (h *Header) Uname() string {
	return cString(h[unameOff : unameOff+unameLen])
}

// SetGname stores the group name.
func (h *Header) SetGname(name string) error {
	return setString(h[gnameOff:gnameOff+gnameLen], name, ErrNameTooLong)
}

// Gname returns the group name.
func (h *Header) Gname() string {
	return cString(h[gnameOff : gnameOff+gnameLen])
}

// SetDevice stores the device numbers.
func (h *Header) SetDevice(major, minor uint32) error {
	if err := FormatOctal(h[devmajorOff:devmajorOff+devmajorLen], uint64(major)); err != nil {
		return err
	}
	return FormatOctal(h[devminorOff:devminorOff+devminorLen], uint64(minor))
}

// Device returns the stored device numbers.
func (h *Header) Device() (major, minor uint32, err error) {
	ma, err := ParseOctal(h[devmajorOff : devmajorOff+devmajorLen])
	if err != nil {
		return 0, 0, err
	}
	mi, err := ParseOctal(h[devminorOff : devminorOff+devminorLen])
	if err != nil {
		return 0, 0, err
	}
	return uint32(ma), uint32(mi), nil //nolint:gosec // 7 octal digits fit uint32
}

// Checksum computes the header checksum: the unsigned sum of every byte
// with the checksum field read as ASCII spaces.
func (h *Header) Checksum() uint32 {
	var sum uint32
	for i, b := range h {
		if i >= chksumOff && i < chksumOff+chksumLen {
			b = ' '
		}
		sum += uint32(b)
	}
	return sum
}

// Seal computes the checksum and stores it as six octal digits, a NUL
// and a space. Seal must be called after every other field is set.
func (h *Header) Seal() {
	sum := h.Checksum()
	field := h[chksumOff : chksumOff+chksumLen]
	// The largest possible sum (512*255) needs six octal digits.
	copy(field, fmt.Sprintf("%06o", sum))
	field[6] = 0
	field[7] = ' '
}

// StoredChecksum parses the checksum field.
func (h *Header) StoredChecksum() (uint32, error) {
	v, err := ParseOctal(h[chksumOff : chksumOff+chksumLen])
	return uint32(v), err //nolint:gosec // 6 octal digits fit uint32
}

// VerifyChecksum reports whether the stored checksum matches the record.
func (h *Header) VerifyChecksum() bool {
	stored, err := h.StoredChecksum()
	return err == nil && stored == h.Checksum()
}

// IsZero reports whether every byte of the record is zero.
func (h *Header) IsZero() bool {
	return *h == Header{}
}

// FormatOctal writes v into field as zero-padded octal digits filling all
// but the last byte, which is set to NUL.
func FormatOctal(field []byte, v uint64) error {
	digits := len(field) - 1
	s := strconv.FormatUint(v, 8)
	if len(s) > digits {
		return fmt.Errorf("%w: %d needs %d octal digits, have %d", ErrFieldOverflow, v, len(s), digits)
	}
	for i := range digits - len(s) {
		field[i] = '0'
	}
	copy(field[digits-len(s):], s)
	field[digits] = 0
	return nil
}

// ParseOctal parses an octal field. Leading spaces and trailing NULs or
// spaces are ignored. An empty field is a parse error.
func ParseOctal(field []byte) (uint64, error) {
	s := strings.TrimLeft(string(field), " ")
	if i := strings.IndexAny(s, "\x00 "); i >= 0 {
		rest := strings.Trim(s[i:], "\x00 ")
		if rest != "" {
			return 0, fmt.Errorf("%w: %q", ErrParse, field)
		}
		s = s[:i]
	}
	if s == "" {
		return 0, fmt.Errorf("%w: empty field", ErrParse)
	}
	v, err := strconv.ParseUint(s, 8, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrParse, s)
	}
	return v, nil
}

func setString(field []byte, s string, tooLong error) error {
	if len(s) > len(field) {
		return fmt.Errorf("%w: %d bytes, limit %d", tooLong, len(s), len(field))
	}
	n := copy(field, s)
	clear(field[n:])
	return nil
}

func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// ModeBits converts m to the header's mode encoding: the permission bits
// plus setuid (04000), setgid (02000) and sticky (01000).
func ModeBits(m fs.FileMode) uint32 {
	bits := uint32(m.Perm())
	if m&fs.ModeSetuid != 0 {
		bits |= 0o4000
	}
	if m&fs.ModeSetgid != 0 {
		bits |= 0o2000
	}
	if m&fs.ModeSticky != 0 {
		bits |= 0o1000
	}
	return bits
}

// FileMode converts a header mode value back to an fs.FileMode.
func FileMode(bits uint32) fs.FileMode {
	m := fs.FileMode(bits & 0o777)
	if bits&0o4000 != 0 {
		m |= fs.ModeSetuid
	}
	if bits&0o2000 != 0 {
		m |= fs.ModeSetgid
	}
	if bits&0o1000 != 0 {
		m |= fs.ModeSticky
	}
	return m
}
