//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package platform

import (
	"io/fs"
	"syscall"

	"github.com/moby/sys/user"
	"golang.org/x/sys/unix"
)

// FileOwner extracts UID and GID from file info on Unix systems.
func FileOwner(info fs.FileInfo) (uid, gid uint32) {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return stat.Uid, stat.Gid
	}
	return 0, 0
}

// FileDevice returns the major and minor numbers of the device holding
// the file.
func FileDevice(info fs.FileInfo) (major, minor uint32) {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		dev := uint64(stat.Dev) //nolint:gosec,unconvert // Dev is signed on some platforms
		return unix.Major(dev), unix.Minor(dev)
	}
	return 0, 0
}

// LookupUser returns the user name for uid.
func LookupUser(uid uint32) (string, error) {
	u, err := user.LookupUid(int(uid))
	if err != nil {
		return "", err
	}
	return u.Name, nil
}

// LookupGroup returns the group name for gid.
func LookupGroup(gid uint32) (string, error) {
	g, err := user.LookupGid(int(gid))
	if err != nil {
		return "", err
	}
	return g.Name, nil
}
