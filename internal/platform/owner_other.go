//go:build !(darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris)

package platform

import "io/fs"

// FileOwner returns zero UID/GID on systems without numeric owners.
func FileOwner(info fs.FileInfo) (uid, gid uint32) {
	return 0, 0
}

// FileDevice returns zero device numbers on systems without them.
func FileDevice(info fs.FileInfo) (major, minor uint32) {
	return 0, 0
}

// LookupUser returns an empty name; there is no user database to consult.
func LookupUser(uint32) (string, error) {
	return "", nil
}

// LookupGroup returns an empty name; there is no group database to consult.
func LookupGroup(uint32) (string, error) {
	return "", nil
}
