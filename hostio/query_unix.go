//go:build linux || darwin || freebsd

package hostio

import (
	"golang.org/x/sys/unix"
)

// FreeSpace returns the number of free bytes on the file system holding path.
func FreeSpace(path string) (int64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, queryError("statfs", path, err)
	}
	return int64(uint64(st.Bfree) * uint64(st.Bsize)), nil
}

// HardLinkCount returns the number of hard links to path.
func HardLinkCount(path string) (int64, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, queryError("stat", path, err)
	}
	return int64(st.Nlink), nil
}
