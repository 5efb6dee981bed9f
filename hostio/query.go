package hostio

import (
	stdErrors "errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"time"

	"github.com/yan-lang/yan-runtime/domain/errors"
)

// File types reported by FileType.
const (
	TypeFile      = "file"
	TypeDirectory = "directory"
	TypeSymlink   = "symlink"
	TypeOther     = "other"
)

// Exists reports whether path names an existing file system entry.
func Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return true, nil
	case stdErrors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, queryError("stat", path, err)
	}
}

// FileSize returns the size of path in bytes.
func FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, queryError("stat", path, err)
	}
	return info.Size(), nil
}

// FilePermissions returns the permission bits of path as a four-digit octal
// string, for example "0644".
func FilePermissions(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", queryError("stat", path, err)
	}
	return fmt.Sprintf("%04o", info.Mode().Perm()), nil
}

// FileType classifies path without following a final symlink.
func FileType(path string) (string, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return "", queryError("stat", path, err)
	}
	mode := info.Mode()
	switch {
	case mode.IsRegular():
		return TypeFile, nil
	case mode.IsDir():
		return TypeDirectory, nil
	case mode&fs.ModeSymlink != 0:
		return TypeSymlink, nil
	default:
		return TypeOther, nil
	}
}

// ListDirectory returns the entry names of dir in sorted order.
func ListDirectory(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, queryError("readdir", dir, err)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	sort.Strings(names)
	return names, nil
}

// LastWriteTime returns the modification time of path in local time,
// formatted like ctime(3): "Mon Jan  2 15:04:05 2006".
func LastWriteTime(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", queryError("stat", path, err)
	}
	return info.ModTime().Local().Format(time.ANSIC), nil
}

func queryError(op, path string, err error) error {
	return &errors.IOError{Operation: op, Path: path, Err: unwrapPathError(err)}
}
