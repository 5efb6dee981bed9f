//go:build !(linux || darwin || freebsd)

package hostio

import (
	"github.com/yan-lang/yan-runtime/domain/errors"
)

// FreeSpace is not available on this platform.
func FreeSpace(path string) (int64, error) {
	return 0, &errors.NotImplementedError{Operation: "fs.GetFreeSpace"}
}

// HardLinkCount is not available on this platform.
func HardLinkCount(path string) (int64, error) {
	return 0, &errors.NotImplementedError{Operation: "fs.GetHardLinksCount"}
}
