package modules

import (
	stdErrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
)

// Discover lists the module names a finder with the given extensions could
// load from paths. Missing directories are skipped. Names are sorted and
// unique.
func Discover(paths []string, extensions ...string) ([]string, error) {
	seen := make(map[string]struct{})
	for _, dir := range paths {
		entries, err := os.ReadDir(dir)
		if stdErrors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			ext := filepath.Ext(e.Name())
			if !slices.Contains(extensions, ext) {
				continue
			}
			name := strings.TrimSuffix(e.Name(), ext)
			ref, err := ParseReference(name)
			if err != nil || ref.Attr != "" || ref.Native {
				continue
			}
			seen[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}
