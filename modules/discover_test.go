package modules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscover(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	for _, f := range []string{
		filepath.Join(a, "geometry.yaml"),
		filepath.Join(a, "colors.json"),
		filepath.Join(a, "notes.txt"),
		filepath.Join(a, "bad.name.yaml"),
		filepath.Join(b, "geometry.yml"),
		filepath.Join(b, "audio.wasm"),
	} {
		require.NoError(t, os.WriteFile(f, nil, 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(a, "dir.yaml"), 0o755))

	names, err := Discover([]string{a, b, filepath.Join(a, "missing")}, DataExtensions...)
	require.NoError(t, err)
	assert.Equal(t, []string{"colors", "geometry"}, names)

	names, err = Discover([]string{a, b}, ".wasm")
	require.NoError(t, err)
	assert.Equal(t, []string{"audio"}, names)
}
