package modules

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yan-lang/yan-runtime/domain/errors"
	"github.com/yan-lang/yan-runtime/domain/ports"
	"github.com/yan-lang/yan-runtime/object"
)

func symbolMap(mod ports.HostModule) map[string]any {
	m := map[string]any{}
	for _, s := range mod.Symbols() {
		m[s.Name] = s.Value
	}
	return m
}

func TestDecodeModule(t *testing.T) {
	src := `
version: 3
ratio: 0.5
name: colors
enabled: true
nothing: null
palette:
  red: "#f00"
  green: "#0f0"
tags: [warm, cool]
_hidden: secret
`
	mod, err := DecodeModule("colors", "colors.yaml", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, "colors", mod.Name())

	var names []string
	for _, s := range mod.Symbols() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"version", "ratio", "name", "enabled", "nothing", "palette", "tags", "_hidden"}, names)

	syms := symbolMap(mod)
	assert.Equal(t, int64(3), syms["version"])
	assert.Equal(t, 0.5, syms["ratio"])
	assert.Equal(t, "colors", syms["name"])
	assert.Equal(t, true, syms["enabled"])
	assert.Nil(t, syms["nothing"])

	palette, ok := syms["palette"].(*object.DynamicObject)
	require.True(t, ok)
	assert.Equal(t, []string{"red", "green"}, palette.Keys())

	tags, ok := syms["tags"].(*object.List)
	require.True(t, ok)
	assert.Equal(t, []any{"warm", "cool"}, tags.Items())
}

func TestDecodeModule_JSON(t *testing.T) {
	mod, err := DecodeModule("cfg", "cfg.json", []byte(`{"b": [1, 2], "a": {"x": 1.5}}`))
	require.NoError(t, err)

	syms := symbolMap(mod)
	assert.Equal(t, []any{int64(1), int64(2)}, syms["b"].(*object.List).Items())
	x, err := syms["a"].(*object.DynamicObject).Get("x")
	require.NoError(t, err)
	assert.Equal(t, 1.5, x)
}

func TestDecodeModule_Anchors(t *testing.T) {
	mod, err := DecodeModule("a", "a.yaml", []byte("base: &b [1]\ncopy: *b\n"))
	require.NoError(t, err)
	syms := symbolMap(mod)
	assert.Equal(t, []any{int64(1)}, syms["copy"].(*object.List).Items())
}

func TestDecodeModule_Errors(t *testing.T) {
	_, err := DecodeModule("bad", "bad.yaml", []byte("- a\n- b\n"))
	assert.ErrorIs(t, err, errors.ErrParseFailure)

	_, err = DecodeModule("bad", "bad.yaml", []byte("a: [unclosed\n"))
	assert.ErrorIs(t, err, errors.ErrParseFailure)

	mod, err := DecodeModule("empty", "empty.yaml", nil)
	require.NoError(t, err)
	assert.Empty(t, mod.Symbols())
}

func TestDataFinder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(second, "greet.yml"), []byte("hello: world\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(first, "greet.json"), []byte(`{"hello": "json"}`), 0o644))

	f := NewDataFinder(first, second)
	assert.Equal(t, "data", f.Kind())

	mod, err := f.Find(context.Background(), "greet")
	require.NoError(t, err)
	assert.Equal(t, "json", symbolMap(mod)["hello"])

	_, err = f.Find(context.Background(), "missing")
	assert.ErrorIs(t, err, errors.ErrModuleNotFound)
}
