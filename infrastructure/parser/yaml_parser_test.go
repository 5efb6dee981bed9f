package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYamlDocumentParser_Parse(t *testing.T) {
	p := NewYamlDocumentParser()

	doc, err := p.Parse([]byte("log:\n  level: debug\nmodule_paths: [a, b]\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"level": "debug"}, doc["log"])
	assert.Equal(t, []any{"a", "b"}, doc["module_paths"])
}

func TestYamlDocumentParser_JSON(t *testing.T) {
	doc, err := NewYamlDocumentParser().Parse([]byte(`{"strict_arity": false}`))
	require.NoError(t, err)
	assert.Equal(t, false, doc["strict_arity"])
}

func TestYamlDocumentParser_Empty(t *testing.T) {
	doc, err := NewYamlDocumentParser().Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, doc)
}

func TestYamlDocumentParser_Invalid(t *testing.T) {
	_, err := NewYamlDocumentParser().Parse([]byte("- just\n- a list\n"))
	require.Error(t, err)
}
