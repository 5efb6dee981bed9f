package builtins

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCallContext_Values(t *testing.T) {
	cc := NewCallContext(context.Background(), "len")

	_, ok := cc.GetValue("missing")
	assert.False(t, ok)

	cc.SetValue("key", 42)
	v, ok := cc.GetValue("key")
	assert.True(t, ok)
	assert.Equal(t, 42, v)
	assert.Equal(t, "len", cc.FunctionName())
}

func TestCallContextFrom(t *testing.T) {
	outer := NewCallContext(context.Background(), "outer")

	assert.Same(t, outer, CallContextFrom(outer, "outer"))

	nested := CallContextFrom(outer, "inner")
	assert.NotSame(t, outer, nested)
	assert.Equal(t, "inner", nested.FunctionName())
}

func TestFunctionName_Unknown(t *testing.T) {
	assert.Equal(t, "unknown", FunctionName(context.Background()))
}
