package builtins

import (
	"context"
	stdErrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yan-lang/yan-runtime/domain/errors"
)

func echo(ctx context.Context, args []any) (any, error) {
	return args[0], nil
}

func TestNewRegistry_Empty(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)
	require.NotNil(t, reg)
	assert.Empty(t, reg.Names())
}

func TestNewRegistry_WithBuiltin(t *testing.T) {
	reg, err := NewRegistry(
		WithBuiltin(Fixed("echo", 1, echo)),
	)
	require.NoError(t, err)

	assert.True(t, reg.Has("echo"))
	assert.False(t, reg.Has("nonexistent"))
	assert.Equal(t, []string{"echo"}, reg.Names())
}

func TestNewRegistry_DuplicateBuiltin(t *testing.T) {
	_, err := NewRegistry(
		WithBuiltin(Fixed("test", 1, echo)),
		WithBuiltin(Fixed("test", 1, echo)), // duplicate
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate builtin name")
}

func TestNewRegistry_EmptyName(t *testing.T) {
	_, err := NewRegistry(
		WithBuiltin(Fixed("", 1, echo)),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")
}

func TestNewRegistry_NilFunc(t *testing.T) {
	_, err := NewRegistry(
		WithBuiltin(Builtin{Name: "broken"}),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no implementation")
}

func TestRegistry_Invoke(t *testing.T) {
	reg, err := NewRegistry(
		WithBuiltin(Fixed("echo", 1, echo)),
	)
	require.NoError(t, err)

	t.Run("found builtin", func(t *testing.T) {
		got, err := reg.Invoke(context.Background(), "echo", "hello")
		require.NoError(t, err)
		assert.Equal(t, "hello", got)
	})

	t.Run("unknown builtin", func(t *testing.T) {
		_, err := reg.Invoke(context.Background(), "unknown", "test")
		require.Error(t, err)
		assert.True(t, stdErrors.Is(err, errors.ErrUnknownBuiltin))
		assert.Contains(t, err.Error(), "unknown")
	})

	t.Run("too many arguments", func(t *testing.T) {
		_, err := reg.Invoke(context.Background(), "echo", 1, 2)
		var arityErr *errors.ArityError
		require.ErrorAs(t, err, &arityErr)
		assert.Equal(t, "echo", arityErr.Builtin)
		assert.Equal(t, 2, arityErr.Got)
	})

	t.Run("too few arguments", func(t *testing.T) {
		_, err := reg.Invoke(context.Background(), "echo")
		assert.ErrorIs(t, err, errors.ErrArity)
	})
}

func TestRegistry_Invoke_Variadic(t *testing.T) {
	count := func(ctx context.Context, args []any) (any, error) {
		return int64(len(args)), nil
	}
	reg, err := NewRegistry(WithBuiltin(Ranged("count", 1, Variadic, count)))
	require.NoError(t, err)

	got, err := reg.Invoke(context.Background(), "count", 1, 2, 3, 4, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got)

	_, err = reg.Invoke(context.Background(), "count")
	assert.ErrorIs(t, err, errors.ErrArity)
}

func TestRegistry_LenientArity(t *testing.T) {
	reg, err := NewRegistry(
		WithLenientArity(),
		WithBuiltin(Fixed("echo", 1, echo)),
	)
	require.NoError(t, err)

	got, err := reg.Invoke(context.Background(), "echo", "kept", "dropped")
	require.NoError(t, err)
	assert.Equal(t, "kept", got)

	_, err = reg.Invoke(context.Background(), "echo")
	assert.ErrorIs(t, err, errors.ErrArity)
}

func TestRegistry_Names_Sorted(t *testing.T) {
	reg, err := NewRegistry(
		WithBuiltin(Fixed("zebra", 1, echo)),
		WithBuiltin(Fixed("alpha", 1, echo)),
		WithBuiltin(Fixed("middle", 1, echo)),
	)
	require.NoError(t, err)

	names := reg.Names()
	assert.Equal(t, []string{"alpha", "middle", "zebra"}, names)

	names[0] = "mutated"
	assert.Equal(t, "alpha", reg.Names()[0])
}

func TestRegistry_Invoke_SetsCallContext(t *testing.T) {
	var capturedName string
	fn := func(ctx context.Context, args []any) (any, error) {
		if cc, ok := ctx.(CallContext); ok {
			capturedName = cc.FunctionName()
		}
		return nil, nil
	}

	reg, err := NewRegistry(
		WithBuiltin(Fixed("test_func", 0, fn)),
	)
	require.NoError(t, err)

	_, err = reg.Invoke(context.Background(), "test_func")
	require.NoError(t, err)
	assert.Equal(t, "test_func", capturedName)
}

func TestRegistry_Callable(t *testing.T) {
	reg, err := NewRegistry(WithBuiltin(Fixed("echo", 1, echo)))
	require.NoError(t, err)

	fn, ok := reg.Callable(context.Background(), "echo")
	require.True(t, ok)
	got, err := fn(int64(7))
	require.NoError(t, err)
	assert.Equal(t, int64(7), got)

	_, ok = reg.Callable(context.Background(), "missing")
	assert.False(t, ok)
}

func TestRegistry_Arity(t *testing.T) {
	reg, err := NewRegistry(WithBuiltin(Ranged("input", 0, 1, echo)))
	require.NoError(t, err)

	minArgs, maxArgs, ok := reg.Arity("input")
	require.True(t, ok)
	assert.Equal(t, 0, minArgs)
	assert.Equal(t, 1, maxArgs)

	_, _, ok = reg.Arity("missing")
	assert.False(t, ok)
}

func TestWithBundle(t *testing.T) {
	bundle := NewBundle(
		Fixed("a", 1, echo),
		Fixed("b", 1, echo),
	)
	reg, err := NewRegistry(WithBundle(bundle))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, reg.Names())
}

func TestCombine_DuplicateAcrossBundles(t *testing.T) {
	_, err := NewRegistry(WithBundle(Combine(
		NewBundle(Fixed("a", 1, echo)),
		NewBundle(Fixed("a", 1, echo)),
	)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"a"`)
}

func TestCatalogue_NoDuplicates(t *testing.T) {
	reg, err := NewRegistry(WithBundle(Catalogue(IO{})))
	require.NoError(t, err)

	for _, name := range []string{
		"println", "print", "readLine", "input", "typeof", "len", "range",
		"parseInt", "parseFloat", "str", "panic", "eval", "sin", "cos", "tan",
		"log", "ln", "sqrt", "abs", "set", "append", "concat", "remove",
		"addressOf", "del", "recover", "keys", "values", "isInteger", "isFloating",
	} {
		assert.True(t, reg.Has(name), name)
	}
}
