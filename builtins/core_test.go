package builtins

import (
	"bytes"
	"context"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yan-lang/yan-runtime/domain/errors"
	"github.com/yan-lang/yan-runtime/object"
)

type scriptedReader struct {
	lines   []string
	prompts []string
}

func (r *scriptedReader) ReadLine(prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func newCatalogue(t *testing.T, in *scriptedReader) (*Registry, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	reg, err := NewRegistry(
		WithMiddleware(PanicRecoveryMiddleware()),
		WithBundle(Catalogue(IO{Out: &out, In: in})),
	)
	require.NoError(t, err)
	return reg, &out
}

func invoke(t *testing.T, reg *Registry, name string, args ...any) any {
	t.Helper()
	v, err := reg.Invoke(context.Background(), name, args...)
	require.NoError(t, err)
	return v
}

func TestPrintln(t *testing.T) {
	reg, out := newCatalogue(t, &scriptedReader{})

	invoke(t, reg, "println", "hello")
	invoke(t, reg, "println", int64(42))
	invoke(t, reg, "println", 2.0)
	invoke(t, reg, "print", object.NewList(int64(1), "a"))

	assert.Equal(t, "hello\n42\n2.0\n[1, 'a']", out.String())
}

func TestReadLineAndInput(t *testing.T) {
	in := &scriptedReader{lines: []string{"first", "second"}}
	reg, _ := newCatalogue(t, in)

	assert.Equal(t, "first", invoke(t, reg, "readLine"))
	assert.Equal(t, "second", invoke(t, reg, "input", "name? "))
	assert.Equal(t, []string{"", "name? "}, in.prompts)

	_, err := reg.Invoke(context.Background(), "input")
	assert.ErrorIs(t, err, io.EOF)
}

func TestTypeof(t *testing.T) {
	reg, _ := newCatalogue(t, &scriptedReader{})

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"null", nil, "Null"},
		{"integer", int64(1), "Integer"},
		{"float", 1.5, "Float"},
		{"string", "s", "String"},
		{"bool", true, "Boolean"},
		{"list", object.NewList(), "List"},
		{"object", object.New(), "Object"},
		{"class", object.FromPairs(object.ClassKey, "P", object.InitKey, object.Callable(func(args ...any) (any, error) { return nil, nil })), "ClassObject"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, invoke(t, reg, "typeof", tt.value))
		})
	}
}

func TestLen(t *testing.T) {
	reg, _ := newCatalogue(t, &scriptedReader{})

	assert.Equal(t, int64(5), invoke(t, reg, "len", "héllo"))
	assert.Equal(t, int64(2), invoke(t, reg, "len", object.NewList(1, 2)))
	assert.Equal(t, int64(1), invoke(t, reg, "len", object.FromPairs("a", 1)))
	assert.Equal(t, int64(0), invoke(t, reg, "len", map[string]any{}))

	_, err := reg.Invoke(context.Background(), "len", int64(3))
	var typeErr *errors.ArgumentTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "len", typeErr.Builtin)
	assert.Equal(t, 1, typeErr.Position)
	assert.Equal(t, "Integer", typeErr.Got)
}

func TestRange(t *testing.T) {
	reg, _ := newCatalogue(t, &scriptedReader{})

	got := invoke(t, reg, "range", int64(0), int64(4)).(*object.List)
	assert.Equal(t, []any{int64(0), int64(1), int64(2), int64(3)}, got.Items())

	got = invoke(t, reg, "range", int64(5), int64(0), int64(-2)).(*object.List)
	assert.Equal(t, []any{int64(5), int64(3), int64(1)}, got.Items())

	got = invoke(t, reg, "range", int64(3), int64(3)).(*object.List)
	assert.Equal(t, 0, got.Len())

	_, err := reg.Invoke(context.Background(), "range", int64(0), int64(3), int64(0))
	assert.ErrorIs(t, err, errors.ErrArgumentType)
}

func TestRange_Int64Bounds(t *testing.T) {
	reg, _ := newCatalogue(t, &scriptedReader{})

	got := invoke(t, reg, "range", int64(math.MaxInt64-1), int64(math.MaxInt64), int64(5)).(*object.List)
	assert.Equal(t, []any{int64(math.MaxInt64 - 1)}, got.Items())

	got = invoke(t, reg, "range", int64(math.MinInt64+1), int64(math.MinInt64), int64(-3)).(*object.List)
	assert.Equal(t, []any{int64(math.MinInt64 + 1)}, got.Items())

	got = invoke(t, reg, "range", int64(math.MinInt64), int64(math.MaxInt64), int64(math.MaxInt64)).(*object.List)
	assert.Equal(t, []any{int64(math.MinInt64), int64(-1), int64(math.MaxInt64 - 1)}, got.Items())

	got = invoke(t, reg, "range", int64(10), int64(-10), int64(math.MinInt64)).(*object.List)
	assert.Equal(t, []any{int64(10)}, got.Items())
}

func TestRange_TooLong(t *testing.T) {
	reg, _ := newCatalogue(t, &scriptedReader{})

	_, err := reg.Invoke(context.Background(), "range", int64(0), int64(math.MaxInt64))
	var typeErr *errors.ArgumentTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "range", typeErr.Builtin)

	_, err = reg.Invoke(context.Background(), "range", int64(0), int64(MaxRangeLen)*3+1, int64(3))
	assert.ErrorIs(t, err, errors.ErrArgumentType)
}

func TestParseNumbers(t *testing.T) {
	reg, _ := newCatalogue(t, &scriptedReader{})

	assert.Equal(t, int64(-12), invoke(t, reg, "parseInt", " -12 "))
	assert.Equal(t, 2.5, invoke(t, reg, "parseFloat", "2.5"))

	_, err := reg.Invoke(context.Background(), "parseInt", "12abc")
	var parseErr *errors.ParseFailureError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "12abc", parseErr.Input)
	assert.Equal(t, "int", parseErr.Kind)

	_, err = reg.Invoke(context.Background(), "parseFloat", "x")
	assert.ErrorIs(t, err, errors.ErrParseFailure)

	_, err = reg.Invoke(context.Background(), "parseInt", int64(1))
	assert.ErrorIs(t, err, errors.ErrArgumentType)
}

func TestStrAndPanic(t *testing.T) {
	reg, _ := newCatalogue(t, &scriptedReader{})

	assert.Equal(t, "{x: 1}", invoke(t, reg, "str", object.FromPairs("x", int64(1))))

	_, err := reg.Invoke(context.Background(), "panic", "bad state")
	var panicErr *errors.GuestPanicError
	require.ErrorAs(t, err, &panicErr)
	assert.Equal(t, "panic: bad state", panicErr.Error())
}

func TestUnsupportedBuiltins(t *testing.T) {
	reg, _ := newCatalogue(t, &scriptedReader{})

	for _, call := range []struct {
		name string
		args []any
	}{
		{"eval", []any{"1 + 1"}},
		{"del", []any{"x"}},
		{"recover", nil},
		{"recover", []any{"x"}},
	} {
		_, err := reg.Invoke(context.Background(), call.name, call.args...)
		assert.ErrorIs(t, err, errors.ErrNotImplemented, call.name)
	}
}

func TestAddressOf(t *testing.T) {
	reg, _ := newCatalogue(t, &scriptedReader{})
	a := object.New()
	b := object.New()

	addrA := invoke(t, reg, "addressOf", a)
	assert.Equal(t, addrA, invoke(t, reg, "addressOf", a))
	assert.NotEqual(t, addrA, invoke(t, reg, "addressOf", b))

	_, err := reg.Invoke(context.Background(), "addressOf", int64(1))
	assert.ErrorIs(t, err, errors.ErrArgumentType)
}

func TestKeysValues(t *testing.T) {
	reg, _ := newCatalogue(t, &scriptedReader{})
	o := object.FromPairs("b", int64(2), "a", int64(1))

	assert.Equal(t, []any{"b", "a"}, invoke(t, reg, "keys", o).(*object.List).Items())
	assert.Equal(t, []any{int64(2), int64(1)}, invoke(t, reg, "values", o).(*object.List).Items())

	m := map[string]any{"z": 1, "y": 2}
	assert.Equal(t, []any{"y", "z"}, invoke(t, reg, "keys", m).(*object.List).Items())
	assert.Equal(t, []any{2, 1}, invoke(t, reg, "values", m).(*object.List).Items())

	_, err := reg.Invoke(context.Background(), "keys", "str")
	assert.ErrorIs(t, err, errors.ErrArgumentType)
}

func TestNumericPredicates(t *testing.T) {
	reg, _ := newCatalogue(t, &scriptedReader{})

	assert.Equal(t, true, invoke(t, reg, "isInteger", int64(3)))
	assert.Equal(t, false, invoke(t, reg, "isInteger", 3.0))
	assert.Equal(t, true, invoke(t, reg, "isFloating", 3.0))
	assert.Equal(t, false, invoke(t, reg, "isFloating", "3.0"))
}

func TestMathBundle(t *testing.T) {
	reg, _ := newCatalogue(t, &scriptedReader{})

	assert.InDelta(t, 1.0, invoke(t, reg, "sin", math.Pi/2), 1e-12)
	assert.InDelta(t, 1.0, invoke(t, reg, "cos", int64(0)), 1e-12)
	assert.InDelta(t, 0.0, invoke(t, reg, "tan", 0.0), 1e-12)
	assert.InDelta(t, 3.0, invoke(t, reg, "sqrt", int64(9)), 1e-12)
	assert.InDelta(t, 1.0, invoke(t, reg, "ln", math.E), 1e-12)
	assert.Equal(t, invoke(t, reg, "ln", 10.0), invoke(t, reg, "log", 10.0))

	assert.True(t, math.IsNaN(invoke(t, reg, "sqrt", -1.0).(float64)))

	assert.Equal(t, int64(4), invoke(t, reg, "abs", int64(-4)))
	assert.Equal(t, 4.5, invoke(t, reg, "abs", -4.5))

	_, err := reg.Invoke(context.Background(), "sin", "x")
	assert.ErrorIs(t, err, errors.ErrArgumentType)
}

func TestListBundle(t *testing.T) {
	reg, _ := newCatalogue(t, &scriptedReader{})
	l := object.NewList(int64(1), int64(2))

	assert.Nil(t, invoke(t, reg, "append", l, int64(3)))
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, l.Items())

	invoke(t, reg, "set", l, int64(0), "first")
	assert.Equal(t, []any{"first", int64(2), int64(3)}, l.Items())

	invoke(t, reg, "remove", l, int64(1))
	assert.Equal(t, []any{"first", int64(3)}, l.Items())

	invoke(t, reg, "concat", l, l)
	assert.Equal(t, []any{"first", int64(3), "first", int64(3)}, l.Items())

	_, err := reg.Invoke(context.Background(), "set", l, int64(10), 0)
	var indexErr *object.IndexError
	require.ErrorAs(t, err, &indexErr)

	_, err = reg.Invoke(context.Background(), "append", "not a list", 1)
	assert.ErrorIs(t, err, errors.ErrArgumentType)
}
