package builtins

import (
	"context"

	"github.com/yan-lang/yan-runtime/domain/errors"
	"github.com/yan-lang/yan-runtime/object"
)

// Int extracts argument i as int64. Integral float64 values are accepted,
// mirroring how decoded JSON/YAML numbers arrive.
func Int(ctx context.Context, args []any, i int) (int64, error) {
	n, ok := object.ToInt64(args[i])
	if !ok {
		return 0, typeError(ctx, i, "integer", args[i])
	}
	return n, nil
}

// Float extracts argument i as float64, accepting any numeric kind.
func Float(ctx context.Context, args []any, i int) (float64, error) {
	f, ok := object.ToFloat64(args[i])
	if !ok {
		return 0, typeError(ctx, i, "number", args[i])
	}
	return f, nil
}

// Number extracts argument i as int64 or float64, keeping its kind.
func Number(ctx context.Context, args []any, i int) (any, error) {
	if object.IsInteger(args[i]) {
		return Int(ctx, args, i)
	}
	return Float(ctx, args, i)
}

// String extracts argument i as a string.
func String(ctx context.Context, args []any, i int) (string, error) {
	s, ok := args[i].(string)
	if !ok {
		return "", typeError(ctx, i, "string", args[i])
	}
	return s, nil
}

// ListArg extracts argument i as a guest list.
func ListArg(ctx context.Context, args []any, i int) (*object.List, error) {
	l, ok := args[i].(*object.List)
	if !ok || l == nil {
		return nil, typeError(ctx, i, "list", args[i])
	}
	return l, nil
}

// OptionalString extracts argument i as a string, or returns def when the
// argument was not supplied.
func OptionalString(ctx context.Context, args []any, i int, def string) (string, error) {
	if i >= len(args) {
		return def, nil
	}
	return String(ctx, args, i)
}

// OptionalInt extracts argument i as int64, or returns def when the argument
// was not supplied.
func OptionalInt(ctx context.Context, args []any, i int, def int64) (int64, error) {
	if i >= len(args) {
		return def, nil
	}
	return Int(ctx, args, i)
}

func typeError(ctx context.Context, i int, expected string, got any) error {
	return &errors.ArgumentTypeError{
		Builtin:  FunctionName(ctx),
		Position: i + 1,
		Expected: expected,
		Got:      object.TypeName(got),
	}
}
