package stdlib

import (
	"context"
	"strings"

	"github.com/yan-lang/yan-runtime/builtins"
	"github.com/yan-lang/yan-runtime/domain/errors"
	"github.com/yan-lang/yan-runtime/object"
)

// stringFormat implements Format(fmt, args). Placeholders:
//
//	%d  integer
//	%f  float
//	%l  list
//	%m  mapping (object or dictionary)
//	%s  string
//	%x  any value
//	%%  a literal percent sign
//
// Every placeholder must consume exactly one argument of its kind, and every
// argument must be consumed.
func stringFormat(ctx context.Context, args []any) (any, error) {
	format, err := builtins.String(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	values, err := formatArgs(ctx, args)
	if err != nil {
		return nil, err
	}
	return Format(format, values)
}

func formatArgs(ctx context.Context, args []any) ([]any, error) {
	switch v := args[1].(type) {
	case *object.List:
		if v != nil {
			return v.Items(), nil
		}
	case []any:
		return v, nil
	}
	return nil, &errors.ArgumentTypeError{
		Builtin:  builtins.FunctionName(ctx),
		Position: 2,
		Expected: "list",
		Got:      object.TypeName(args[1]),
	}
}

// Format renders format with values using the string module's placeholder
// rules.
func Format(format string, values []any) (string, error) {
	var sb strings.Builder
	next := 0
	pending := false

	for _, c := range format {
		if !pending {
			if c == '%' {
				pending = true
			} else {
				sb.WriteRune(c)
			}
			continue
		}
		pending = false

		if c == '%' {
			sb.WriteByte('%')
			continue
		}
		if !strings.ContainsRune("dflmsx", c) {
			return "", &errors.FormatError{Format: format, Reason: "unknown placeholder %" + string(c)}
		}
		if next >= len(values) {
			return "", &errors.FormatError{Format: format, Reason: "not enough arguments for placeholders"}
		}
		v := values[next]
		next++

		if expected, ok := placeholderAccepts(c, v); !ok {
			return "", &errors.FormatError{
				Format:   format,
				Position: next,
				Reason:   "placeholder %" + string(c) + " requires " + expected + ", got " + object.TypeName(v),
			}
		}
		sb.WriteString(object.Repr(v))
	}

	if pending {
		return "", &errors.FormatError{Format: format, Reason: "dangling % at end of format"}
	}
	if next < len(values) {
		return "", &errors.FormatError{Format: format, Reason: "trailing format arguments"}
	}
	return sb.String(), nil
}

// placeholderAccepts reports whether placeholder c takes v, and what it
// expects otherwise.
func placeholderAccepts(c rune, v any) (string, bool) {
	switch c {
	case 'd':
		return "an integer", object.IsInteger(v)
	case 'f':
		return "a float", object.IsFloating(v)
	case 'l':
		switch v.(type) {
		case *object.List, []any, []string:
			return "", true
		}
		return "a list", false
	case 'm':
		switch v.(type) {
		case *object.DynamicObject, map[string]any:
			return "", true
		}
		return "a mapping", false
	case 's':
		_, ok := v.(string)
		return "a string", ok
	default:
		return "", true
	}
}
