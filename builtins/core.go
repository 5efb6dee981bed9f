package builtins

import (
	"context"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yan-lang/yan-runtime/domain/errors"
	"github.com/yan-lang/yan-runtime/domain/ports"
	"github.com/yan-lang/yan-runtime/object"
)

// IO is the console the core builtins talk to.
type IO struct {
	Out io.Writer
	In  ports.LineReader
}

// CoreBundle returns the general-purpose builtins: printing and input,
// introspection, conversions, and the operations this runtime refuses
// (eval, del, recover).
func CoreBundle(console IO) Bundle {
	return NewBundle(
		Fixed("println", 1, func(ctx context.Context, args []any) (any, error) {
			_, err := fmt.Fprintln(console.Out, object.Repr(args[0]))
			return nil, err
		}),
		Fixed("print", 1, func(ctx context.Context, args []any) (any, error) {
			_, err := fmt.Fprint(console.Out, object.Repr(args[0]))
			return nil, err
		}),
		Fixed("readLine", 0, func(ctx context.Context, args []any) (any, error) {
			return console.In.ReadLine("")
		}),
		Ranged("input", 0, 1, func(ctx context.Context, args []any) (any, error) {
			prompt, err := OptionalString(ctx, args, 0, "")
			if err != nil {
				return nil, err
			}
			return console.In.ReadLine(prompt)
		}),
		Fixed("typeof", 1, func(ctx context.Context, args []any) (any, error) {
			return object.TypeName(args[0]), nil
		}),
		Fixed("len", 1, builtinLen),
		Ranged("range", 2, 3, builtinRange),
		Fixed("parseInt", 1, builtinParseInt),
		Fixed("parseFloat", 1, builtinParseFloat),
		Fixed("str", 1, func(ctx context.Context, args []any) (any, error) {
			return object.Repr(args[0]), nil
		}),
		Fixed("panic", 1, func(ctx context.Context, args []any) (any, error) {
			return nil, &errors.GuestPanicError{Value: object.Repr(args[0])}
		}),
		Fixed("addressOf", 1, builtinAddressOf),
		Fixed("keys", 1, builtinKeys),
		Fixed("values", 1, builtinValues),
		Fixed("isInteger", 1, func(ctx context.Context, args []any) (any, error) {
			return object.IsInteger(args[0]), nil
		}),
		Fixed("isFloating", 1, func(ctx context.Context, args []any) (any, error) {
			return object.IsFloating(args[0]), nil
		}),
		unsupported("eval", 1, 1),
		unsupported("del", 1, 1),
		unsupported("recover", 0, 1),
	)
}

func unsupported(name string, minArgs, maxArgs int) Builtin {
	return Ranged(name, minArgs, maxArgs, func(ctx context.Context, args []any) (any, error) {
		return nil, &errors.NotImplementedError{Operation: name}
	})
}

func builtinLen(ctx context.Context, args []any) (any, error) {
	switch v := args[0].(type) {
	case string:
		return int64(utf8.RuneCountInString(v)), nil
	case *object.List:
		return int64(v.Len()), nil
	case *object.DynamicObject:
		return int64(v.Len()), nil
	case map[string]any:
		return int64(len(v)), nil
	case []any:
		return int64(len(v)), nil
	case []string:
		return int64(len(v)), nil
	default:
		return nil, typeError(ctx, 0, "sequence", args[0])
	}
}

func builtinRange(ctx context.Context, args []any) (any, error) {
	start, err := Int(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	end, err := Int(ctx, args, 1)
	if err != nil {
		return nil, err
	}
	step, err := OptionalInt(ctx, args, 2, 1)
	if err != nil {
		return nil, err
	}
	if step == 0 {
		return nil, &errors.ArgumentTypeError{
			Builtin:  FunctionName(ctx),
			Position: 3,
			Expected: "non-zero step",
			Got:      "0",
		}
	}

	n := rangeLen(start, end, step)
	if n > MaxRangeLen {
		return nil, &errors.ArgumentTypeError{
			Builtin:  FunctionName(ctx),
			Position: 2,
			Expected: fmt.Sprintf("range of at most %d elements", MaxRangeLen),
			Got:      strconv.FormatUint(n, 10) + " elements",
		}
	}

	l := object.NewList()
	i := start
	for k := uint64(0); k < n; k++ {
		l.Append(i)
		i += step
	}
	return l, nil
}

// MaxRangeLen bounds the list built by range.
const MaxRangeLen = 1 << 24

// rangeLen counts the elements of [start, end) by step without overflowing.
func rangeLen(start, end, step int64) uint64 {
	switch {
	case step > 0 && start < end:
		span := uint64(end) - uint64(start)
		return (span-1)/uint64(step) + 1
	case step < 0 && start > end:
		span := uint64(start) - uint64(end)
		return (span-1)/(uint64(-(step+1))+1) + 1
	default:
		return 0
	}
}

func builtinParseInt(ctx context.Context, args []any) (any, error) {
	s, err := String(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	n, perr := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if perr != nil {
		return nil, &errors.ParseFailureError{Input: s, Kind: "int", Err: unwrapNumError(perr)}
	}
	return n, nil
}

func builtinParseFloat(ctx context.Context, args []any) (any, error) {
	s, err := String(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	f, perr := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if perr != nil {
		return nil, &errors.ParseFailureError{Input: s, Kind: "float", Err: unwrapNumError(perr)}
	}
	return f, nil
}

// unwrapNumError drops strconv's own "parsing ..." prefix; the input is
// already part of ParseFailureError's message.
func unwrapNumError(err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err
	}
	return err
}

// builtinAddressOf returns an identity token for reference values.
func builtinAddressOf(ctx context.Context, args []any) (any, error) {
	rv := reflect.ValueOf(args[0])
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return int64(rv.Pointer()), nil
	default:
		return nil, typeError(ctx, 0, "reference value", args[0])
	}
}

func builtinKeys(ctx context.Context, args []any) (any, error) {
	switch m := args[0].(type) {
	case *object.DynamicObject:
		keys := m.Keys()
		items := make([]any, len(keys))
		for i, k := range keys {
			items[i] = k
		}
		return object.NewList(items...), nil
	case map[string]any:
		keys := sortedKeys(m)
		items := make([]any, len(keys))
		for i, k := range keys {
			items[i] = k
		}
		return object.NewList(items...), nil
	default:
		return nil, typeError(ctx, 0, "mapping", args[0])
	}
}

func builtinValues(ctx context.Context, args []any) (any, error) {
	switch m := args[0].(type) {
	case *object.DynamicObject:
		return object.NewList(m.Values()...), nil
	case map[string]any:
		keys := sortedKeys(m)
		items := make([]any, len(keys))
		for i, k := range keys {
			items[i] = m[k]
		}
		return object.NewList(items...), nil
	default:
		return nil, typeError(ctx, 0, "mapping", args[0])
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
