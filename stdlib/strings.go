package stdlib

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yan-lang/yan-runtime/builtins"
	"github.com/yan-lang/yan-runtime/domain/errors"
	"github.com/yan-lang/yan-runtime/object"
)

// StringBundle returns the string module. Indices count runes, not bytes.
func StringBundle() builtins.Bundle {
	return builtins.NewBundle(
		builtins.Fixed("Split", 2, stringSplit),
		builtins.Fixed("Format", 2, stringFormat),
		builtins.Fixed("ToCharArray", 1, stringToCharArray),
		builtins.Fixed("Sub", 3, stringSub),
		builtins.Fixed("Replace", 3, stringReplace),
		builtins.Fixed("Substitute", 4, stringSubstitute),
		builtins.Fixed("Repeat", 2, stringRepeat),
		builtins.Fixed("Find", 2, stringFind),
		builtins.Fixed("StartsWith", 2, func(ctx context.Context, args []any) (any, error) {
			return twoStrings(ctx, args, strings.HasPrefix)
		}),
		builtins.Fixed("EndsWith", 2, func(ctx context.Context, args []any) (any, error) {
			return twoStrings(ctx, args, strings.HasSuffix)
		}),
	)
}

func twoStrings(ctx context.Context, args []any, fn func(a, b string) bool) (any, error) {
	a, err := builtins.String(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	b, err := builtins.String(ctx, args, 1)
	if err != nil {
		return nil, err
	}
	return fn(a, b), nil
}

func stringSplit(ctx context.Context, args []any) (any, error) {
	src, err := builtins.String(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	sep, err := builtins.String(ctx, args, 1)
	if err != nil {
		return nil, err
	}
	return stringList(strings.Split(src, sep)), nil
}

func stringToCharArray(ctx context.Context, args []any) (any, error) {
	src, err := builtins.String(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	chars := make([]string, 0, utf8.RuneCountInString(src))
	for _, r := range src {
		chars = append(chars, string(r))
	}
	return stringList(chars), nil
}

func stringSub(ctx context.Context, args []any) (any, error) {
	src, err := builtins.String(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	runes := []rune(src)
	start, err := runeIndex(ctx, args, 1, len(runes))
	if err != nil {
		return nil, err
	}
	end, err := runeIndex(ctx, args, 2, len(runes))
	if err != nil {
		return nil, err
	}
	if start > end {
		return nil, rangeError(ctx, 2, fmt.Sprintf("index >= %d", start), end)
	}
	return string(runes[start:end]), nil
}

func stringReplace(ctx context.Context, args []any) (any, error) {
	src, err := builtins.String(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	old, err := builtins.String(ctx, args, 1)
	if err != nil {
		return nil, err
	}
	if old == "" {
		return nil, &errors.ArgumentTypeError{
			Builtin:  builtins.FunctionName(ctx),
			Position: 2,
			Expected: "non-empty string",
			Got:      "empty string",
		}
	}
	repl, err := builtins.String(ctx, args, 2)
	if err != nil {
		return nil, err
	}
	return strings.ReplaceAll(src, old, repl), nil
}

// stringSubstitute replaces n runes starting at st with repl. With n == 0 it
// inserts repl before the rune at st.
func stringSubstitute(ctx context.Context, args []any) (any, error) {
	src, err := builtins.String(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	runes := []rune(src)
	st, err := runeIndex(ctx, args, 1, len(runes)-1)
	if err != nil {
		return nil, err
	}
	n, err := runeIndex(ctx, args, 2, len(runes)-st)
	if err != nil {
		return nil, err
	}
	repl, err := builtins.String(ctx, args, 3)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString(string(runes[:st]))
	sb.WriteString(repl)
	sb.WriteString(string(runes[st+n:]))
	return sb.String(), nil
}

func stringRepeat(ctx context.Context, args []any) (any, error) {
	src, err := builtins.String(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	count, err := builtins.Int(ctx, args, 1)
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, rangeError(ctx, 1, "count >= 0", int(count))
	}
	if count > 0 && int64(len(src)) > MaxRepeatLen/count {
		return nil, rangeError(ctx, 1, fmt.Sprintf("result of at most %d bytes", MaxRepeatLen), int(count))
	}
	return strings.Repeat(src, int(count)), nil
}

// MaxRepeatLen bounds the byte length of a Repeat result.
const MaxRepeatLen = 1 << 28

// stringFind returns the rune index of the first occurrence of sub, or -1.
func stringFind(ctx context.Context, args []any) (any, error) {
	src, err := builtins.String(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	sub, err := builtins.String(ctx, args, 1)
	if err != nil {
		return nil, err
	}
	i := strings.Index(src, sub)
	if i < 0 {
		return int64(-1), nil
	}
	return int64(utf8.RuneCountInString(src[:i])), nil
}

// runeIndex reads argument i as an integer in [0, limit].
func runeIndex(ctx context.Context, args []any, i, limit int) (int, error) {
	n, err := builtins.Int(ctx, args, i)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > int64(limit) {
		return 0, rangeError(ctx, i, fmt.Sprintf("index in [0, %d]", max(limit, 0)), int(n))
	}
	return int(n), nil
}

func rangeError(ctx context.Context, i int, expected string, got int) error {
	return &errors.ArgumentTypeError{
		Builtin:  builtins.FunctionName(ctx),
		Position: i + 1,
		Expected: expected,
		Got:      fmt.Sprintf("%d", got),
	}
}

func stringList(items []string) *object.List {
	l := object.NewList()
	for _, s := range items {
		l.Append(s)
	}
	return l
}
