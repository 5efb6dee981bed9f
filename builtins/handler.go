package builtins

import (
	"context"

	"github.com/yan-lang/yan-runtime/domain/errors"
)

// Variadic marks a builtin without an upper arity bound.
const Variadic = -1

// Func is the signature of every builtin implementation. Arguments and
// results are host-native values (int64, float64, string, bool, *object.List,
// *object.DynamicObject, callables).
type Func func(ctx context.Context, args []any) (any, error)

// Builtin is a named catalogue entry.
type Builtin struct {
	Name    string
	MinArgs int
	MaxArgs int // Variadic for no upper bound
	Fn      Func
}

// Fixed creates a builtin taking exactly n arguments.
func Fixed(name string, n int, fn Func) Builtin {
	return Builtin{Name: name, MinArgs: n, MaxArgs: n, Fn: fn}
}

// Ranged creates a builtin taking between min and max arguments.
func Ranged(name string, minArgs, maxArgs int, fn Func) Builtin {
	return Builtin{Name: name, MinArgs: minArgs, MaxArgs: maxArgs, Fn: fn}
}

// CheckArity validates the argument count against the builtin's bounds.
func (b Builtin) CheckArity(got int) error {
	if got < b.MinArgs || (b.MaxArgs != Variadic && got > b.MaxArgs) {
		return &errors.ArityError{Builtin: b.Name, Min: b.MinArgs, Max: b.MaxArgs, Got: got}
	}
	return nil
}
