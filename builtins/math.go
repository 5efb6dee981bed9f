package builtins

import (
	"context"
	"math"
)

// MathBundle returns the numeric builtins: sin, cos, tan, log, ln, sqrt, abs.
// Domain errors follow host float semantics (NaN, ±Inf).
func MathBundle() Bundle {
	return NewBundle(
		unaryFloat("sin", math.Sin),
		unaryFloat("cos", math.Cos),
		unaryFloat("tan", math.Tan),
		unaryFloat("log", math.Log),
		unaryFloat("ln", math.Log),
		unaryFloat("sqrt", math.Sqrt),
		Fixed("abs", 1, builtinAbs),
	)
}

func unaryFloat(name string, fn func(float64) float64) Builtin {
	return Fixed(name, 1, func(ctx context.Context, args []any) (any, error) {
		x, err := Float(ctx, args, 0)
		if err != nil {
			return nil, err
		}
		return fn(x), nil
	})
}

// builtinAbs keeps the numeric kind of its argument.
func builtinAbs(ctx context.Context, args []any) (any, error) {
	v, err := Number(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	if n, ok := v.(int64); ok {
		if n < 0 {
			return -n, nil
		}
		return n, nil
	}
	return math.Abs(v.(float64)), nil
}
