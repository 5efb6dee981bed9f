package stdlib

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/yan-lang/yan-runtime/builtins"
	"github.com/yan-lang/yan-runtime/hostio"
)

// fetchLayout is the layout of time.Fetch, "YYYY-MM-DD HH:MM:SS".
const fetchLayout = "2006-01-02 15:04:05"

// OSBundle returns the os module.
func OSBundle(env Env) builtins.Bundle {
	return builtins.NewBundle(
		builtins.Fixed("System", 1, func(ctx context.Context, args []any) (any, error) {
			cmdline, err := builtins.String(ctx, args, 0)
			if err != nil {
				return nil, err
			}
			code, err := hostio.System(ctx, cmdline,
				hostio.WithShell(env.Shell),
				hostio.WithSystemTimeout(env.SystemTimeout),
				hostio.WithStdio(env.Stdin, env.Stdout, env.Stderr),
			)
			if err != nil {
				return nil, err
			}
			return int64(code), nil
		}),
	)
}

// RandBundle returns the rand module backed by g.
func RandBundle(g *hostio.Random) builtins.Bundle {
	return builtins.NewBundle(
		builtins.Fixed("Random", 0, func(ctx context.Context, args []any) (any, error) {
			return g.Float(), nil
		}),
		builtins.Fixed("RandInt", 2, func(ctx context.Context, args []any) (any, error) {
			a, err := builtins.Int(ctx, args, 0)
			if err != nil {
				return nil, err
			}
			b, err := builtins.Int(ctx, args, 1)
			if err != nil {
				return nil, err
			}
			return g.IntBetween(a, b)
		}),
	)
}

// TimeBundle returns the time module reading from clock.
func TimeBundle(clock func() time.Time) builtins.Bundle {
	return builtins.NewBundle(
		builtins.Fixed("Now", 0, func(ctx context.Context, args []any) (any, error) {
			return clock().UnixNano(), nil
		}),
		builtins.Fixed("Fetch", 0, func(ctx context.Context, args []any) (any, error) {
			return clock().Local().Format(fetchLayout), nil
		}),
	)
}

// InspectBundle returns the inspect module reporting on trace.
func InspectBundle(trace *builtins.Trace) builtins.Bundle {
	return builtins.NewBundle(
		builtins.Fixed("GetCallStackInfo", 0, func(ctx context.Context, args []any) (any, error) {
			return trace.String(), nil
		}),
		builtins.Fixed("GetNativeCallStackInfo", 0, func(ctx context.Context, args []any) (any, error) {
			return string(debug.Stack()), nil
		}),
	)
}
