package builtins

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/yan-lang/yan-runtime/domain/errors"
)

// Middleware is a function that wraps a Func to add cross-cutting behavior.
// Middleware executes in FIFO order (first registered wraps first, onion model).
type Middleware func(next Func) Func

// RegistryOption is a functional option for configuring a Registry.
type RegistryOption func(*registryBuilder)

// PanicRecoveryMiddleware returns a middleware that converts host panics
// inside a builtin into a GuestPanicError instead of crashing the host.
func PanicRecoveryMiddleware() Middleware {
	return func(next Func) Func {
		return func(ctx context.Context, args []any) (result any, err error) {
			defer func() {
				if r := recover(); r != nil {
					result = nil
					err = &errors.GuestPanicError{
						Value: fmt.Sprintf("%s: %s", FunctionName(ctx), panicMessage(r)),
						Stack: debug.Stack(),
					}
				}
			}()
			return next(ctx, args)
		}
	}
}

func panicMessage(r any) string {
	switch v := r.(type) {
	case error:
		return v.Error()
	case string:
		return v
	default:
		return "panic recovered"
	}
}

// LoggingMiddleware returns a middleware that logs builtin invocations at
// debug level.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next Func) Func {
		return func(ctx context.Context, args []any) (any, error) {
			name := FunctionName(ctx)
			logger.Debug("invoking builtin", "name", name, "args", len(args))
			result, err := next(ctx, args)
			if err != nil {
				logger.Debug("builtin failed", "name", name, "error", err)
			}
			return result, err
		}
	}
}

// CallTraceMiddleware returns a middleware that records the active builtin
// call stack in trace.
func CallTraceMiddleware(trace *Trace) Middleware {
	return func(next Func) Func {
		return func(ctx context.Context, args []any) (any, error) {
			trace.push(Frame{Name: FunctionName(ctx), Args: len(args)})
			defer trace.pop()
			return next(ctx, args)
		}
	}
}
