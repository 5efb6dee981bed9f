package builtins

import (
	"context"
)

// CallContext wraps a standard context.Context with builtin-specific helpers.
// It gives middleware access to the invoked builtin's name and a place to
// keep call-scoped values.
type CallContext interface {
	context.Context

	// FunctionName returns the name of the builtin being invoked.
	FunctionName() string

	// SetValue stores a call-scoped value. Unlike context.WithValue,
	// this mutates the existing CallContext.
	SetValue(key, value any)

	// GetValue retrieves a call-scoped value set by SetValue.
	GetValue(key any) (value any, ok bool)
}

type callContext struct {
	context.Context
	values   map[any]any
	funcName string
}

// NewCallContext creates a new CallContext wrapping the given context.
func NewCallContext(ctx context.Context, funcName string) CallContext {
	return &callContext{
		Context:  ctx,
		funcName: funcName,
		values:   make(map[any]any),
	}
}

func (c *callContext) FunctionName() string {
	return c.funcName
}

func (c *callContext) SetValue(key, value any) {
	c.values[key] = value
}

func (c *callContext) GetValue(key any) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// CallContextFrom returns a CallContext for funcName. Builtins may call back
// into other builtins, so an existing CallContext for a different name is
// wrapped rather than reused.
func CallContextFrom(ctx context.Context, funcName string) CallContext {
	if cc, ok := ctx.(CallContext); ok && cc.FunctionName() == funcName {
		return cc
	}
	return NewCallContext(ctx, funcName)
}

// FunctionName reports the builtin name carried by ctx, or "unknown".
func FunctionName(ctx context.Context) string {
	if cc, ok := ctx.(CallContext); ok {
		return cc.FunctionName()
	}
	return "unknown"
}
