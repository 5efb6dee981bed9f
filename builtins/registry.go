package builtins

import (
	"context"
	"fmt"
	"sort"

	"github.com/yan-lang/yan-runtime/domain/errors"
	"github.com/yan-lang/yan-runtime/object"
)

// Registry is an immutable collection of named builtins.
// Once created via NewRegistry, builtins cannot be added or removed.
type Registry struct {
	builtins   map[string]Builtin
	names      []string // sorted for consistent iteration
	middleware []Middleware
	lenient    bool
}

// registryBuilder accumulates configuration during registry construction.
type registryBuilder struct {
	builtins   map[string]Builtin
	middleware []Middleware
	errors     []error
	lenient    bool
}

// NewRegistry creates an immutable Registry with the given options.
// Returns an error if any builtin name is registered twice.
//
// Example usage:
//
//	registry, err := NewRegistry(
//	    WithMiddleware(PanicRecoveryMiddleware()),
//	    WithBundle(MathBundle()),
//	    WithBuiltin(Fixed("double", 1, double)),
//	)
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	b := &registryBuilder{
		builtins: make(map[string]Builtin),
	}

	for _, opt := range opts {
		opt(b)
	}

	if len(b.errors) > 0 {
		return nil, b.errors[0]
	}

	names := make([]string, 0, len(b.builtins))
	for name := range b.builtins {
		names = append(names, name)
	}
	sort.Strings(names)

	// Apply middleware chain to all builtins (FIFO order)
	wrapped := make(map[string]Builtin, len(b.builtins))
	for name, bi := range b.builtins {
		fn := bi.Fn
		for i := len(b.middleware) - 1; i >= 0; i-- {
			fn = b.middleware[i](fn)
		}
		bi.Fn = fn
		wrapped[name] = bi
	}

	return &Registry{
		builtins:   wrapped,
		names:      names,
		middleware: b.middleware,
		lenient:    b.lenient,
	}, nil
}

// Invoke dispatches a builtin call by name after checking its arity.
func (r *Registry) Invoke(ctx context.Context, name string, args ...any) (any, error) {
	bi, ok := r.builtins[name]
	if !ok {
		return nil, &errors.UnknownBuiltinError{Name: name}
	}
	if r.lenient && bi.MaxArgs != Variadic && len(args) > bi.MaxArgs {
		args = args[:bi.MaxArgs]
	}
	if err := bi.CheckArity(len(args)); err != nil {
		return nil, err
	}

	cctx := CallContextFrom(ctx, name)
	return bi.Fn(cctx, args)
}

// Callable returns the named builtin as a guest-callable value bound to ctx.
func (r *Registry) Callable(ctx context.Context, name string) (object.Callable, bool) {
	if !r.Has(name) {
		return nil, false
	}
	return func(args ...any) (any, error) {
		return r.Invoke(ctx, name, args...)
	}, true
}

// Has returns true if a builtin with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.builtins[name]
	return ok
}

// Arity returns the argument bounds of the named builtin.
func (r *Registry) Arity(name string) (minArgs, maxArgs int, ok bool) {
	bi, ok := r.builtins[name]
	return bi.MinArgs, bi.MaxArgs, ok
}

// Names returns a sorted list of all registered builtin names.
func (r *Registry) Names() []string {
	result := make([]string, len(r.names))
	copy(result, r.names)
	return result
}

// addBuiltin registers a builtin, rejecting empty and duplicate names.
func (b *registryBuilder) addBuiltin(bi Builtin) error {
	if bi.Name == "" {
		return fmt.Errorf("builtin name cannot be empty")
	}
	if bi.Fn == nil {
		return fmt.Errorf("builtin %q has no implementation", bi.Name)
	}
	if _, exists := b.builtins[bi.Name]; exists {
		return fmt.Errorf("duplicate builtin name: %q", bi.Name)
	}
	b.builtins[bi.Name] = bi
	return nil
}

// WithBuiltin registers a single builtin.
func WithBuiltin(bi Builtin) RegistryOption {
	return func(b *registryBuilder) {
		if err := b.addBuiltin(bi); err != nil {
			b.errors = append(b.errors, err)
		}
	}
}

// WithMiddleware adds middleware to the registry.
// Middleware executes in FIFO order (first added wraps first).
func WithMiddleware(mw ...Middleware) RegistryOption {
	return func(b *registryBuilder) {
		b.middleware = append(b.middleware, mw...)
	}
}

// WithLenientArity makes Invoke drop surplus arguments instead of failing.
// Missing arguments are still an ArityError.
func WithLenientArity() RegistryOption {
	return func(b *registryBuilder) {
		b.lenient = true
	}
}
