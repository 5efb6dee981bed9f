package modules

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/yan-lang/yan-runtime/domain/entities"
	"github.com/yan-lang/yan-runtime/domain/errors"
	"github.com/yan-lang/yan-runtime/domain/ports"
	"github.com/yan-lang/yan-runtime/object"
)

// BuiltinModules supplies the symbol tables of the builtin module tags.
type BuiltinModules interface {
	Module(tag string) (ports.HostModule, bool)
}

// Resolver implements require and import.
type Resolver struct {
	builtins BuiltinModules
	finders  []ports.ModuleFinder
	cache    map[string]ports.HostModule
	logger   *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithBuiltinModules sets the source of builtin module tags.
func WithBuiltinModules(b BuiltinModules) Option {
	return func(r *Resolver) {
		r.builtins = b
	}
}

// WithFinders appends host module finders. They are consulted in order and
// the first one that knows the name wins.
func WithFinders(finders ...ports.ModuleFinder) Option {
	return func(r *Resolver) {
		r.finders = append(r.finders, finders...)
	}
}

// WithLogger sets the logger for resolution events.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver creates a resolver. Without finders every host import fails
// with ModuleNotFoundError.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		cache:  make(map[string]ports.HostModule),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Require splices every public symbol of the named module into scope.
// Builtin tags bind the very same values each time. Only bare module names
// are accepted; qualified names go through Import.
func (r *Resolver) Require(ctx context.Context, scope *object.Scope, name string) error {
	if strings.HasPrefix(name, entities.NativeSigil) {
		return &errors.UnsupportedNativeModuleError{Name: name, Operation: "require"}
	}
	ref, err := ParseReference(name)
	if err != nil {
		return err
	}
	if ref.Qualified() {
		return &errors.InvalidImportSpecificationError{Name: name, Reason: "require takes a bare module name"}
	}

	mod, err := r.resolve(ctx, ref.Module)
	if err != nil {
		return err
	}

	n := 0
	for _, sym := range mod.Symbols() {
		if !IsPublic(sym.Name) {
			continue
		}
		scope.Bind(sym.Name, sym.Value)
		n++
	}
	r.logger.DebugContext(ctx, "module required", "name", name, "symbols", n)
	return nil
}

// Import returns the value a qualified name refers to. "mod.attr" projects
// a single public symbol; a bare "mod" returns an object holding all of the
// module's public symbols.
func (r *Resolver) Import(ctx context.Context, name string) (any, error) {
	if strings.HasPrefix(name, entities.NativeSigil) {
		return nil, &errors.UnsupportedNativeModuleError{Name: name, Operation: "import"}
	}
	ref, err := ParseReference(name)
	if err != nil {
		return nil, err
	}

	mod, err := r.resolve(ctx, ref.Module)
	if err != nil {
		return nil, err
	}

	if !ref.Qualified() {
		ns := object.New()
		for _, sym := range mod.Symbols() {
			if IsPublic(sym.Name) {
				ns.Set(sym.Name, sym.Value)
			}
		}
		return ns, nil
	}

	if IsPublic(ref.Attr) {
		for _, sym := range mod.Symbols() {
			if sym.Name == ref.Attr {
				return sym.Value, nil
			}
		}
	}
	return nil, &errors.AttributeMissingError{Name: ref.String()}
}

// resolve finds a module by bare name: builtin tags first, then the host
// cache, then the finders.
func (r *Resolver) resolve(ctx context.Context, name string) (ports.HostModule, error) {
	if r.builtins != nil {
		if mod, ok := r.builtins.Module(name); ok {
			return mod, nil
		}
	}
	if mod, ok := r.cache[name]; ok {
		return mod, nil
	}

	searched := make([]string, 0, len(r.finders))
	for _, f := range r.finders {
		mod, err := f.Find(ctx, name)
		if err == nil {
			r.cache[name] = mod
			r.logger.DebugContext(ctx, "host module loaded", "name", name, "finder", f.Kind())
			return mod, nil
		}
		if !stdErrors.Is(err, errors.ErrModuleNotFound) {
			return nil, fmt.Errorf("%s finder: %w", f.Kind(), err)
		}
		searched = append(searched, f.Kind())
	}
	return nil, &errors.ModuleNotFoundError{Name: name, Searched: searched}
}

// Invalidate drops the cached host module name and reports whether it was
// cached. The next resolution reloads it from the finders. A module holding
// resources is closed, so values previously bound from it stop working.
func (r *Resolver) Invalidate(name string) bool {
	mod, ok := r.cache[name]
	if !ok {
		return false
	}
	delete(r.cache, name)
	r.release(mod)
	return true
}

// InvalidateAll empties the host module cache.
func (r *Resolver) InvalidateAll() {
	for _, mod := range r.cache {
		r.release(mod)
	}
	clear(r.cache)
}

func (r *Resolver) release(mod ports.HostModule) {
	c, ok := mod.(ports.ClosableModule)
	if !ok {
		return
	}
	if err := c.Close(context.Background()); err != nil {
		r.logger.Warn("failed to close host module", "name", mod.Name(), "error", err)
	}
}

// Cached returns the names of cached host modules, sorted.
func (r *Resolver) Cached() []string {
	names := make([]string, 0, len(r.cache))
	for name := range r.cache {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
