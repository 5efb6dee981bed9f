package stdlib

import (
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/yan-lang/yan-runtime/builtins"
	"github.com/yan-lang/yan-runtime/domain/ports"
	"github.com/yan-lang/yan-runtime/hostio"
)

// Tags are the builtin module names, in their canonical order.
var Tags = []string{"string", "fs", "os", "rand", "time", "inspect"}

// IsTag reports whether name is a builtin module name.
func IsTag(name string) bool {
	return slices.Contains(Tags, name)
}

// Env carries the host resources the modules act on.
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Shell         string
	SystemTimeout time.Duration

	Random *hostio.Random
	Clock  func() time.Time
	Trace  *builtins.Trace
}

func (e Env) withDefaults() Env {
	if e.Random == nil {
		e.Random = hostio.NewRandom()
	}
	if e.Clock == nil {
		e.Clock = time.Now
	}
	if e.Trace == nil {
		e.Trace = builtins.NewTrace()
	}
	return e
}

// Table is the symbol table of one builtin module.
type Table struct {
	name     string
	registry *builtins.Registry
	symbols  []ports.Symbol
}

var _ ports.HostModule = (*Table)(nil)

func newTable(ctx context.Context, name string, registry *builtins.Registry) *Table {
	t := &Table{name: name, registry: registry}
	// Symbols are bound once and outlive the setup call.
	ctx = context.WithoutCancel(ctx)
	for _, sym := range registry.Names() {
		fn, _ := registry.Callable(ctx, sym)
		t.symbols = append(t.symbols, ports.Symbol{Name: sym, Value: fn})
	}
	return t
}

// Name implements ports.HostModule.
func (t *Table) Name() string {
	return t.name
}

// Symbols implements ports.HostModule. The returned slice is a copy; the
// values are shared.
func (t *Table) Symbols() []ports.Symbol {
	return slices.Clone(t.symbols)
}

// Registry exposes the module's registry, e.g. for arity introspection.
func (t *Table) Registry() *builtins.Registry {
	return t.registry
}

// Set is the complete collection of builtin module tables.
type Set struct {
	tables map[string]*Table
}

// New builds every builtin module. opts are applied to each module registry,
// typically to install middleware.
func New(ctx context.Context, env Env, opts ...builtins.RegistryOption) (*Set, error) {
	env = env.withDefaults()

	bundles := map[string]builtins.Bundle{
		"string":  StringBundle(),
		"fs":      FSBundle(),
		"os":      OSBundle(env),
		"rand":    RandBundle(env.Random),
		"time":    TimeBundle(env.Clock),
		"inspect": InspectBundle(env.Trace),
	}

	s := &Set{tables: make(map[string]*Table, len(bundles))}
	for _, tag := range Tags {
		regOpts := append(slices.Clone(opts), builtins.WithBundle(bundles[tag]))
		reg, err := builtins.NewRegistry(regOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to build module %q: %w", tag, err)
		}
		s.tables[tag] = newTable(ctx, tag, reg)
	}
	return s, nil
}

// Lookup returns the table registered for tag.
func (s *Set) Lookup(tag string) (*Table, bool) {
	t, ok := s.tables[tag]
	return t, ok
}

// Module returns the table for tag as a host module, so a Set can serve as
// the resolver's source of builtin modules.
func (s *Set) Module(tag string) (ports.HostModule, bool) {
	t, ok := s.tables[tag]
	if !ok {
		return nil, false
	}
	return t, true
}
