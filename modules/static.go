package modules

import (
	"context"
	"slices"

	"github.com/yan-lang/yan-runtime/domain/errors"
	"github.com/yan-lang/yan-runtime/domain/ports"
)

// Module is a host module with a fixed symbol list.
type Module struct {
	name    string
	symbols []ports.Symbol
}

var _ ports.HostModule = (*Module)(nil)

// NewModule creates a module from symbols, keeping their order.
func NewModule(name string, symbols ...ports.Symbol) *Module {
	return &Module{name: name, symbols: slices.Clone(symbols)}
}

// Name implements ports.HostModule.
func (m *Module) Name() string {
	return m.name
}

// Symbols implements ports.HostModule.
func (m *Module) Symbols() []ports.Symbol {
	return slices.Clone(m.symbols)
}

// StaticFinder serves modules registered from Go code.
type StaticFinder struct {
	modules map[string]ports.HostModule
}

var _ ports.ModuleFinder = (*StaticFinder)(nil)

// NewStaticFinder creates a finder serving mods.
func NewStaticFinder(mods ...ports.HostModule) *StaticFinder {
	f := &StaticFinder{modules: make(map[string]ports.HostModule, len(mods))}
	for _, m := range mods {
		f.Register(m)
	}
	return f
}

// Register adds or replaces a module. A replaced module becomes visible to
// a Resolver once its cache entry is invalidated.
func (f *StaticFinder) Register(m ports.HostModule) {
	f.modules[m.Name()] = m
}

// Kind implements ports.ModuleFinder.
func (f *StaticFinder) Kind() string {
	return "static"
}

// Find implements ports.ModuleFinder.
func (f *StaticFinder) Find(ctx context.Context, name string) (ports.HostModule, error) {
	m, ok := f.modules[name]
	if !ok {
		return nil, &errors.ModuleNotFoundError{Name: name, Searched: []string{f.Kind()}}
	}
	return m, nil
}
