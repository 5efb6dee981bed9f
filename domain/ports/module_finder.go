package ports

import "context"

// HostModule is a module supplied by the host rather than by the builtin
// module table.
type HostModule interface {
	// Name returns the name the module was imported under.
	Name() string

	// Symbols returns the module's attributes in declaration order.
	// Names starting with "_" are private and are not spliced by require.
	Symbols() []Symbol
}

// Symbol is a single named module attribute.
type Symbol struct {
	Name  string
	Value any
}

// ModuleFinder locates host modules by name.
type ModuleFinder interface {
	// Kind names the finder for diagnostics (e.g. "static", "data", "wasm").
	Kind() string

	// Find returns the named module. Implementations return an error matching
	// errors.ErrModuleNotFound when they do not provide the name.
	Find(ctx context.Context, name string) (HostModule, error)
}

// ClosableModule is a HostModule holding resources, such as a WebAssembly
// instance, that are released when the module leaves the resolver cache.
type ClosableModule interface {
	HostModule
	Close(ctx context.Context) error
}
