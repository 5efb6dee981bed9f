// Package ports defines the interfaces the runtime core depends on.
// Infrastructure adapters (host module finders, line readers, config parsers)
// implement these interfaces.
package ports
