// Package modules resolves guest require/import names.
//
// A name is either a builtin module tag, whose fixed symbol table is
// spliced by reference, or a host module located through a chain of
// ports.ModuleFinder implementations. Host modules are cached by name until
// invalidated.
package modules
