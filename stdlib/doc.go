// Package stdlib provides the symbol tables of the builtin modules: string,
// fs, os, rand, time and inspect.
//
// Each module is an immutable builtins.Registry; its table binds every
// registry entry once, so repeated requires of the same tag hand out the
// very same callable values.
package stdlib
