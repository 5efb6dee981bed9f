// Package builtins provides the guest language's builtin function catalogue
// as plain host callables with fixed arity.
//
// The catalogue is assembled into an immutable Registry from bundles, and
// every call passes through a middleware chain (panic recovery, logging,
// call tracing).
package builtins
