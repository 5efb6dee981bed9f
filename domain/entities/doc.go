// Package entities provides core domain entities for the runtime.
// These are plain data types shared by the object model, the module resolver
// and the builtin bridge.
package entities
