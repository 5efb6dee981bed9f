// Package wazero serves host modules compiled to WebAssembly.
//
// A Finder looks for <name>.wasm on its search path, compiles and
// instantiates the module in a shared wazero runtime, and exposes every
// exported function as a guest callable. Arguments and results are
// converted according to the function's WebAssembly signature:
//
//	i32, i64  <->  int64
//	f32, f64  <->  float64
//
// Functions with no result return null; functions with several results
// return a list.
//
// # Basic Usage
//
//	finder, err := wazero.NewFinder(ctx, []string{"./modules"})
//	if err != nil {
//	    return err
//	}
//	defer finder.Close(ctx)
//
//	resolver := modules.NewResolver(modules.WithFinders(finder))
package wazero
