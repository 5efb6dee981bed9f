// Package yan is the host runtime for yan guest programs. A Runtime owns the
// builtin catalogue, the builtin module tables, the module resolver and the
// guest's global namespace.
//
//	rt, err := yan.New(ctx, yan.WithConfig(cfg))
//	if err != nil {
//	    return err
//	}
//	defer rt.Close(ctx)
//
//	_, err = rt.Invoke(ctx, "require", "string")
package yan

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/yan-lang/yan-runtime/builtins"
	"github.com/yan-lang/yan-runtime/config"
	"github.com/yan-lang/yan-runtime/domain/ports"
	"github.com/yan-lang/yan-runtime/hostio"
	wasmfinder "github.com/yan-lang/yan-runtime/infrastructure/wazero"
	"github.com/yan-lang/yan-runtime/log"
	"github.com/yan-lang/yan-runtime/modules"
	"github.com/yan-lang/yan-runtime/object"
	"github.com/yan-lang/yan-runtime/stdlib"
)

// Runtime wires the builtin bridge to the module system.
type Runtime struct {
	cfg      *config.Config
	logger   *slog.Logger
	globals  *object.Scope
	trace    *builtins.Trace
	stdlib   *stdlib.Set
	static   *modules.StaticFinder
	wasm     *wasmfinder.Finder
	resolver *modules.Resolver
	registry *builtins.Registry
	closers  []func() error
}

// New builds a Runtime.
func New(ctx context.Context, opts ...Option) (_ *Runtime, err error) {
	rc := runtimeConfig{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(&rc)
	}
	if rc.config == nil {
		rc.config = config.Default()
	}
	if err = config.Validate(rc.config); err != nil {
		return nil, err
	}
	if rc.logger == nil {
		logger, err := log.New(rc.stderr, rc.config.Log)
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
		rc.logger = logger
	}

	r := &Runtime{
		cfg:     rc.config,
		logger:  rc.logger,
		globals: object.NewScope(),
		trace:   builtins.NewTrace(),
	}
	defer func() {
		if err != nil {
			_ = r.Close(ctx)
		}
	}()

	if rc.lineReader == nil {
		rc.lineReader = r.consoleReader(rc)
	}

	regOpts := []builtins.RegistryOption{
		builtins.WithMiddleware(
			builtins.PanicRecoveryMiddleware(),
			builtins.CallTraceMiddleware(r.trace),
			builtins.LoggingMiddleware(r.logger),
		),
	}
	if !r.cfg.StrictArity {
		regOpts = append(regOpts, builtins.WithLenientArity())
	}

	set, err := stdlib.New(ctx, stdlib.Env{
		Stdin:         rc.stdin,
		Stdout:        rc.stdout,
		Stderr:        rc.stderr,
		Shell:         r.cfg.Exec.Shell,
		SystemTimeout: r.cfg.TimeoutDuration(),
		Random:        rc.random,
		Clock:         rc.clock,
		Trace:         r.trace,
	}, regOpts...)
	if err != nil {
		return nil, err
	}
	r.stdlib = set

	r.static = modules.NewStaticFinder(rc.modules...)
	finders := []ports.ModuleFinder{r.static, modules.NewDataFinder(r.cfg.ModulePaths...)}
	if r.cfg.Wasm.Enabled {
		wf, err := wasmfinder.NewFinder(ctx, r.cfg.ModulePaths,
			wasmfinder.WithLogger(r.logger),
			wasmfinder.WithStdio(rc.stdout, rc.stderr),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to start wasm runtime: %w", err)
		}
		r.wasm = wf
		finders = append(finders, wf)
	}
	finders = append(finders, rc.finders...)

	r.resolver = modules.NewResolver(
		modules.WithBuiltinModules(set),
		modules.WithFinders(finders...),
		modules.WithLogger(r.logger),
	)

	regOpts = append(regOpts,
		builtins.WithBundle(builtins.Catalogue(builtins.IO{Out: rc.stdout, In: rc.lineReader})),
		builtins.WithBundle(r.moduleBundle()),
	)
	r.registry, err = builtins.NewRegistry(regOpts...)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("runtime ready",
		"catalogue", builtins.CatalogueVersion,
		"builtins", len(r.registry.Names()),
		"wasm", r.wasm != nil,
	)
	return r, nil
}

func (r *Runtime) consoleReader(rc runtimeConfig) ports.LineReader {
	if f, ok := rc.stdin.(*os.File); ok {
		lr := hostio.NewConsoleLineReader(f, rc.stdout)
		r.closers = append(r.closers, lr.Close)
		return lr
	}
	return hostio.NewBufferedLineReader(rc.stdin, rc.stdout)
}

// moduleBundle holds the builtins that need the runtime itself.
func (r *Runtime) moduleBundle() builtins.Bundle {
	return builtins.NewBundle(
		builtins.Fixed("builtins", 0, func(ctx context.Context, args []any) (any, error) {
			names := r.registry.Names()
			items := make([]any, len(names))
			for i, n := range names {
				items[i] = n
			}
			return object.NewList(items...), nil
		}),
		builtins.Fixed("require", 1, func(ctx context.Context, args []any) (any, error) {
			name, err := builtins.String(ctx, args, 0)
			if err != nil {
				return nil, err
			}
			return nil, r.resolver.Require(ctx, r.globals, name)
		}),
		builtins.Fixed("import", 1, func(ctx context.Context, args []any) (any, error) {
			name, err := builtins.String(ctx, args, 0)
			if err != nil {
				return nil, err
			}
			return r.resolver.Import(ctx, name)
		}),
	)
}

// Invoke calls a catalogue builtin by name.
func (r *Runtime) Invoke(ctx context.Context, name string, args ...any) (any, error) {
	return r.registry.Invoke(ctx, name, args...)
}

// Callable returns a catalogue builtin as a guest value.
func (r *Runtime) Callable(ctx context.Context, name string) (object.Callable, bool) {
	return r.registry.Callable(ctx, name)
}

// Builtins returns the sorted catalogue names.
func (r *Runtime) Builtins() []string {
	return r.registry.Names()
}

// Globals returns the guest's global namespace; require binds into it.
func (r *Runtime) Globals() *object.Scope {
	return r.globals
}

// Resolver returns the module resolver.
func (r *Runtime) Resolver() *modules.Resolver {
	return r.resolver
}

// Stdlib returns the builtin module tables.
func (r *Runtime) Stdlib() *stdlib.Set {
	return r.stdlib
}

// Trace returns the active builtin call stack.
func (r *Runtime) Trace() *builtins.Trace {
	return r.trace
}

// Config returns the effective configuration.
func (r *Runtime) Config() *config.Config {
	return r.cfg
}

// RegisterModule adds or replaces a Go-defined host module. A cached copy of
// a module with the same name is dropped so the next resolution sees it.
func (r *Runtime) RegisterModule(mod ports.HostModule) {
	r.static.Register(mod)
	r.resolver.Invalidate(mod.Name())
}

// Close releases the wasm runtime and restores the terminal.
func (r *Runtime) Close(ctx context.Context) error {
	var errs []error
	if r.wasm != nil {
		if err := r.wasm.Close(ctx); err != nil {
			errs = append(errs, err)
		}
		r.wasm = nil
	}
	for _, c := range r.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	return stdErrors.Join(errs...)
}
