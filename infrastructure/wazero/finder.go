package wazero

import (
	"context"
	stdErrors "errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/yan-lang/yan-runtime/domain/errors"
	"github.com/yan-lang/yan-runtime/domain/ports"
	"github.com/yan-lang/yan-runtime/object"
)

// Extension is the file extension of WebAssembly host modules.
const Extension = ".wasm"

// FinderOption configures a Finder.
type FinderOption func(*finderConfig)

type finderConfig struct {
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

// WithLogger sets the logger for module loading events.
func WithLogger(logger *slog.Logger) FinderOption {
	return func(c *finderConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithStdio connects WASI stdout and stderr of loaded modules.
func WithStdio(stdout, stderr io.Writer) FinderOption {
	return func(c *finderConfig) {
		c.stdout = stdout
		c.stderr = stderr
	}
}

// Finder implements ports.ModuleFinder for .wasm files.
type Finder struct {
	runtime wazero.Runtime
	paths   []string
	config  finderConfig
}

var _ ports.ModuleFinder = (*Finder)(nil)

// NewFinder creates a wazero runtime with WASI preview 1 available to the
// modules it loads. Close releases the runtime and every loaded module.
func NewFinder(ctx context.Context, paths []string, opts ...FinderOption) (*Finder, error) {
	cfg := finderConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	rt := wazero.NewRuntime(ctx)
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("failed to instantiate WASI: %w", err)
	}

	return &Finder{runtime: rt, paths: paths, config: cfg}, nil
}

// Close releases the runtime.
func (f *Finder) Close(ctx context.Context) error {
	return f.runtime.Close(ctx)
}

// Kind implements ports.ModuleFinder.
func (f *Finder) Kind() string {
	return "wasm"
}

// Find implements ports.ModuleFinder.
func (f *Finder) Find(ctx context.Context, name string) (ports.HostModule, error) {
	for _, dir := range f.paths {
		path := filepath.Join(dir, name+Extension)
		wasmBytes, err := os.ReadFile(path)
		if stdErrors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, &errors.IOError{Operation: "read", Path: path, Err: err}
		}
		return f.Load(ctx, name, wasmBytes)
	}
	return nil, &errors.ModuleNotFoundError{Name: name, Searched: []string{f.Kind()}}
}

// Load compiles and instantiates wasmBytes as the host module name.
func (f *Finder) Load(ctx context.Context, name string, wasmBytes []byte) (ports.HostModule, error) {
	compiled, err := f.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, &errors.ParseFailureError{Input: name + Extension, Kind: "wasm module", Err: err}
	}

	// Anonymous instances let the same file be reloaded after invalidation.
	// Reactor modules are initialised; command modules are not run.
	modCfg := wazero.NewModuleConfig().
		WithName("").
		WithStartFunctions("_initialize")
	if f.config.stdout != nil {
		modCfg = modCfg.WithStdout(f.config.stdout)
	}
	if f.config.stderr != nil {
		modCfg = modCfg.WithStderr(f.config.stderr)
	}

	mod, err := f.runtime.InstantiateModule(ctx, compiled, modCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate module %q: %w", name, err)
	}

	exports := compiled.ExportedFunctions()
	names := make([]string, 0, len(exports))
	for exportName := range exports {
		names = append(names, exportName)
	}
	sort.Strings(names)

	// Callables outlive the load; only the values of ctx are kept.
	callCtx := context.WithoutCancel(ctx)
	symbols := make([]ports.Symbol, 0, len(names))
	for _, exportName := range names {
		fn := mod.ExportedFunction(exportName)
		if fn == nil {
			continue
		}
		symbols = append(symbols, ports.Symbol{
			Name:  exportName,
			Value: bindFunction(callCtx, name+"."+exportName, fn),
		})
	}

	f.config.logger.DebugContext(ctx, "wasm module loaded", "name", name, "exports", len(symbols))
	return &hostModule{name: name, symbols: symbols, instance: mod}, nil
}

type hostModule struct {
	name     string
	symbols  []ports.Symbol
	instance api.Module
}

// Close releases the module instance. Its callables fail afterwards.
func (m *hostModule) Close(ctx context.Context) error {
	return m.instance.Close(ctx)
}

func (m *hostModule) Name() string {
	return m.name
}

func (m *hostModule) Symbols() []ports.Symbol {
	out := make([]ports.Symbol, len(m.symbols))
	copy(out, m.symbols)
	return out
}

// bindFunction adapts an exported WebAssembly function into a guest callable.
func bindFunction(ctx context.Context, qualified string, fn api.Function) object.Callable {
	def := fn.Definition()
	params := def.ParamTypes()
	results := def.ResultTypes()

	return func(args ...any) (any, error) {
		if len(args) != len(params) {
			return nil, &errors.ArityError{Builtin: qualified, Min: len(params), Max: len(params), Got: len(args)}
		}

		stack := make([]uint64, len(params))
		for i, vt := range params {
			v, err := encodeValue(vt, args[i])
			if err != nil {
				return nil, &errors.ArgumentTypeError{
					Builtin:  qualified,
					Position: i + 1,
					Expected: err.Error(),
					Got:      object.TypeName(args[i]),
				}
			}
			stack[i] = v
		}

		out, err := fn.Call(ctx, stack...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", qualified, err)
		}

		switch len(results) {
		case 0:
			return nil, nil
		case 1:
			return decodeValue(results[0], out[0]), nil
		default:
			l := object.NewList()
			for i, vt := range results {
				l.Append(decodeValue(vt, out[i]))
			}
			return l, nil
		}
	}
}

func encodeValue(vt api.ValueType, v any) (uint64, error) {
	switch vt {
	case api.ValueTypeI32:
		n, ok := object.ToInt64(v)
		if !ok || object.IsFloating(v) || n < math.MinInt32 || n > math.MaxUint32 {
			return 0, stdErrors.New("i32 integer")
		}
		// Values above MaxInt32 are passed as their unsigned bit pattern.
		return api.EncodeU32(uint32(n)), nil
	case api.ValueTypeI64:
		n, ok := object.ToInt64(v)
		if !ok || object.IsFloating(v) {
			return 0, stdErrors.New("i64 integer")
		}
		return api.EncodeI64(n), nil
	case api.ValueTypeF32:
		x, ok := object.ToFloat64(v)
		if !ok || (!math.IsInf(x, 0) && math.Abs(x) > math.MaxFloat32) {
			return 0, stdErrors.New("f32 number")
		}
		return api.EncodeF32(float32(x)), nil
	case api.ValueTypeF64:
		x, ok := object.ToFloat64(v)
		if !ok {
			return 0, stdErrors.New("f64 number")
		}
		return api.EncodeF64(x), nil
	default:
		return 0, fmt.Errorf("unsupported wasm type %s", api.ValueTypeName(vt))
	}
}

func decodeValue(vt api.ValueType, v uint64) any {
	switch vt {
	case api.ValueTypeI32:
		return int64(api.DecodeI32(v))
	case api.ValueTypeF32:
		return float64(api.DecodeF32(v))
	case api.ValueTypeF64:
		return api.DecodeF64(v)
	default:
		return int64(v)
	}
}
