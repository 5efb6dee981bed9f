// Command yanrt inspects the yan host runtime: its builtin catalogue, the
// modules it can resolve and its configuration schema.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	yan "github.com/yan-lang/yan-runtime"
	"github.com/yan-lang/yan-runtime/builtins"
	"github.com/yan-lang/yan-runtime/config"
	"github.com/yan-lang/yan-runtime/domain/errors"
	wasmfinder "github.com/yan-lang/yan-runtime/infrastructure/wazero"
	"github.com/yan-lang/yan-runtime/modules"
	"github.com/yan-lang/yan-runtime/object"
	"github.com/yan-lang/yan-runtime/stdlib"
)

const usage = `usage: yanrt [flags] <command> [args]

commands:
  builtins       list the builtin catalogue
  modules        list builtin tags and host modules on the module path
  symbols NAME   list the public symbols of a module
  import NAME    resolve NAME (module or module.attr) and print it
  schema         print the configuration JSON Schema

flags:
`

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fset := flag.NewFlagSet("yanrt", flag.ContinueOnError)
	fset.SetOutput(stderr)
	configPath := fset.String("config", "", "path to a YAML or JSON configuration file")
	logLevel := fset.String("log-level", "", "override log.level (debug, info, warn, error)")
	fset.Usage = func() {
		fmt.Fprint(stderr, usage)
		fset.PrintDefaults()
	}
	if err := fset.Parse(args); err != nil {
		return 2
	}

	rest := fset.Args()
	if len(rest) == 0 {
		fset.Usage()
		return 2
	}
	cmd, cmdArgs := rest[0], rest[1:]

	if cmd == "schema" {
		b, err := config.Schema()
		if err != nil {
			return fail(stderr, err)
		}
		fmt.Fprintln(stdout, string(b))
		return 0
	}

	cfg, err := loadConfig(*configPath, *logLevel)
	if err != nil {
		return fail(stderr, err)
	}

	rt, err := yan.New(ctx, yan.WithConfig(cfg), yan.WithStdio(os.Stdin, stdout, stderr))
	if err != nil {
		return fail(stderr, err)
	}
	defer rt.Close(ctx)

	switch cmd {
	case "builtins":
		err = listBuiltins(stdout, rt)
	case "modules":
		err = listModules(stdout, cfg)
	case "symbols":
		if len(cmdArgs) != 1 {
			fmt.Fprintln(stderr, "usage: yanrt symbols NAME")
			return 2
		}
		err = listSymbols(ctx, stdout, rt, cmdArgs[0])
	case "import":
		if len(cmdArgs) != 1 {
			fmt.Fprintln(stderr, "usage: yanrt import NAME")
			return 2
		}
		err = printImport(ctx, stdout, rt, cmdArgs[0])
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		fset.Usage()
		return 2
	}
	if err != nil {
		return fail(stderr, err)
	}
	return 0
}

func loadConfig(path, level string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if level != "" {
		cfg.Log.Level = level
		if err := config.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// fail prints err as a structured detail on stderr.
func fail(stderr io.Writer, err error) int {
	b, merr := json.Marshal(errors.ToErrorDetail(err))
	if merr != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	fmt.Fprintln(stderr, string(b))
	return 1
}

func listBuiltins(w io.Writer, rt *yan.Runtime) error {
	fmt.Fprintf(w, "catalogue %s\n", builtins.CatalogueVersion)
	for _, name := range rt.Builtins() {
		fmt.Fprintln(w, name)
	}
	return nil
}

func listModules(w io.Writer, cfg *config.Config) error {
	for _, tag := range stdlib.Tags {
		fmt.Fprintf(w, "%-10s builtin\n", tag)
	}

	data, err := modules.Discover(cfg.ModulePaths, modules.DataExtensions...)
	if err != nil {
		return err
	}
	for _, name := range data {
		fmt.Fprintf(w, "%-10s data\n", name)
	}

	if cfg.Wasm.Enabled {
		wasm, err := modules.Discover(cfg.ModulePaths, wasmfinder.Extension)
		if err != nil {
			return err
		}
		for _, name := range wasm {
			fmt.Fprintf(w, "%-10s wasm\n", name)
		}
	}
	return nil
}

func listSymbols(ctx context.Context, w io.Writer, rt *yan.Runtime, name string) error {
	if strings.Contains(name, ".") {
		return &errors.InvalidImportSpecificationError{Name: name, Reason: "symbols takes a module name"}
	}
	v, err := rt.Resolver().Import(ctx, name)
	if err != nil {
		return err
	}
	ns, ok := v.(*object.DynamicObject)
	if !ok {
		return fmt.Errorf("module %q did not resolve to a namespace", name)
	}
	ns.Each(func(sym string, value any) bool {
		fmt.Fprintf(w, "%s\t%s\n", sym, object.TypeName(value))
		return true
	})
	return nil
}

func printImport(ctx context.Context, w io.Writer, rt *yan.Runtime, name string) error {
	v, err := rt.Invoke(ctx, "import", name)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, object.Repr(v))
	return nil
}
