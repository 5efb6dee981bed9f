package modules

import (
	"context"
	stdErrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yan-lang/yan-runtime/domain/errors"
	"github.com/yan-lang/yan-runtime/domain/ports"
	"github.com/yan-lang/yan-runtime/object"
)

// DataExtensions are the file extensions DataFinder looks for, in order.
// JSON documents are read by the YAML decoder.
var DataExtensions = []string{".yaml", ".yml", ".json"}

// DataFinder serves modules declared as YAML or JSON documents on a search
// path. Each top-level key becomes a symbol; mappings become objects and
// sequences become lists, keeping document order.
type DataFinder struct {
	paths []string
}

var _ ports.ModuleFinder = (*DataFinder)(nil)

// NewDataFinder creates a finder searching paths in order.
func NewDataFinder(paths ...string) *DataFinder {
	return &DataFinder{paths: paths}
}

// Kind implements ports.ModuleFinder.
func (f *DataFinder) Kind() string {
	return "data"
}

// Find implements ports.ModuleFinder.
func (f *DataFinder) Find(ctx context.Context, name string) (ports.HostModule, error) {
	for _, dir := range f.paths {
		for _, ext := range DataExtensions {
			path := filepath.Join(dir, name+ext)
			data, err := os.ReadFile(path)
			if stdErrors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, &errors.IOError{Operation: "read", Path: path, Err: err}
			}
			return DecodeModule(name, path, data)
		}
	}
	return nil, &errors.ModuleNotFoundError{Name: name, Searched: []string{f.Kind()}}
}

// DecodeModule builds a module from a YAML or JSON document whose top level
// is a mapping. source names the document in errors.
func DecodeModule(name, source string, data []byte) (*Module, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &errors.ParseFailureError{Input: source, Kind: "module", Err: err}
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind == 0 {
		// empty document
		return NewModule(name), nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, &errors.ParseFailureError{
			Input: source,
			Kind:  "module",
			Err:   fmt.Errorf("top level must be a mapping, got %s", nodeKind(root)),
		}
	}

	var symbols []ports.Symbol
	for i := 0; i+1 < len(root.Content); i += 2 {
		v, err := nodeValue(root.Content[i+1])
		if err != nil {
			return nil, &errors.ParseFailureError{Input: source, Kind: "module", Err: err}
		}
		symbols = append(symbols, ports.Symbol{Name: root.Content[i].Value, Value: v})
	}
	return NewModule(name, symbols...), nil
}

func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	case yaml.MappingNode:
		obj := object.New()
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := nodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(n.Content[i].Value, v)
		}
		return obj, nil
	case yaml.SequenceNode:
		l := object.NewList()
		for _, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return nil, err
			}
			l.Append(v)
		}
		return l, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		if i, ok := v.(int); ok {
			return int64(i), nil
		}
		if u, ok := v.(uint64); ok {
			return float64(u), nil
		}
		return v, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported node %s", n.Line, nodeKind(n))
	}
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
