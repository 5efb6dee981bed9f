package stdlib

import (
	"context"
	stdErrors "errors"

	"github.com/yan-lang/yan-runtime/builtins"
	"github.com/yan-lang/yan-runtime/domain/errors"
	"github.com/yan-lang/yan-runtime/hostio"
	"github.com/yan-lang/yan-runtime/object"
)

// FileObjectClass is the __cls__ value of objects returned by fs.Open.
const FileObjectClass = "FileObject"

var errDanglingFile = stdErrors.New("dangling file reference")

// fileTable maps guest file objects back to their host handles.
type fileTable struct {
	open map[*object.DynamicObject]*hostio.FileObject
}

// FSBundle returns the fs module. Files opened through it stay open until
// fs.Close is called on them.
func FSBundle() builtins.Bundle {
	files := &fileTable{open: make(map[*object.DynamicObject]*hostio.FileObject)}

	return builtins.NewBundle(
		builtins.Ranged("Open", 1, 2, files.openFile),
		builtins.Fixed("Close", 1, files.closeFile),
		pathQuery("Exists", func(p string) (any, error) { return hostio.Exists(p) }),
		pathQuery("GetFileSize", func(p string) (any, error) { return hostio.FileSize(p) }),
		pathQuery("GetFreeSpace", func(p string) (any, error) { return hostio.FreeSpace(p) }),
		pathQuery("GetFilePermissions", func(p string) (any, error) { return hostio.FilePermissions(p) }),
		pathQuery("GetFileType", func(p string) (any, error) { return hostio.FileType(p) }),
		pathQuery("ListDirectory", func(p string) (any, error) {
			names, err := hostio.ListDirectory(p)
			if err != nil {
				return nil, err
			}
			return stringList(names), nil
		}),
		pathQuery("GetLastWriteTime", func(p string) (any, error) { return hostio.LastWriteTime(p) }),
		pathQuery("GetHardLinksCount", func(p string) (any, error) { return hostio.HardLinkCount(p) }),
	)
}

func pathQuery(name string, fn func(path string) (any, error)) builtins.Builtin {
	return builtins.Fixed(name, 1, func(ctx context.Context, args []any) (any, error) {
		path, err := builtins.String(ctx, args, 0)
		if err != nil {
			return nil, err
		}
		return fn(path)
	})
}

func (t *fileTable) openFile(ctx context.Context, args []any) (any, error) {
	path, err := builtins.String(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	mode, err := builtins.OptionalString(ctx, args, 1, hostio.ModeRead)
	if err != nil {
		return nil, err
	}

	fo, err := hostio.Open(path, mode)
	if err != nil {
		return nil, err
	}
	obj := newFileObject(fo)
	t.open[obj] = fo
	return obj, nil
}

func (t *fileTable) closeFile(ctx context.Context, args []any) (any, error) {
	obj, ok := args[0].(*object.DynamicObject)
	if !ok {
		return nil, &errors.ArgumentTypeError{
			Builtin:  builtins.FunctionName(ctx),
			Position: 1,
			Expected: FileObjectClass,
			Got:      object.TypeName(args[0]),
		}
	}
	fo, ok := t.open[obj]
	if !ok {
		name, _ := obj.Get("name")
		path, _ := name.(string)
		return nil, &errors.IOError{Operation: "close", Path: path, Err: errDanglingFile}
	}
	delete(t.open, obj)
	return nil, fo.Close()
}

// newFileObject exposes fo to guests as an object with bound methods.
func newFileObject(fo *hostio.FileObject) *object.DynamicObject {
	return object.FromPairs(
		object.ClassKey, FileObjectClass,
		"name", fo.Name(),
		"mode", fo.Mode(),
		"read", object.Callable(func(args ...any) (any, error) {
			return fo.Read()
		}),
		"write", object.Callable(func(args ...any) (any, error) {
			if len(args) != 1 {
				return nil, &errors.ArityError{Builtin: "FileObject.write", Min: 1, Max: 1, Got: len(args)}
			}
			s, ok := args[0].(string)
			if !ok {
				return nil, &errors.ArgumentTypeError{
					Builtin:  "FileObject.write",
					Position: 1,
					Expected: "string",
					Got:      object.TypeName(args[0]),
				}
			}
			return nil, fo.Write(s)
		}),
		"readLines", object.Callable(func(args ...any) (any, error) {
			lines, err := fo.ReadLines()
			if err != nil {
				return nil, err
			}
			return stringList(lines), nil
		}),
		"readBuf", object.Callable(func(args ...any) (any, error) {
			return fo.ReadBuf(1)
		}),
		"length", object.Callable(func(args ...any) (any, error) {
			return fo.Length()
		}),
		"isEOF", object.Callable(func(args ...any) (any, error) {
			return fo.IsEOF()
		}),
	)
}
