package builtins

import (
	"context"
)

// ListBundle returns the in-place list builtins: set, append, concat, remove.
func ListBundle() Bundle {
	return NewBundle(
		Fixed("set", 3, builtinSet),
		Fixed("append", 2, builtinAppend),
		Fixed("concat", 2, builtinConcat),
		Fixed("remove", 2, builtinRemove),
	)
}

func builtinSet(ctx context.Context, args []any) (any, error) {
	l, err := ListArg(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	i, err := Int(ctx, args, 1)
	if err != nil {
		return nil, err
	}
	return nil, l.SetAt(int(i), args[2])
}

func builtinAppend(ctx context.Context, args []any) (any, error) {
	l, err := ListArg(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	l.Append(args[1])
	return nil, nil
}

func builtinConcat(ctx context.Context, args []any) (any, error) {
	l, err := ListArg(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	other, err := ListArg(ctx, args, 1)
	if err != nil {
		return nil, err
	}
	l.Extend(other)
	return nil, nil
}

func builtinRemove(ctx context.Context, args []any) (any, error) {
	l, err := ListArg(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	i, err := Int(ctx, args, 1)
	if err != nil {
		return nil, err
	}
	return nil, l.Remove(int(i))
}
