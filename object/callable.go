package object

// Callable is the host representation of any guest-callable value.
type Callable func(args ...any) (any, error)

// Caller is implemented by values that can be invoked like functions, such as
// a DynamicObject acting as a constructor.
type Caller interface {
	Call(args ...any) (any, error)
}

// AsCallable adapts v into a Callable when it is one of the supported
// callable shapes.
func AsCallable(v any) (Callable, bool) {
	switch fn := v.(type) {
	case Callable:
		return fn, fn != nil
	case func(args ...any) (any, error):
		return fn, fn != nil
	case Caller:
		return fn.Call, true
	default:
		return nil, false
	}
}

// Call invokes v with args if it is callable.
func Call(v any, args ...any) (any, error) {
	fn, ok := AsCallable(v)
	if !ok {
		return nil, &notCallableError{typeName: TypeName(v)}
	}
	return fn(args...)
}

type notCallableError struct {
	typeName string
}

func (e *notCallableError) Error() string {
	return "value of type " + e.typeName + " is not callable"
}
