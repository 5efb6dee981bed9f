// Package object implements the guest-visible value model: map-backed
// dynamic objects with the __cls__/__init__ construction protocol, in-place
// mutable lists, and explicit namespaces (scopes).
package object

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/yan-lang/yan-runtime/domain/errors"
)

// Keys of the construction protocol.
const (
	ClassKey = "__cls__"
	InitKey  = "__init__"
)

// DynamicObject is an ordered mapping from attribute name to value.
// Attribute access is exactly lookup/insert on the backing map; there is no
// other storage. Two objects are the same entity iff they are the same
// pointer.
type DynamicObject struct {
	attrs *orderedmap.OrderedMap[string, any]
}

// New creates an empty object.
func New() *DynamicObject {
	return &DynamicObject{attrs: orderedmap.New[string, any]()}
}

// FromPairs creates an object pre-populated with alternating name/value
// pairs. It panics if a name is not a string or a value is missing.
func FromPairs(pairs ...any) *DynamicObject {
	if len(pairs)%2 != 0 {
		panic("object.FromPairs: odd number of arguments")
	}
	o := New()
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			panic("object.FromPairs: attribute name must be a string")
		}
		o.Set(name, pairs[i+1])
	}
	return o
}

// Get returns the value bound to name or an AttributeMissingError.
// Resolution is single-level: no defaults, no inheritance.
func (o *DynamicObject) Get(name string) (any, error) {
	v, ok := o.attrs.Get(name)
	if !ok {
		return nil, &errors.AttributeMissingError{Name: name}
	}
	return v, nil
}

// Set inserts or overwrites name. Overwriting keeps the key's position.
func (o *DynamicObject) Set(name string, value any) {
	o.attrs.Set(name, value)
}

// Has reports whether name is bound.
func (o *DynamicObject) Has(name string) bool {
	_, ok := o.attrs.Get(name)
	return ok
}

// Delete removes name and reports whether it was bound.
func (o *DynamicObject) Delete(name string) bool {
	_, ok := o.attrs.Delete(name)
	return ok
}

// Len returns the number of attributes.
func (o *DynamicObject) Len() int {
	return o.attrs.Len()
}

// Keys returns attribute names in insertion order.
func (o *DynamicObject) Keys() []string {
	keys := make([]string, 0, o.attrs.Len())
	for p := o.attrs.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// Values returns attribute values in insertion order.
func (o *DynamicObject) Values() []any {
	values := make([]any, 0, o.attrs.Len())
	for p := o.attrs.Oldest(); p != nil; p = p.Next() {
		values = append(values, p.Value)
	}
	return values
}

// Each calls fn for every attribute in insertion order until fn returns false.
func (o *DynamicObject) Each(fn func(name string, value any) bool) {
	for p := o.attrs.Oldest(); p != nil; p = p.Next() {
		if !fn(p.Key, p.Value) {
			return
		}
	}
}

// IsConstructible reports whether o carries both construction markers.
func (o *DynamicObject) IsConstructible() bool {
	return o.Has(ClassKey) && o.Has(InitKey)
}

// Construct runs the construction protocol: __init__ is invoked with o as the
// receiver followed by args, its result is discarded, and o itself is
// returned. Nothing is allocated and o is not touched when the markers are
// missing.
func (o *DynamicObject) Construct(args ...any) (*DynamicObject, error) {
	if !o.IsConstructible() {
		return nil, &errors.NotConstructibleError{Keys: o.Keys()}
	}

	initValue, _ := o.attrs.Get(InitKey)
	initFn, ok := AsCallable(initValue)
	if !ok {
		return nil, &errors.NotConstructibleError{
			Keys:   o.Keys(),
			Reason: "__init__ is not callable",
		}
	}

	callArgs := make([]any, 0, len(args)+1)
	callArgs = append(callArgs, o)
	callArgs = append(callArgs, args...)
	if _, err := initFn(callArgs...); err != nil {
		return nil, err
	}
	return o, nil
}

// Call makes a DynamicObject usable wherever a Caller is expected; calling an
// object means constructing it.
func (o *DynamicObject) Call(args ...any) (any, error) {
	obj, err := o.Construct(args...)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// Class returns the value of the __cls__ marker, if any.
func (o *DynamicObject) Class() (any, bool) {
	return o.attrs.Get(ClassKey)
}

// String renders the object as {name: value, ...} in insertion order.
func (o *DynamicObject) String() string {
	return Repr(o)
}

// Same reports reference identity. Equal contents do not make two objects
// the same entity.
func Same(a, b *DynamicObject) bool {
	return a == b
}
