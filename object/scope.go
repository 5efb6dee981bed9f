package object

import orderedmap "github.com/wk8/go-ordered-map/v2"

// Scope is an explicit, mutable namespace. The module resolver receives the
// caller's scope by reference and splices bindings into it.
type Scope struct {
	bindings *orderedmap.OrderedMap[string, any]
}

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{bindings: orderedmap.New[string, any]()}
}

// Bind inserts or overwrites a binding.
func (s *Scope) Bind(name string, value any) {
	s.bindings.Set(name, value)
}

// Lookup returns the value bound to name.
func (s *Scope) Lookup(name string) (any, bool) {
	return s.bindings.Get(name)
}

// Has reports whether name is bound.
func (s *Scope) Has(name string) bool {
	_, ok := s.bindings.Get(name)
	return ok
}

// Unbind removes name from the scope.
func (s *Scope) Unbind(name string) bool {
	_, ok := s.bindings.Delete(name)
	return ok
}

// Names returns bound names in binding order.
func (s *Scope) Names() []string {
	names := make([]string, 0, s.bindings.Len())
	for p := s.bindings.Oldest(); p != nil; p = p.Next() {
		names = append(names, p.Key)
	}
	return names
}

// Len returns the number of bindings.
func (s *Scope) Len() int {
	return s.bindings.Len()
}
