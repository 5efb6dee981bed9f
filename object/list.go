package object

import "fmt"

// List is a guest list. Builtins such as append and remove mutate it in
// place, so it is always handled by pointer.
type List struct {
	items []any
}

// NewList creates a list holding items.
func NewList(items ...any) *List {
	l := &List{items: make([]any, 0, len(items))}
	l.items = append(l.items, items...)
	return l
}

// Len returns the number of elements.
func (l *List) Len() int {
	return len(l.items)
}

// Items returns a copy of the elements.
func (l *List) Items() []any {
	out := make([]any, len(l.items))
	copy(out, l.items)
	return out
}

// At returns the element at index.
func (l *List) At(index int) (any, error) {
	i, err := l.normalize(index)
	if err != nil {
		return nil, err
	}
	return l.items[i], nil
}

// SetAt replaces the element at index.
func (l *List) SetAt(index int, value any) error {
	i, err := l.normalize(index)
	if err != nil {
		return err
	}
	l.items[i] = value
	return nil
}

// Append adds value at the end.
func (l *List) Append(value any) {
	l.items = append(l.items, value)
}

// Extend appends every element of other. Extending a list with itself
// doubles it.
func (l *List) Extend(other *List) {
	l.items = append(l.items, other.Items()...)
}

// Remove deletes the element at index.
func (l *List) Remove(index int) error {
	i, err := l.normalize(index)
	if err != nil {
		return err
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return nil
}

// normalize maps negative indices from the end and checks bounds.
func (l *List) normalize(index int) (int, error) {
	i := index
	if i < 0 {
		i += len(l.items)
	}
	if i < 0 || i >= len(l.items) {
		return 0, &IndexError{Index: index, Len: len(l.items)}
	}
	return i, nil
}

// String renders the list as [a, b, ...].
func (l *List) String() string {
	return Repr(l)
}

// IndexError is returned for out-of-range list access.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("list index %d out of range (length %d)", e.Index, e.Len)
}
