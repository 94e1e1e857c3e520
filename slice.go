package trynext

// Slice produces the elements of a slice in order.
//
// Exhaustion is terminal and it never fails. The slice is not copied, so
// changes to elements that have not been produced yet are visible.
type Slice[T any] struct {
	items []T
	index int
}

// NewSlice returns a Slice producing items.
func NewSlice[T any](items []T) *Slice[T] {
	return &Slice[T]{items: items}
}

// TryNext implements Producer.
func (s *Slice[T]) TryNext() (T, bool, error) {
	if s.index >= len(s.items) {
		var zero T
		return zero, false, nil
	}

	v := s.items[s.index]
	s.index++
	return v, true, nil
}

// Remaining returns the number of items left to produce.
func (s *Slice[T]) Remaining() int {
	return len(s.items) - s.index
}
