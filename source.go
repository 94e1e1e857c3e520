package trynext

// Producer is implemented by types that yield items one at a time, where
// producing the next item may fail.
type Producer[T any] interface {
	// TryNext attempts to produce the next item. It returns the item and
	// true on success, the zero value and false once the producer is
	// exhausted, or the zero value, false and a non-nil error on failure.
	TryNext() (T, bool, error)
}

// ProducerFunc is an adapter to allow the use of plain functions as Producer instances.
type ProducerFunc[T any] func() (T, bool, error)

// TryNext calls f()
func (f ProducerFunc[T]) TryNext() (T, bool, error) {
	return f()
}
