package trynext

// ContextProducer is implemented by types that yield items one at a time
// using external state supplied by the caller on every call.
//
// The context is borrowed for the duration of a single call. Implementations
// must not retain c after TryNextWith returns, which allows one producer to
// be driven against several independent contexts.
type ContextProducer[T, C any] interface {
	// TryNextWith attempts to produce the next item, reading and updating c
	// as needed. The three outcomes are the same as for Producer.TryNext.
	TryNextWith(c *C) (T, bool, error)
}

// ContextProducerFunc is an adapter to allow the use of plain functions as
// ContextProducer instances.
type ContextProducerFunc[T, C any] func(*C) (T, bool, error)

// TryNextWith calls f(c)
func (f ContextProducerFunc[T, C]) TryNextWith(c *C) (T, bool, error) {
	return f(c)
}
