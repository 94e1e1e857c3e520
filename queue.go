package trynext

import "github.com/caffix/queue"

// Queue produces items in the order they were appended.
//
// Exhaustion is not terminal. When the queue is empty TryNext reports
// exhaustion, and items appended later are produced by subsequent calls.
// A Queue never fails.
//
// Append and Len are safe for concurrent use. TryNext must only be called by
// the owner of the Queue.
type Queue[T any] struct {
	q queue.Queue
}

// NewQueue returns a Queue holding the provided items.
func NewQueue[T any](items ...T) *Queue[T] {
	q := &Queue[T]{q: queue.NewQueue()}
	q.Append(items...)
	return q
}

// Append adds items to the end of the queue.
func (q *Queue[T]) Append(items ...T) {
	for _, item := range items {
		q.q.Append(item)
	}
}

// Len returns the number of items waiting to be produced.
func (q *Queue[T]) Len() int {
	return q.q.Len()
}

// Signal returns a channel that receives a value when items are appended.
// An owner that observed exhaustion can wait on it before calling TryNext again.
func (q *Queue[T]) Signal() <-chan struct{} {
	return q.q.Signal()
}

// TryNext implements Producer.
func (q *Queue[T]) TryNext() (T, bool, error) {
	e, ok := q.q.Next()
	if !ok {
		var zero T
		return zero, false, nil
	}
	// Only a nil interface value fails the assertion, and zero is its value
	v, _ := e.(T)
	return v, true, nil
}
