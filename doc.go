// Package trynext defines a minimal contract for synchronous, fallible,
// pull-based item production.
//
// A producer is asked, one call at a time, for the next item. Every call
// returns exactly one of three outcomes:
//
//	item, true, nil     an item was produced
//	zero, false, nil    no more items (the producer is exhausted)
//	zero, false, err    producing the next item failed
//
// Producer is the context-free form. ContextProducer additionally receives
// a pointer to caller-owned state on every call; the producer may read and
// write that state while the call runs but never keeps the pointer.
//
// The contract says nothing about what happens after exhaustion or after an
// error. Every producer in this package documents its own policy, and
// callers of third-party producers should check theirs.
//
// There are no adapters or drain helpers. Callers write the loop:
//
//	c := trynext.NewCounter(3)
//	for {
//		v, ok, err := c.TryNext()
//		if err != nil {
//			return err
//		}
//		if !ok {
//			break
//		}
//		fmt.Println(v)
//	}
//
// Calls block until they return. A producer is owned by a single caller at a
// time and is not safe for concurrent use unless its documentation says so.
// Asynchronous sources belong in a different abstraction.
package trynext
