package trynext

import "fmt"

// Counter produces the integers 0 through limit-1 in order.
//
// Once exhausted, a Counter stays exhausted: every further call returns
// false and a nil error. It never fails.
type Counter struct {
	current int
	limit   int
}

// NewCounter returns a Counter that yields limit items. A limit of zero
// or less yields an exhausted Counter.
func NewCounter(limit int) *Counter {
	return &Counter{limit: limit}
}

// TryNext implements Producer.
func (c *Counter) TryNext() (int, bool, error) {
	if c.current >= c.limit {
		return 0, false, nil
	}

	v := c.current
	c.current++
	return v, true, nil
}

// StepError reports the step index at which a producer failed.
type StepError struct {
	Step int
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("trynext: failure at step %d", e.Step)
}

// FailingCounter produces the integers 0 through failAt-1 and then fails.
//
// Failure is permanent. The call that reaches failAt and every call after it
// return the same *StepError value. A FailingCounter is never exhausted.
type FailingCounter struct {
	current int
	failAt  int
	err     *StepError
}

// NewFailingCounter returns a FailingCounter that fails when asked for the
// item at index failAt.
func NewFailingCounter(failAt int) *FailingCounter {
	return &FailingCounter{failAt: failAt}
}

// TryNext implements Producer.
func (c *FailingCounter) TryNext() (int, bool, error) {
	if c.err != nil {
		return 0, false, c.err
	}
	if c.current >= c.failAt {
		c.err = &StepError{Step: c.current}
		return 0, false, c.err
	}

	v := c.current
	c.current++
	return v, true, nil
}

// CallCounter is the context of a ContextCounter. Calls is incremented once
// for every TryNextWith invocation, including the ones that report exhaustion.
type CallCounter struct {
	Calls int
}

// ContextCounter produces the integers 0 through limit-1 in order and
// records each call in the CallCounter it is given.
//
// Exhaustion is terminal and it never fails. The counter position belongs to
// the producer, so driving one ContextCounter with several CallCounters
// splits a single sequence across them.
type ContextCounter struct {
	current int
	limit   int
}

// NewContextCounter returns a ContextCounter that yields limit items.
func NewContextCounter(limit int) *ContextCounter {
	return &ContextCounter{limit: limit}
}

// TryNextWith implements ContextProducer.
func (c *ContextCounter) TryNextWith(cc *CallCounter) (int, bool, error) {
	cc.Calls++
	if c.current >= c.limit {
		return 0, false, nil
	}

	v := c.current
	c.current++
	return v, true, nil
}
