package queue

import (
	"sync"
	"time"
)

// Future represents the result of a deferred publish. It resolves exactly
// once, when the scheduled publish has run to completion.
type Future struct {
	err  error
	once sync.Once
	done chan struct{}
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func (f *Future) complete(err error) {
	f.once.Do(func() {
		f.err = err
		close(f.done)
	})
}

// Await blocks until the deferred publish completes and returns its error.
func (f *Future) Await() error {
	<-f.done
	return f.err
}

// AwaitWithTimeout waits for completion up to the given timeout. If the
// timeout elapses first, ErrFutureTimeout is returned; the publish itself
// still runs, it cannot be cancelled once scheduled.
func (f *Future) AwaitWithTimeout(timeout time.Duration) error {
	select {
	case <-f.done:
		return f.err
	case <-time.After(timeout):
		return ErrFutureTimeout
	}
}

// IsComplete reports without blocking whether the deferred publish finished.
func (f *Future) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// AwaitAll waits for all futures to complete and returns the first error
// encountered, if any.
func AwaitAll(futures ...*Future) error {
	for _, f := range futures {
		if err := f.Await(); err != nil {
			return err
		}
	}
	return nil
}
