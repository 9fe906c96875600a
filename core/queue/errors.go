package queue

import "errors"

var (
	// ErrTopicNotFound is returned when an operation references a topic ID
	// that was never registered on this instance.
	ErrTopicNotFound = errors.New("queue: topic not found")

	// ErrQueueClosed is returned by mutating operations after Close.
	ErrQueueClosed = errors.New("queue: instance is closed")

	// ErrInvalidCapacity is returned by EnableBuffer for negative capacities.
	ErrInvalidCapacity = errors.New("queue: buffer capacity must not be negative")

	// ErrFutureTimeout is returned by Future.AwaitWithTimeout when the
	// deferred publish does not complete in time.
	ErrFutureTimeout = errors.New("queue: await timed out")
)
