// Package ringbuffer provides a generic fixed-capacity circular buffer with
// O(1) push and pop operations and no per-element allocations after creation.
//
// When the buffer is full, Push evicts and returns the oldest element, making
// it suitable as a bounded replay store where the most recent N items are
// retained (e.g., message history for late subscribers).
//
// A capacity of zero is valid and degenerates to a no-op store: every pushed
// element is immediately reported as evicted and nothing is retained.
//
// Basic usage:
//
//	rb := ringbuffer.New[int](3)
//	rb.Push(1)
//	rb.Push(2)
//	rb.Push(3)
//	evicted, ok := rb.Push(4) // evicted == 1, ok == true
//	items := rb.Snapshot()    // [2, 3, 4], oldest first
//
// RingBuffer is not safe for concurrent use; callers that share a buffer
// across goroutines must provide their own synchronization.
package ringbuffer
