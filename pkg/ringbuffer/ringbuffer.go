package ringbuffer

// RingBuffer is a fixed-capacity circular FIFO buffer.
// The zero value is not usable; create instances with New.
type RingBuffer[T any] struct {
	buf      []T
	capacity int
	size     int
	front    int
	rear     int
}

// New creates a ring buffer holding at most capacity elements.
// Negative capacities are treated as zero.
func New[T any](capacity int) *RingBuffer[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &RingBuffer[T]{
		buf:      make([]T, capacity),
		capacity: capacity,
	}
}

// Len returns the current number of elements in the buffer.
func (rb *RingBuffer[T]) Len() int {
	return rb.size
}

// Cap returns the maximum capacity of the buffer.
func (rb *RingBuffer[T]) Cap() int {
	return rb.capacity
}

// IsEmpty reports whether the buffer holds no elements.
func (rb *RingBuffer[T]) IsEmpty() bool {
	return rb.size == 0
}

// IsFull reports whether the buffer is at capacity.
func (rb *RingBuffer[T]) IsFull() bool {
	return rb.size == rb.capacity
}

// Push appends item to the buffer. If the buffer was full, the oldest
// element is evicted and returned with ok=true; otherwise the zero value
// and ok=false. With capacity zero the pushed item itself is returned.
func (rb *RingBuffer[T]) Push(item T) (evicted T, ok bool) {
	if rb.capacity == 0 {
		return item, true
	}

	if rb.IsFull() {
		evicted = rb.buf[rb.front]
		ok = true
		var zero T
		rb.buf[rb.front] = zero
		rb.front = (rb.front + 1) % rb.capacity
		rb.size--
	}

	rb.buf[rb.rear] = item
	rb.rear = (rb.rear + 1) % rb.capacity
	rb.size++

	return evicted, ok
}

// Pop removes and returns the oldest element, or ok=false if empty.
func (rb *RingBuffer[T]) Pop() (item T, ok bool) {
	if rb.IsEmpty() {
		return item, false
	}

	item = rb.buf[rb.front]
	var zero T
	rb.buf[rb.front] = zero
	rb.front = (rb.front + 1) % rb.capacity
	rb.size--

	return item, true
}

// Peek returns the oldest element without removing it, or ok=false if empty.
func (rb *RingBuffer[T]) Peek() (item T, ok bool) {
	if rb.IsEmpty() {
		return item, false
	}
	return rb.buf[rb.front], true
}

// PeekBack returns the newest element without removing it, or ok=false if empty.
func (rb *RingBuffer[T]) PeekBack() (item T, ok bool) {
	if rb.IsEmpty() {
		return item, false
	}
	idx := rb.rear - 1
	if idx < 0 {
		idx = rb.capacity - 1
	}
	return rb.buf[idx], true
}

// Clear empties the buffer and returns the number of elements removed.
func (rb *RingBuffer[T]) Clear() int {
	removed := rb.size
	clear(rb.buf)
	rb.size = 0
	rb.front = 0
	rb.rear = 0
	return removed
}

// Snapshot returns the buffered elements oldest-to-newest without mutating
// the buffer. The returned slice is owned by the caller.
func (rb *RingBuffer[T]) Snapshot() []T {
	out := make([]T, 0, rb.size)
	for i := 0; i < rb.size; i++ {
		out = append(out, rb.buf[(rb.front+i)%rb.capacity])
	}
	return out
}
