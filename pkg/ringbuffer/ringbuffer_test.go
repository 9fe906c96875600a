package ringbuffer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/crossbus/pkg/ringbuffer"
)

func TestNew(t *testing.T) {
	t.Parallel()

	rb := ringbuffer.New[int](10)
	assert.Equal(t, 10, rb.Cap())
	assert.Equal(t, 0, rb.Len())
	assert.True(t, rb.IsEmpty())
	assert.False(t, rb.IsFull())
}

func TestNew_NegativeCapacity(t *testing.T) {
	t.Parallel()

	rb := ringbuffer.New[int](-5)
	assert.Equal(t, 0, rb.Cap())
}

func TestPushPop(t *testing.T) {
	t.Parallel()

	rb := ringbuffer.New[string](3)

	_, evicted := rb.Push("a")
	assert.False(t, evicted)
	_, evicted = rb.Push("b")
	assert.False(t, evicted)
	assert.Equal(t, 2, rb.Len())

	item, ok := rb.Pop()
	require.True(t, ok)
	assert.Equal(t, "a", item)
	assert.Equal(t, 1, rb.Len())

	item, ok = rb.Peek()
	require.True(t, ok)
	assert.Equal(t, "b", item)
	assert.Equal(t, 1, rb.Len(), "peek must not remove")
}

func TestPush_EvictsOldest(t *testing.T) {
	t.Parallel()

	rb := ringbuffer.New[int](2)
	rb.Push(1)
	rb.Push(2)

	evicted, ok := rb.Push(3)
	require.True(t, ok)
	assert.Equal(t, 1, evicted)
	assert.Equal(t, 2, rb.Len())

	front, ok := rb.Peek()
	require.True(t, ok)
	assert.Equal(t, 2, front)

	back, ok := rb.PeekBack()
	require.True(t, ok)
	assert.Equal(t, 3, back)
}

func TestPush_ZeroCapacity(t *testing.T) {
	t.Parallel()

	rb := ringbuffer.New[int](0)

	evicted, ok := rb.Push(42)
	require.True(t, ok, "zero-capacity push must evict the pushed item")
	assert.Equal(t, 42, evicted)
	assert.Equal(t, 0, rb.Len())
	assert.Empty(t, rb.Snapshot())

	_, ok = rb.Pop()
	assert.False(t, ok)
	_, ok = rb.Peek()
	assert.False(t, ok)
}

func TestPop_Empty(t *testing.T) {
	t.Parallel()

	rb := ringbuffer.New[int](3)
	_, ok := rb.Pop()
	assert.False(t, ok)
	_, ok = rb.Peek()
	assert.False(t, ok)
	_, ok = rb.PeekBack()
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	t.Parallel()

	rb := ringbuffer.New[int](3)
	rb.Push(1)
	rb.Push(2)

	assert.Equal(t, 2, rb.Clear())
	assert.True(t, rb.IsEmpty())
	assert.Equal(t, 0, rb.Clear())

	// Buffer remains usable after clear.
	rb.Push(7)
	item, ok := rb.Peek()
	require.True(t, ok)
	assert.Equal(t, 7, item)
}

func TestSnapshot_OldestToNewest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		capacity int
		pushes   []int
		want     []int
	}{
		{
			name:     "under capacity",
			capacity: 5,
			pushes:   []int{1, 2, 3},
			want:     []int{1, 2, 3},
		},
		{
			name:     "exactly at capacity",
			capacity: 3,
			pushes:   []int{1, 2, 3},
			want:     []int{1, 2, 3},
		},
		{
			name:     "wrapped past capacity",
			capacity: 3,
			pushes:   []int{1, 2, 3, 4, 5},
			want:     []int{3, 4, 5},
		},
		{
			name:     "keeps last C of long sequence",
			capacity: 5,
			pushes:   []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
			want:     []int{5, 6, 7, 8, 9},
		},
		{
			name:     "empty",
			capacity: 3,
			pushes:   nil,
			want:     []int{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rb := ringbuffer.New[int](tt.capacity)
			for _, v := range tt.pushes {
				rb.Push(v)
			}
			assert.Equal(t, tt.want, rb.Snapshot())
			assert.Equal(t, min(len(tt.pushes), tt.capacity), rb.Len())
		})
	}
}

func TestPushPop_Interleaved(t *testing.T) {
	t.Parallel()

	rb := ringbuffer.New[int](3)
	rb.Push(1)
	rb.Push(2)
	rb.Pop()
	rb.Push(3)
	rb.Push(4)

	// Buffer is full again and wrapped around the backing array.
	evicted, ok := rb.Push(5)
	require.True(t, ok)
	assert.Equal(t, 2, evicted)
	assert.Equal(t, []int{3, 4, 5}, rb.Snapshot())
}
