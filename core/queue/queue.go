package queue

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/crossbus/core/logger"
	"github.com/dmitrymomot/crossbus/pkg/broadcast"
	"github.com/dmitrymomot/crossbus/pkg/ringbuffer"
)

// DefaultBufferCapacity is the conventional replay buffer capacity for
// EnableBuffer when a caller has no specific sizing requirement.
const DefaultBufferCapacity = 100

// Queue is a topic-based pub/sub router. Create instances with New; the zero
// value is not usable. All methods are safe for concurrent use.
type Queue struct {
	mu       sync.RWMutex
	topics   []*topic
	index    map[string]uint32
	seen     map[string]struct{}
	closed   bool
	clientID string

	log       *slog.Logger
	transport broadcast.Transport
	scheduler Scheduler
	ownSched  *serialScheduler

	bridgeCancel context.CancelFunc
	bridgeDone   chan struct{}
}

// New creates a queue instance with a fresh unique client ID.
//
// Without a broadcast option the queue is local-only. With WithChannelName or
// WithBroadcast, every local publish is mirrored to sibling instances on the
// same channel and inbound sibling traffic is dispatched locally. A nil
// transport degrades silently to local-only operation, so a failed transport
// constructor can be passed through without special-casing:
//
//	q := queue.New(
//		queue.WithChannelName("app-events"),
//		queue.WithLogger(logger),
//	)
//	defer q.Close()
func New(opts ...Option) *Queue {
	q := &Queue{
		index:    make(map[string]uint32),
		seen:     make(map[string]struct{}),
		clientID: uuid.New().String(),
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(q)
	}

	if q.scheduler == nil {
		q.ownSched = newSerialScheduler()
		q.scheduler = q.ownSched
	}

	if q.transport != nil {
		q.startBridge()
	}

	return q
}

// ClientID returns the process-unique identifier of this instance. It is
// stamped on every message this instance originates.
func (q *Queue) ClientID() string {
	return q.clientID
}

// RegisterTopic resolves a topic name to its stable ID, creating the topic on
// first registration. IDs are dense (0, 1, 2, ... in registration order) and
// never reused; registering a known name returns the existing ID. On a closed
// instance RegisterTopic is a no-op returning 0.
func (q *Queue) RegisterTopic(name string) uint32 {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return 0
	}
	return q.getOrCreateTopicLocked(name)
}

// CreateTopic registers the topic name and reports whether it was new.
func (q *Queue) CreateTopic(name string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	if _, exists := q.index[name]; exists {
		return false
	}
	q.getOrCreateTopicLocked(name)
	return true
}

// HasTopic reports whether the topic ID was ever assigned on this instance.
// Soft-deleted topics still exist.
func (q *Queue) HasTopic(topicID uint32) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.topicByIDLocked(topicID) != nil
}

// TopicExists reports whether the topic name is registered on this instance.
func (q *Queue) TopicExists(name string) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	_, ok := q.index[name]
	return ok
}

// TopicCount returns the number of ever-registered topics, including
// soft-deleted ones.
func (q *Queue) TopicCount() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.topics)
}

// DestroyTopic soft-deletes a topic: subscribers are cleared and the replay
// buffer is discarded, but the name-to-ID slot is retained so the ID space
// and external references stay valid. Returns false for unknown IDs.
func (q *Queue) DestroyTopic(topicID uint32) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	t := q.topicByIDLocked(topicID)
	if t == nil {
		return false
	}
	t.subs = nil
	t.buffer = nil
	return true
}

// Subscribe registers a handler on the topic and returns its subscription ID,
// unique within the topic. Handlers are dispatched in registration order.
func (q *Queue) Subscribe(topicID uint32, h Handler) (uint32, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return 0, ErrQueueClosed
	}
	t := q.topicByIDLocked(topicID)
	if t == nil {
		return 0, ErrTopicNotFound
	}
	return t.subscribe(h), nil
}

// Unsubscribe removes a subscription. It is idempotent: removing an unknown
// subscription or topic returns false without side effects. A handler may
// unsubscribe itself mid-dispatch; removal takes effect for subsequent
// deliveries.
func (q *Queue) Unsubscribe(topicID, subID uint32) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	t := q.topicByIDLocked(topicID)
	if t == nil {
		return false
	}
	return t.unsubscribe(subID)
}

// UnsubscribeAll removes every subscription from the topic and returns how
// many were removed.
func (q *Queue) UnsubscribeAll(topicID uint32) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return 0
	}
	t := q.topicByIDLocked(topicID)
	if t == nil {
		return 0
	}
	count := len(t.subs)
	t.subs = nil
	return count
}

// SubscriberCount returns the number of live subscriptions on the topic,
// or zero for unknown IDs.
func (q *Queue) SubscriberCount(topicID uint32) int {
	q.mu.RLock()
	defer q.mu.RUnlock()

	t := q.topicByIDLocked(topicID)
	if t == nil {
		return 0
	}
	return len(t.subs)
}

// EnableBuffer attaches a replay buffer of the given capacity to the topic,
// replacing any existing buffer and its contents. Capacity zero is a valid
// degenerate store that retains nothing; negative capacity is rejected.
// Use DefaultBufferCapacity when no specific sizing is needed.
func (q *Queue) EnableBuffer(topicID uint32, capacity int) error {
	if capacity < 0 {
		return ErrInvalidCapacity
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}
	t := q.topicByIDLocked(topicID)
	if t == nil {
		return ErrTopicNotFound
	}
	t.buffer = ringbuffer.New[Message](capacity)
	return nil
}

// DisableBuffer detaches the topic's replay buffer, discarding its contents.
func (q *Queue) DisableBuffer(topicID uint32) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}
	t := q.topicByIDLocked(topicID)
	if t == nil {
		return ErrTopicNotFound
	}
	t.buffer = nil
	return nil
}

// HasBuffer reports whether the topic currently has a replay buffer.
func (q *Queue) HasBuffer(topicID uint32) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	t := q.topicByIDLocked(topicID)
	return t != nil && t.buffer != nil
}

// BufferSize returns the number of messages currently buffered for the topic,
// or zero when the topic is unknown or has no buffer.
func (q *Queue) BufferSize(topicID uint32) int {
	q.mu.RLock()
	defer q.mu.RUnlock()

	t := q.topicByIDLocked(topicID)
	if t == nil || t.buffer == nil {
		return 0
	}
	return t.buffer.Len()
}

// BufferCapacity returns the topic's replay buffer capacity, or zero when the
// topic is unknown or has no buffer.
func (q *Queue) BufferCapacity(topicID uint32) int {
	q.mu.RLock()
	defer q.mu.RUnlock()

	t := q.topicByIDLocked(topicID)
	if t == nil || t.buffer == nil {
		return 0
	}
	return t.buffer.Cap()
}

// BufferedMessages returns the buffered payloads oldest-to-newest, or an
// empty slice when the topic is unknown or has no buffer.
func (q *Queue) BufferedMessages(topicID uint32) []any {
	q.mu.RLock()
	defer q.mu.RUnlock()

	t := q.topicByIDLocked(topicID)
	if t == nil || t.buffer == nil {
		return []any{}
	}

	msgs := t.buffer.Snapshot()
	payloads := make([]any, len(msgs))
	for i, msg := range msgs {
		payloads[i] = msg.Payload
	}
	return payloads
}

// ClearBuffer empties the topic's replay buffer and returns the number of
// messages removed; zero when the topic is unknown or has no buffer.
func (q *Queue) ClearBuffer(topicID uint32) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return 0
	}
	t := q.topicByIDLocked(topicID)
	if t == nil || t.buffer == nil {
		return 0
	}
	return t.buffer.Clear()
}

// Close shuts the instance down: the broadcast channel handle is released,
// all topics, buffers and the duplicate-suppression set are cleared, and the
// internal scheduler is drained. After Close, queries return zero values and
// mutating calls report ErrQueueClosed. Close is idempotent.
func (q *Queue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	tr := q.transport
	q.transport = nil
	q.topics = nil
	q.index = make(map[string]uint32)
	q.seen = make(map[string]struct{})
	q.mu.Unlock()

	if q.bridgeCancel != nil {
		q.bridgeCancel()
	}
	if tr != nil {
		if err := tr.Close(); err != nil {
			q.log.Error("failed to close broadcast channel",
				logger.Error(err), logger.Component("bridge"))
		}
	}
	if q.bridgeDone != nil {
		<-q.bridgeDone
	}
	if q.ownSched != nil {
		q.ownSched.stop()
	}
	return nil
}
