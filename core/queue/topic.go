package queue

import "github.com/dmitrymomot/crossbus/pkg/ringbuffer"

// subscription binds a handler to a per-topic ID. IDs increase monotonically
// within a topic and are never reused; the slice keeps registration order,
// which is also the dispatch order.
type subscription struct {
	id      uint32
	handler Handler
}

// topic is one slot in the registry. Slots are appended in registration order
// so the slice index doubles as the topic ID. Destroying a topic clears its
// subscribers and buffer but keeps the slot, so IDs stay dense and stable.
type topic struct {
	name      string
	subs      []subscription
	nextSubID uint32
	buffer    *ringbuffer.RingBuffer[Message]
}

func newTopic(name string) *topic {
	return &topic{name: name}
}

func (t *topic) subscribe(h Handler) uint32 {
	id := t.nextSubID
	t.subs = append(t.subs, subscription{id: id, handler: h})
	t.nextSubID++
	return id
}

func (t *topic) unsubscribe(subID uint32) bool {
	for i, sub := range t.subs {
		if sub.id == subID {
			t.subs = append(t.subs[:i], t.subs[i+1:]...)
			return true
		}
	}
	return false
}

// getOrCreateTopicLocked resolves a name to its topic ID, appending a new
// slot on first sight. Callers must hold q.mu.
func (q *Queue) getOrCreateTopicLocked(name string) uint32 {
	if id, ok := q.index[name]; ok {
		return id
	}
	id := uint32(len(q.topics))
	q.topics = append(q.topics, newTopic(name))
	q.index[name] = id
	return id
}

// topicByIDLocked returns the slot for id, or nil if id was never assigned.
// Callers must hold q.mu.
func (q *Queue) topicByIDLocked(id uint32) *topic {
	if int(id) >= len(q.topics) {
		return nil
	}
	return q.topics[id]
}
