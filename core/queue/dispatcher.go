package queue

import (
	"context"
	"fmt"
	"slices"

	"github.com/dmitrymomot/crossbus/core/logger"
)

// dispatch delivers msg to the topic's replay buffer and subscribers. The
// subscriber list is snapshotted under the lock and handlers run outside it,
// so handlers may mutate subscriptions mid-dispatch; such changes take effect
// for subsequent dispatch calls. Unknown topic IDs are ignored here; the
// publish pipeline validates them before constructing a message.
func (q *Queue) dispatch(ctx context.Context, msg Message) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	t := q.topicByIDLocked(msg.TopicID)
	if t == nil {
		q.mu.Unlock()
		return
	}
	if t.buffer != nil {
		// Eviction is deliberate and silent; the buffer keeps the newest
		// C messages and occupancy is observable via BufferSize.
		t.buffer.Push(msg)
	}
	snapshot := slices.Clone(t.subs)
	q.mu.Unlock()

	for _, sub := range snapshot {
		if err := q.invoke(ctx, sub, msg); err != nil {
			q.log.Error("subscriber callback failed",
				logger.Error(err),
				logger.Component("dispatcher"),
				logger.Topic(msg.TopicID),
				logger.MessageID(msg.ID),
				logger.ID("subscription_id", sub.id),
			)
		}
	}
}

// invoke runs a single handler, converting panics into errors so one failing
// subscriber cannot abort delivery to the rest.
func (q *Queue) invoke(ctx context.Context, sub subscription, msg Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return sub.handler(ctx, msg)
}
