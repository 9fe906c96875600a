package queue

import "context"

// Publish synchronously delivers payload to all current subscribers of the
// topic, feeds the topic's replay buffer if one is enabled, and mirrors the
// message to sibling contexts when a broadcast transport is attached.
// Returns ErrTopicNotFound for unregistered IDs; nothing is dispatched,
// buffered or broadcast in that case.
func (q *Queue) Publish(ctx context.Context, topicID uint32, payload any) error {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return ErrQueueClosed
	}
	t := q.topicByIDLocked(topicID)
	if t == nil {
		q.mu.RUnlock()
		return ErrTopicNotFound
	}
	topicName := t.name
	mirror := q.transport != nil
	q.mu.RUnlock()

	msg := newMessage(topicID, payload, q.clientID)
	q.dispatch(ctx, msg)

	if mirror {
		q.broadcastPublish(ctx, msg, topicName)
	}
	return nil
}

// PublishAsync defers the equivalent of Publish to the instance's scheduler
// and returns a future that resolves once the deferred publish completes.
// Deferred publishes issued in program order from the same instance execute
// in that order; they interleave arbitrarily with other instances. A pending
// deferred publish cannot be cancelled.
func (q *Queue) PublishAsync(ctx context.Context, topicID uint32, payload any) *Future {
	f := newFuture()

	if !q.scheduler.Schedule(func() {
		f.complete(q.Publish(ctx, topicID, payload))
	}) {
		f.complete(ErrQueueClosed)
	}

	return f
}

// PublishBatch publishes each payload in input order with Publish semantics.
// The batch fails fast on the first error; messages already delivered are not
// rolled back (dispatch is not transactional).
func (q *Queue) PublishBatch(ctx context.Context, topicID uint32, payloads []any) error {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return ErrQueueClosed
	}
	if q.topicByIDLocked(topicID) == nil {
		q.mu.RUnlock()
		return ErrTopicNotFound
	}
	q.mu.RUnlock()

	for _, payload := range payloads {
		if err := q.Publish(ctx, topicID, payload); err != nil {
			return err
		}
	}
	return nil
}
