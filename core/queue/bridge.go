package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrymomot/crossbus/core/logger"
)

// Wire format: a two-element JSON array [kind, body]. Kind 0 carries a single
// publish envelope, kind 1 a sync request (the requester's client ID), kind 2
// a sync response (a list of envelopes replaying buffered history). Unknown
// kinds are ignored for forward compatibility.
const (
	frameKindPublish      = 0
	frameKindSyncRequest  = 1
	frameKindSyncResponse = 2
)

// envelope is the cross-context representation of a message. Topics travel
// by name, not ID: IDs are private per instance and two instances may assign
// different IDs to the same name.
type envelope struct {
	ID        string `json:"id"`
	TopicName string `json:"topic_name"`
	OriginID  string `json:"origin_id"`
	Payload   any    `json:"payload"`
	Timestamp int64  `json:"timestamp"`
}

func encodeFrame(kind int, body any) ([]byte, error) {
	return json.Marshal([2]any{kind, body})
}

func decodeFrame(frame []byte) (kind int, body json.RawMessage, err error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(frame, &parts); err != nil {
		return 0, nil, fmt.Errorf("malformed frame: %w", err)
	}
	if len(parts) != 2 {
		return 0, nil, fmt.Errorf("malformed frame: %d elements", len(parts))
	}
	if err := json.Unmarshal(parts[0], &kind); err != nil {
		return 0, nil, fmt.Errorf("malformed frame kind: %w", err)
	}
	return kind, parts[1], nil
}

// startBridge wires the attached transport: it launches the inbound loop and
// announces this instance with a sync request so siblings replay their
// buffered history to it.
func (q *Queue) startBridge() {
	ctx, cancel := context.WithCancel(context.Background())
	q.bridgeCancel = cancel
	q.bridgeDone = make(chan struct{})

	tr := q.transport
	go q.bridgeLoop(ctx, tr.Receive())

	frame, err := encodeFrame(frameKindSyncRequest, q.clientID)
	if err == nil {
		err = tr.Send(ctx, frame)
	}
	if err != nil {
		q.log.Warn("failed to announce instance on broadcast channel",
			logger.Error(err), logger.Component("bridge"))
	}
}

// bridgeLoop consumes inbound frames until the transport closes or the
// instance shuts down.
func (q *Queue) bridgeLoop(ctx context.Context, recv <-chan []byte) {
	defer close(q.bridgeDone)

	for {
		select {
		case <-ctx.Done():
			return
		case frame, ok := <-recv:
			if !ok {
				return
			}
			q.handleFrame(ctx, frame)
		}
	}
}

func (q *Queue) handleFrame(ctx context.Context, frame []byte) {
	kind, body, err := decodeFrame(frame)
	if err != nil {
		q.log.Warn("dropping inbound frame",
			logger.Error(err), logger.Component("bridge"))
		return
	}

	switch kind {
	case frameKindPublish:
		var env envelope
		if err := json.Unmarshal(body, &env); err != nil {
			q.log.Warn("dropping inbound publish envelope",
				logger.Error(err), logger.Component("bridge"))
			return
		}
		q.handleEnvelope(ctx, env)

	case frameKindSyncRequest:
		var originID string
		if err := json.Unmarshal(body, &originID); err != nil {
			return
		}
		if originID != q.clientID {
			q.replayBuffers(ctx)
		}

	case frameKindSyncResponse:
		var envs []envelope
		if err := json.Unmarshal(body, &envs); err != nil {
			return
		}
		for _, env := range envs {
			q.handleEnvelope(ctx, env)
		}

	default:
		// Reserved kinds from newer peers; ignore.
	}
}

// handleEnvelope re-dispatches an inbound message locally. Duplicates are
// suppressed by message ID, the topic is resolved (or auto-registered) by
// name, and self-originated echoes are recorded but not delivered. Inbound
// messages are never re-broadcast, which prevents relay loops between
// bridged instances.
func (q *Queue) handleEnvelope(ctx context.Context, env envelope) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	if _, dup := q.seen[env.ID]; dup {
		q.mu.Unlock()
		return
	}
	q.seen[env.ID] = struct{}{}
	topicID := q.getOrCreateTopicLocked(env.TopicName)
	self := env.OriginID == q.clientID
	q.mu.Unlock()

	if self {
		return
	}

	q.dispatch(ctx, Message{
		ID:        env.ID,
		TopicID:   topicID,
		OriginID:  env.OriginID,
		Payload:   env.Payload,
		Timestamp: time.UnixMilli(env.Timestamp),
	})
}

// broadcastPublish mirrors a locally published message to sibling contexts.
// Mirroring is fire-and-forget: serialization and transport failures are
// logged and do not fail the local publish, which already completed.
func (q *Queue) broadcastPublish(ctx context.Context, msg Message, topicName string) {
	frame, err := encodeFrame(frameKindPublish, envelope{
		ID:        msg.ID,
		TopicName: topicName,
		OriginID:  msg.OriginID,
		Payload:   msg.Payload,
		Timestamp: msg.Timestamp.UnixMilli(),
	})
	if err != nil {
		q.log.Warn("payload not serializable, skipping broadcast",
			logger.Error(err),
			logger.Component("bridge"),
			logger.MessageID(msg.ID),
		)
		return
	}

	q.mu.RLock()
	tr := q.transport
	q.mu.RUnlock()
	if tr == nil {
		return
	}

	if err := tr.Send(ctx, frame); err != nil {
		q.log.Error("failed to broadcast message",
			logger.Error(err),
			logger.Component("bridge"),
			logger.MessageID(msg.ID),
		)
	}
}

// replayBuffers answers a sibling's sync request with this instance's entire
// buffered history, oldest-to-newest per topic. Payloads that cannot be
// serialized are skipped. Nothing is sent when no history is buffered.
func (q *Queue) replayBuffers(ctx context.Context) {
	q.mu.RLock()
	var envs []envelope
	for _, t := range q.topics {
		if t.buffer == nil {
			continue
		}
		for _, msg := range t.buffer.Snapshot() {
			envs = append(envs, envelope{
				ID:        msg.ID,
				TopicName: t.name,
				OriginID:  msg.OriginID,
				Payload:   msg.Payload,
				Timestamp: msg.Timestamp.UnixMilli(),
			})
		}
	}
	tr := q.transport
	q.mu.RUnlock()

	if len(envs) == 0 || tr == nil {
		return
	}

	frame, err := encodeFrame(frameKindSyncResponse, envs)
	if err != nil {
		q.log.Warn("failed to encode sync response",
			logger.Error(err), logger.Component("bridge"))
		return
	}
	if err := tr.Send(ctx, frame); err != nil {
		q.log.Error("failed to send sync response",
			logger.Error(err), logger.Component("bridge"))
	}
}
